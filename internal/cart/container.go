package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// カートの1行。価格は追加時点の単価スナップショット。
type Item struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int64  `json:"quantity"`
	ImageURL   string `json:"image_url,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Storeに書く形。明細リストと配達料をまとめて1キーに持つ。
type payload struct {
	Items       []Item `json:"items"`
	DeliveryFee int64  `json:"delivery_fee"`
}

// Container はセッション1つ分のカート。
// すべての変更は同期的にStoreへ書き戻す（リロードしても消えない）。
// 合計系は保存せず、読むたびに明細から計算する。
type Container struct {
	mu          sync.Mutex
	store       Store
	key         string
	items       []Item
	deliveryFee int64
}

// New はStoreから復元したContainerを返す。
// キーが無い・JSONが壊れている場合は空のカートから始める。
// それ以外のLoad失敗はエラーで返す。空カートで続行すると
// 次の書き込みで保存済みカートを上書きしてしまうため。
func New(ctx context.Context, store Store, key string) (*Container, error) {
	c := &Container{store: store, key: key}

	raw, err := store.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		// 壊れた保存データは空カート扱い
		return c, nil
	}

	c.items = p.Items
	c.deliveryFee = p.DeliveryFee
	return c, nil
}

// AddItem はカートに追加。同じ商品は行を増やさず数量を加算する。
func (c *Container) AddItem(ctx context.Context, item Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	merged := false
	for i := range c.items {
		if c.items[i].MenuItemID == item.MenuItemID {
			c.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, item)
	}

	return c.persist(ctx)
}

// SetQuantity は数量を更新。0以下は1に丸める（行削除はRemoveItemで明示的に）。
// 存在しないIDは何もしない。
func (c *Container) SetQuantity(ctx context.Context, menuItemID int64, qty int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty < 1 {
		qty = 1
	}

	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items[i].Quantity = qty
			return c.persist(ctx)
		}
	}
	return nil
}

// SetNotes は明細の備考を置き換える。存在しないIDは何もしない。
func (c *Container) SetNotes(ctx context.Context, menuItemID int64, notes string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items[i].Notes = notes
			return c.persist(ctx)
		}
	}
	return nil
}

// RemoveItem は明細を削除。存在しないIDは何もしない。
func (c *Container) RemoveItem(ctx context.Context, menuItemID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persist(ctx)
		}
	}
	return nil
}

// Clear は明細を無条件で全削除する。
func (c *Container) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	return c.persist(ctx)
}

// SetDeliveryFee は選択された配達ゾーンの料金を設定する。
func (c *Container) SetDeliveryFee(ctx context.Context, fee int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fee < 0 {
		fee = 0
	}
	c.deliveryFee = fee
	return c.persist(ctx)
}

func (c *Container) DeliveryFee() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deliveryFee
}

// Items は明細のコピーを返す（呼び出し側の変更はカートに影響しない）。
func (c *Container) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyItems()
}

// Subtotal = Σ(単価×数量)。毎回計算し直す。
func (c *Container) Subtotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

// ItemCount = Σ(数量)
func (c *Container) ItemCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total = Subtotal + DeliveryFee
func (c *Container) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked() + c.deliveryFee
}

// Snapshot はチェックアウト用に明細コピーと金額をまとめて返す。
func (c *Container) Snapshot() (items []Item, subtotal int64, deliveryFee int64, total int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal = c.subtotalLocked()
	return c.copyItems(), subtotal, c.deliveryFee, subtotal + c.deliveryFee
}

func (c *Container) subtotalLocked() int64 {
	var sum int64
	for _, it := range c.items {
		sum += it.UnitPrice * it.Quantity
	}
	return sum
}

func (c *Container) copyItems() []Item {
	cp := make([]Item, len(c.items))
	copy(cp, c.items)
	return cp
}

func (c *Container) persist(ctx context.Context) error {
	raw, err := json.Marshal(payload{Items: c.items, DeliveryFee: c.deliveryFee})
	if err != nil {
		return err
	}
	return c.store.Save(ctx, c.key, raw)
}
