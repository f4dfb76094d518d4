package cart_test

import (
	"context"
	"errors"
	"testing"

	"app/internal/cart"

	"github.com/stretchr/testify/assert"
)

// Loadが一定回数失敗するStore（DB障害の再現用）
type flakyStore struct {
	cart.Store
	loadFailures int
}

func (s *flakyStore) Load(ctx context.Context, key string) ([]byte, error) {
	if s.loadFailures > 0 {
		s.loadFailures--
		return nil, errors.New("store unavailable")
	}
	return s.Store.Load(ctx, key)
}

func TestContainer_AddItem_MergesSameMenuItem(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	c, err := cart.New(ctx, store, "s1")
	assert.NoError(t, err)

	err = c.AddItem(ctx, cart.Item{MenuItemID: 1, Name: "Margherita", UnitPrice: 1000, Quantity: 2})
	assert.NoError(t, err)
	err = c.AddItem(ctx, cart.Item{MenuItemID: 1, Name: "Margherita", UnitPrice: 1000, Quantity: 3})
	assert.NoError(t, err)

	items := c.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].Quantity)
}

func TestContainer_SetQuantity_ClampsToOne(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	c, _ := cart.New(ctx, store, "s1")

	_ = c.AddItem(ctx, cart.Item{MenuItemID: 1, Name: "Margherita", UnitPrice: 1000, Quantity: 2})

	// 0以下は1に丸める（削除ではない）
	for _, q := range []int64{0, -5, -1} {
		err := c.SetQuantity(ctx, 1, q)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), c.Items()[0].Quantity)
	}

	err := c.SetQuantity(ctx, 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), c.Items()[0].Quantity)
}

func TestContainer_SetQuantity_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	c, _ := cart.New(ctx, store, "s1")

	_ = c.AddItem(ctx, cart.Item{MenuItemID: 1, UnitPrice: 500, Quantity: 1})

	err := c.SetQuantity(ctx, 99, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), c.ItemCount())
}

func TestContainer_RemoveItem_NonexistentIsNoop(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	c, _ := cart.New(ctx, store, "s1")

	_ = c.AddItem(ctx, cart.Item{MenuItemID: 1, UnitPrice: 500, Quantity: 1})
	_ = c.AddItem(ctx, cart.Item{MenuItemID: 2, UnitPrice: 700, Quantity: 2})

	err := c.RemoveItem(ctx, 999)
	assert.NoError(t, err)
	assert.Len(t, c.Items(), 2)

	err = c.RemoveItem(ctx, 1)
	assert.NoError(t, err)

	items := c.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].MenuItemID)
}

func TestContainer_Totals(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	c, _ := cart.New(ctx, store, "s1")

	_ = c.AddItem(ctx, cart.Item{MenuItemID: 1, UnitPrice: 1000, Quantity: 2})
	_ = c.AddItem(ctx, cart.Item{MenuItemID: 2, UnitPrice: 300, Quantity: 3})

	assert.Equal(t, int64(2900), c.Subtotal())
	assert.Equal(t, int64(5), c.ItemCount())

	_ = c.SetDeliveryFee(ctx, 200)
	assert.Equal(t, int64(3100), c.Total())

	// 合計はキャッシュせず毎回計算される
	_ = c.SetQuantity(ctx, 2, 1)
	assert.Equal(t, int64(2300), c.Subtotal())
	assert.Equal(t, int64(2500), c.Total())
}

func TestContainer_Notes(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	c, _ := cart.New(ctx, store, "s1")

	_ = c.AddItem(ctx, cart.Item{MenuItemID: 1, UnitPrice: 1000, Quantity: 1})

	err := c.SetNotes(ctx, 1, "no onions")
	assert.NoError(t, err)
	assert.Equal(t, "no onions", c.Items()[0].Notes)

	// 存在しないIDは無視
	err = c.SetNotes(ctx, 42, "x")
	assert.NoError(t, err)
}

func TestContainer_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()

	c, _ := cart.New(ctx, store, "s1")
	_ = c.AddItem(ctx, cart.Item{MenuItemID: 1, Name: "Margherita", UnitPrice: 1000, Quantity: 2, Notes: "extra cheese"})
	_ = c.AddItem(ctx, cart.Item{MenuItemID: 2, Name: "Cola", UnitPrice: 300, Quantity: 1})
	_ = c.SetDeliveryFee(ctx, 150)

	// リロード相当：同じStore・同じキーで作り直す
	reloaded, err := cart.New(ctx, store, "s1")
	assert.NoError(t, err)
	assert.Equal(t, c.Items(), reloaded.Items())
	assert.Equal(t, int64(150), reloaded.DeliveryFee())
	assert.Equal(t, c.Subtotal(), reloaded.Subtotal())
}

func TestContainer_CorruptPayloadFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	_ = store.Save(ctx, "s1", []byte("{not json"))

	c, err := cart.New(ctx, store, "s1")
	assert.NoError(t, err)
	assert.Empty(t, c.Items())
	assert.Equal(t, int64(0), c.Subtotal())
}

func TestContainer_LoadFailureIsAnErrorNotAnEmptyCart(t *testing.T) {
	ctx := context.Background()
	mem := cart.NewMemoryStore()

	c, _ := cart.New(ctx, mem, "s1")
	_ = c.AddItem(ctx, cart.Item{MenuItemID: 1, Name: "Margherita", UnitPrice: 1000, Quantity: 3})

	// 一時的なStore障害中は空カートで続行せずエラーになる
	store := &flakyStore{Store: mem, loadFailures: 1}
	_, err := cart.New(ctx, store, "s1")
	assert.Error(t, err)

	// 障害が収まれば保存していた明細はそのまま
	restored, err := cart.New(ctx, store, "s1")
	assert.NoError(t, err)
	assert.Len(t, restored.Items(), 1)
	assert.Equal(t, int64(3), restored.Items()[0].Quantity)
}

func TestContainer_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	c, _ := cart.New(ctx, store, "s1")

	_ = c.AddItem(ctx, cart.Item{MenuItemID: 1, UnitPrice: 1000, Quantity: 2})

	items, subtotal, _, _ := c.Snapshot()
	assert.Equal(t, int64(2000), subtotal)

	// スナップショット後にカートを弄ってもコピーは変わらない
	_ = c.Clear(ctx)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, int64(0), c.ItemCount())
}

func TestContainer_ClearEmptiesCartAndStore(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	c, _ := cart.New(ctx, store, "s1")

	_ = c.AddItem(ctx, cart.Item{MenuItemID: 1, UnitPrice: 1000, Quantity: 2})
	_ = c.Clear(ctx)

	assert.Equal(t, int64(0), c.ItemCount())
	assert.Equal(t, int64(0), c.Subtotal())

	// 空の状態も永続化される
	reloaded, _ := cart.New(ctx, store, "s1")
	assert.Empty(t, reloaded.Items())
}

func TestContainer_AddItemWithZeroQuantityCountsAsOne(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	c, _ := cart.New(ctx, store, "s1")

	err := c.AddItem(ctx, cart.Item{MenuItemID: 1, UnitPrice: 1000, Quantity: 0})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), c.Items()[0].Quantity)
}
