package usecase

import (
	"context"
	"net/http"

	"app/internal/cart"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// カート本体は internal/cart のContainerで、リクエストごとに
// Storeから復元して使う（セッションキー1つにつきカート1つ）。
type CartUsecase struct {
	store    cart.Store
	menuRepo repo.MenuItemRepository
	zoneRepo repo.DeliveryZoneRepository
}

func NewCartUsecase(
	store cart.Store,
	menuRepo repo.MenuItemRepository,
	zoneRepo repo.DeliveryZoneRepository,
) *CartUsecase {
	return &CartUsecase{
		store:    store,
		menuRepo: menuRepo,
		zoneRepo: zoneRepo,
	}
}

type CartItemResponse struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int64  `json:"quantity"`
	ImageURL   string `json:"image_url,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	ItemCount   int64              `json:"item_count"`
	Subtotal    int64              `json:"subtotal"`
	DeliveryFee int64              `json:"delivery_fee"`
	Total       int64              `json:"total"`
}

type AddCartItemInput struct {
	MenuItemID int64
	Quantity   int64
	Notes      string
}

// GetCart はカート取得（無ければ空のまま返す）。
func (u *CartUsecase) GetCart(ctx context.Context, sessionKey string) (CartResponse, error) {
	if sessionKey == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}

	c, err := u.load(ctx, sessionKey)
	if err != nil {
		return CartResponse{}, err
	}
	return buildCartResponse(c), nil
}

// AddItem はカートに追加（同一商品は数量加算）。
// 商品名・単価・画像は追加時点のメニューからコピーする。
func (u *CartUsecase) AddItem(ctx context.Context, sessionKey string, in AddCartItemInput) (CartResponse, error) {
	if sessionKey == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}
	if in.MenuItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid menu_item_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	m, err := u.menuRepo.FindByID(ctx, in.MenuItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !m.IsAvailable {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	c, err := u.load(ctx, sessionKey)
	if err != nil {
		return CartResponse{}, err
	}
	if err := c.AddItem(ctx, cart.Item{
		MenuItemID: m.ID,
		Name:       m.Name,
		UnitPrice:  m.Price,
		Quantity:   in.Quantity,
		ImageURL:   m.ImageURL,
		Notes:      in.Notes,
	}); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart save failed")
	}

	return buildCartResponse(c), nil
}

// 数量変更。0以下は1に丸まる（削除はDELETEで明示的に行う）。
func (u *CartUsecase) SetQuantity(ctx context.Context, sessionKey string, menuItemID int64, qty int64) (CartResponse, error) {
	if sessionKey == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}
	if menuItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.load(ctx, sessionKey)
	if err != nil {
		return CartResponse{}, err
	}
	if err := c.SetQuantity(ctx, menuItemID, qty); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart save failed")
	}

	return buildCartResponse(c), nil
}

// 備考変更
func (u *CartUsecase) SetNotes(ctx context.Context, sessionKey string, menuItemID int64, notes string) (CartResponse, error) {
	if sessionKey == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}
	if menuItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.load(ctx, sessionKey)
	if err != nil {
		return CartResponse{}, err
	}
	if err := c.SetNotes(ctx, menuItemID, notes); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart save failed")
	}

	return buildCartResponse(c), nil
}

// 明細削除（存在しないIDは黙って無視）
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionKey string, menuItemID int64) (CartResponse, error) {
	if sessionKey == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}
	if menuItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.load(ctx, sessionKey)
	if err != nil {
		return CartResponse{}, err
	}
	if err := c.RemoveItem(ctx, menuItemID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart save failed")
	}

	return buildCartResponse(c), nil
}

// 全削除
func (u *CartUsecase) Clear(ctx context.Context, sessionKey string) (CartResponse, error) {
	if sessionKey == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}

	c, err := u.load(ctx, sessionKey)
	if err != nil {
		return CartResponse{}, err
	}
	if err := c.Clear(ctx); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart save failed")
	}

	return buildCartResponse(c), nil
}

// SelectZone は配達ゾーンを選び、そのfeeをカートに反映する。
func (u *CartUsecase) SelectZone(ctx context.Context, sessionKey string, zoneID int64) (CartResponse, error) {
	if sessionKey == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}
	if zoneID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid zone_id")
	}

	z, err := u.zoneRepo.FindByID(ctx, zoneID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !z.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	c, err := u.load(ctx, sessionKey)
	if err != nil {
		return CartResponse{}, err
	}
	if err := c.SetDeliveryFee(ctx, z.Fee); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart save failed")
	}

	return buildCartResponse(c), nil
}

// Storeからカートを復元する。キー不在・壊れたJSONは空カートだが、
// Store自体の障害は500で返す（空カートのまま書き戻すと保存分が消える）。
func (u *CartUsecase) load(ctx context.Context, sessionKey string) (*cart.Container, error) {
	c, err := cart.New(ctx, u.store, sessionKey)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "cart load failed")
	}
	return c, nil
}

func buildCartResponse(c *cart.Container) CartResponse {
	items := c.Items()
	respItems := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		respItems = append(respItems, CartItemResponse{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.UnitPrice,
			Quantity:   it.Quantity,
			ImageURL:   it.ImageURL,
			Notes:      it.Notes,
		})
	}

	return CartResponse{
		Items:       respItems,
		ItemCount:   c.ItemCount(),
		Subtotal:    c.Subtotal(),
		DeliveryFee: c.DeliveryFee(),
		Total:       c.Total(),
	}
}
