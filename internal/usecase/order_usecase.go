package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

// OrderUsecase はお客様向けの注文照会。
// 直近キャッシュ → DB の順で引く。
type OrderUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	recent     *RecentOrders
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	recent *RecentOrders,
) *OrderUsecase {
	return &OrderUsecase{
		orders:     orders,
		orderItems: orderItems,
		recent:     recent,
	}
}

// 注文番号で1件取得。見つからなければ404。
func (u *OrderUsecase) GetByNumber(ctx context.Context, number string) (OrderOutput, error) {
	if number == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid number")
	}

	if out, ok := u.recent.Get(number); ok {
		return out, nil
	}

	o, err := u.orders.FindByNumber(ctx, number)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderOutput(o, items), nil
}

// 同じセッションで作った注文の一覧（注文履歴）
func (u *OrderUsecase) ListBySession(ctx context.Context, sessionKey string, page int, limit int) ([]OrderOutput, int64, error) {
	if sessionKey == "" {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}

	orders, total, err := u.orders.ListBySessionKey(ctx, sessionKey, page, limit)
	if err != nil {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItems.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}

	return outs, total, nil
}
