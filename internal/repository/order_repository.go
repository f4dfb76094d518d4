package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page          int
	Limit         int
	Status        string
	PaymentStatus string
	From          *time.Time
	To            *time.Time
}

// 日別の売上集計（管理画面のレポート用）
type DailySales struct {
	Day             time.Time `json:"day"`
	OrdersCount     int64     `json:"orders_count"`
	ItemsRevenue    int64     `json:"items_revenue"`
	DeliveryRevenue int64     `json:"delivery_revenue"`
	GrandRevenue    int64     `json:"grand_revenue"`
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByNumber(ctx context.Context, number string) (model.Order, error)
	ListBySessionKey(ctx context.Context, sessionKey string, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error

	// 管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
	// キャンセル以外の注文を日別に集計
	DailySummary(ctx context.Context, from time.Time, to time.Time) ([]DailySales, error)
}
