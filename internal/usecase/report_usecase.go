package usecase

import (
	"context"
	"net/http"
	"time"

	repo "app/internal/repository"
)

// ReportUsecase は管理画面の売上レポート。
type ReportUsecase struct {
	orders repo.OrderRepository
	clock  Clock
}

func NewReportUsecase(orders repo.OrderRepository, clock Clock) *ReportUsecase {
	return &ReportUsecase{orders: orders, clock: clock}
}

type SalesReportOutput struct {
	From time.Time         `json:"from"`
	To   time.Time         `json:"to"`
	Days []repo.DailySales `json:"days"`

	OrdersCount     int64 `json:"orders_count"`
	ItemsRevenue    int64 `json:"items_revenue"`
	DeliveryRevenue int64 `json:"delivery_revenue"`
	GrandRevenue    int64 `json:"grand_revenue"`
}

// DailySales は期間内の日別売上＋合計。期間未指定は直近30日。
func (u *ReportUsecase) DailySales(ctx context.Context, from *time.Time, to *time.Time) (SalesReportOutput, error) {
	now := u.clock.Now()

	end := now
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}

	if start.After(end) {
		return SalesReportOutput{}, NewHTTPError(http.StatusBadRequest, "invalid range")
	}

	days, err := u.orders.DailySummary(ctx, start, end)
	if err != nil {
		return SalesReportOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := SalesReportOutput{From: start, To: end, Days: days}
	for _, d := range days {
		out.OrdersCount += d.OrdersCount
		out.ItemsRevenue += d.ItemsRevenue
		out.DeliveryRevenue += d.DeliveryRevenue
		out.GrandRevenue += d.GrandRevenue
	}

	return out, nil
}
