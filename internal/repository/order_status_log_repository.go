package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderStatusLogRepository interface {
	Append(ctx context.Context, log model.OrderStatusLog) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderStatusLog, error)
}
