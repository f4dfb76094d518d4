package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type OrderStatusLogGormRepository struct {
	db *gorm.DB
}

func NewOrderStatusLogGormRepository(db *gorm.DB) *OrderStatusLogGormRepository {
	return &OrderStatusLogGormRepository{db: db}
}

func (r *OrderStatusLogGormRepository) Append(ctx context.Context, log model.OrderStatusLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *OrderStatusLogGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderStatusLog, error) {
	var logs []model.OrderStatusLog
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&logs).Error; err != nil {
		return []model.OrderStatusLog{}, err
	}
	return logs, nil
}
