package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentMethodRepository interface {
	ListActive(ctx context.Context) ([]model.PaymentMethod, error)
	FindByCode(ctx context.Context, code string) (model.PaymentMethod, error)
}
