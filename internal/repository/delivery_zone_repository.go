package repository

import (
	"context"

	"app/internal/domain/model"
)

type DeliveryZoneRepository interface {
	ListActive(ctx context.Context) ([]model.DeliveryZone, error)
	FindByID(ctx context.Context, id int64) (model.DeliveryZone, error)

	Create(ctx context.Context, z model.DeliveryZone) (model.DeliveryZone, error)
	Update(ctx context.Context, z model.DeliveryZone) error
	Delete(ctx context.Context, id int64) error
}
