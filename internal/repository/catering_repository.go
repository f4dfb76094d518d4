package repository

import (
	"context"

	"app/internal/domain/model"
)

type CateringListFilter struct {
	Page   int
	Limit  int
	Status string
}

type CateringRepository interface {
	Create(ctx context.Context, req model.CateringRequest) (model.CateringRequest, error)
	FindByID(ctx context.Context, id int64) (model.CateringRequest, error)
	List(ctx context.Context, f CateringListFilter) ([]model.CateringRequest, int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.CateringStatus) error
}
