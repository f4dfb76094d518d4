package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CateringGormRepository struct {
	db *gorm.DB
}

func NewCateringGormRepository(db *gorm.DB) *CateringGormRepository {
	return &CateringGormRepository{db: db}
}

func (r *CateringGormRepository) Create(ctx context.Context, req model.CateringRequest) (model.CateringRequest, error) {
	if err := r.db.WithContext(ctx).Create(&req).Error; err != nil {
		return model.CateringRequest{}, err
	}
	return req, nil
}

func (r *CateringGormRepository) FindByID(ctx context.Context, id int64) (model.CateringRequest, error) {
	var req model.CateringRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CateringRequest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CateringRequest{}, err
	}
	return req, nil
}

func (r *CateringGormRepository) List(ctx context.Context, f repo.CateringListFilter) ([]model.CateringRequest, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.CateringRequest{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.CateringRequest{}, 0, err
	}

	var items []model.CateringRequest
	offset := (f.Page - 1) * f.Limit
	if err := q.Order("event_date asc").Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.CateringRequest{}, 0, err
	}

	return items, total, nil
}

func (r *CateringGormRepository) UpdateStatus(ctx context.Context, id int64, status model.CateringStatus) error {
	res := r.db.WithContext(ctx).Model(&model.CateringRequest{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
