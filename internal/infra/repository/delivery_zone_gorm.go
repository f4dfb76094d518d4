package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type DeliveryZoneGormRepository struct {
	db *gorm.DB
}

func NewDeliveryZoneGormRepository(db *gorm.DB) *DeliveryZoneGormRepository {
	return &DeliveryZoneGormRepository{db: db}
}

func (r *DeliveryZoneGormRepository) ListActive(ctx context.Context) ([]model.DeliveryZone, error) {
	var zones []model.DeliveryZone
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("fee asc, id asc").
		Find(&zones).Error; err != nil {
		return []model.DeliveryZone{}, err
	}
	return zones, nil
}

func (r *DeliveryZoneGormRepository) FindByID(ctx context.Context, id int64) (model.DeliveryZone, error) {
	var z model.DeliveryZone
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&z).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DeliveryZone{}, repo.ErrNotFound
	}
	if err != nil {
		return model.DeliveryZone{}, err
	}
	return z, nil
}

func (r *DeliveryZoneGormRepository) Create(ctx context.Context, z model.DeliveryZone) (model.DeliveryZone, error) {
	if err := r.db.WithContext(ctx).Create(&z).Error; err != nil {
		return model.DeliveryZone{}, err
	}
	return z, nil
}

func (r *DeliveryZoneGormRepository) Update(ctx context.Context, z model.DeliveryZone) error {
	res := r.db.WithContext(ctx).Model(&model.DeliveryZone{}).
		Where("id = ?", z.ID).
		Updates(map[string]any{
			"name":           z.Name,
			"fee":            z.Fee,
			"estimated_time": z.EstimatedTime,
			"is_active":      z.IsActive,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DeliveryZoneGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.DeliveryZone{}, id)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
