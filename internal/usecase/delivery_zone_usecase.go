package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type DeliveryZoneUsecase struct {
	zoneRepo repo.DeliveryZoneRepository
}

func NewDeliveryZoneUsecase(zoneRepo repo.DeliveryZoneRepository) *DeliveryZoneUsecase {
	return &DeliveryZoneUsecase{zoneRepo: zoneRepo}
}

type DeliveryZoneInput struct {
	Name          string
	Fee           int64
	EstimatedTime string
	IsActive      bool
}

// 公開一覧（配達先選択用）
func (u *DeliveryZoneUsecase) ListActive(ctx context.Context) ([]model.DeliveryZone, error) {
	zones, err := u.zoneRepo.ListActive(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return zones, nil
}

func (u *DeliveryZoneUsecase) Create(ctx context.Context, in DeliveryZoneInput) (model.DeliveryZone, error) {
	if err := validateZoneInput(in); err != nil {
		return model.DeliveryZone{}, err
	}

	created, err := u.zoneRepo.Create(ctx, model.DeliveryZone{
		Name:          strings.TrimSpace(in.Name),
		Fee:           in.Fee,
		EstimatedTime: in.EstimatedTime,
		IsActive:      in.IsActive,
	})
	if err != nil {
		return model.DeliveryZone{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

func (u *DeliveryZoneUsecase) Update(ctx context.Context, id int64, in DeliveryZoneInput) (model.DeliveryZone, error) {
	if id <= 0 {
		return model.DeliveryZone{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateZoneInput(in); err != nil {
		return model.DeliveryZone{}, err
	}

	z := model.DeliveryZone{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Fee:           in.Fee,
		EstimatedTime: in.EstimatedTime,
		IsActive:      in.IsActive,
	}

	if err := u.zoneRepo.Update(ctx, z); err != nil {
		if err == repo.ErrNotFound {
			return model.DeliveryZone{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.DeliveryZone{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return z, nil
}

func (u *DeliveryZoneUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.zoneRepo.Delete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateZoneInput(in DeliveryZoneInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	// 配達料は0を許す（自店周辺の無料配達）
	if in.Fee < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid fee")
	}
	return nil
}
