package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CateringUsecase はイベント向けケータリングの問い合わせ処理。
type CateringUsecase struct {
	cateringRepo repo.CateringRepository
	clock        Clock
}

func NewCateringUsecase(cateringRepo repo.CateringRepository, clock Clock) *CateringUsecase {
	return &CateringUsecase{cateringRepo: cateringRepo, clock: clock}
}

type CateringSubmitInput struct {
	ContactName  string
	ContactPhone string
	ContactEmail string
	EventDate    time.Time
	GuestCount   int64
	VenueAddress string
	Message      string
}

// 問い合わせ受付（公開）。ステータスはNEWで固定。
func (u *CateringUsecase) Submit(ctx context.Context, in CateringSubmitInput) (model.CateringRequest, error) {
	if strings.TrimSpace(in.ContactName) == "" {
		return model.CateringRequest{}, NewHTTPError(http.StatusBadRequest, "contact name is required")
	}
	if strings.TrimSpace(in.ContactPhone) == "" {
		return model.CateringRequest{}, NewHTTPError(http.StatusBadRequest, "contact phone is required")
	}
	if in.GuestCount < 1 {
		return model.CateringRequest{}, NewHTTPError(http.StatusBadRequest, "invalid guest_count")
	}
	// 過去の日付のイベントは受けない
	if !in.EventDate.After(u.clock.Now()) {
		return model.CateringRequest{}, NewHTTPError(http.StatusBadRequest, "event date must be in the future")
	}

	created, err := u.cateringRepo.Create(ctx, model.CateringRequest{
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		EventDate:    in.EventDate,
		GuestCount:   in.GuestCount,
		VenueAddress: in.VenueAddress,
		Message:      in.Message,
		Status:       model.CateringStatusNew,
	})
	if err != nil {
		return model.CateringRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

type CateringListOutput struct {
	Items []model.CateringRequest `json:"items"`
	Total int64                   `json:"total"`
}

func (u *CateringUsecase) AdminList(ctx context.Context, f repo.CateringListFilter) (CateringListOutput, error) {
	if f.Status != "" && !isValidCateringStatus(f.Status) {
		return CateringListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	items, total, err := u.cateringRepo.List(ctx, f)
	if err != nil {
		return CateringListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CateringListOutput{Items: items, Total: total}, nil
}

func (u *CateringUsecase) AdminUpdateStatus(ctx context.Context, id int64, statusStr string) (model.CateringRequest, error) {
	if id <= 0 {
		return model.CateringRequest{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !isValidCateringStatus(statusStr) {
		return model.CateringRequest{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	if err := u.cateringRepo.UpdateStatus(ctx, id, model.CateringStatus(statusStr)); err != nil {
		if err == repo.ErrNotFound {
			return model.CateringRequest{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.CateringRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	req, err := u.cateringRepo.FindByID(ctx, id)
	if err != nil {
		return model.CateringRequest{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return req, nil
}

func isValidCateringStatus(s string) bool {
	switch model.CateringStatus(s) {
	case model.CateringStatusNew, model.CateringStatusReviewed, model.CateringStatusQuoted,
		model.CateringStatusConfirmed, model.CateringStatusDeclined:
		return true
	}
	return false
}
