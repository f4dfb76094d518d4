package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// MenuUsecase は公開メニューと管理CRUD。
type MenuUsecase struct {
	menuRepo repo.MenuItemRepository
}

func NewMenuUsecase(menuRepo repo.MenuItemRepository) *MenuUsecase {
	return &MenuUsecase{menuRepo: menuRepo}
}

type MenuItemListOutput struct {
	Items []model.MenuItem `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type MenuItemInput struct {
	Name        string
	Description string
	Category    string
	Price       int64
	ImageURL    string
	IsAvailable bool
}

func (u *MenuUsecase) ListPublic(ctx context.Context, q repo.MenuItemListQuery) (MenuItemListOutput, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	items, total, err := u.menuRepo.ListPublic(ctx, q)
	if err != nil {
		return MenuItemListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return MenuItemListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *MenuUsecase) GetPublic(ctx context.Context, id int64) (model.MenuItem, error) {
	if id <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	m, err := u.menuRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	// 非公開商品は存在しない扱い
	if !m.IsAvailable {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return m, nil
}

func (u *MenuUsecase) Create(ctx context.Context, in MenuItemInput) (model.MenuItem, error) {
	if err := validateMenuItemInput(in); err != nil {
		return model.MenuItem{}, err
	}

	created, err := u.menuRepo.Create(ctx, model.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		IsAvailable: in.IsAvailable,
	})
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

func (u *MenuUsecase) Update(ctx context.Context, id int64, in MenuItemInput) (model.MenuItem, error) {
	if id <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateMenuItemInput(in); err != nil {
		return model.MenuItem{}, err
	}

	m := model.MenuItem{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		IsAvailable: in.IsAvailable,
	}

	if err := u.menuRepo.Update(ctx, m); err != nil {
		if err == repo.ErrNotFound {
			return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return m, nil
}

// 品切れ・再開の切り替え
func (u *MenuUsecase) SetAvailability(ctx context.Context, id int64, available bool) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.menuRepo.SetAvailability(ctx, id, available); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *MenuUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.menuRepo.SoftDelete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateMenuItemInput(in MenuItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return NewHTTPError(http.StatusBadRequest, "category is required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	return nil
}
