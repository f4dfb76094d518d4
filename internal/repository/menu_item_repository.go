package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type MenuItemListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

// メニュー商品の永続化だけを約束。
type MenuItemRepository interface {
	ListPublic(ctx context.Context, q MenuItemListQuery) ([]model.MenuItem, int64, error)
	FindByID(ctx context.Context, id int64) (model.MenuItem, error)

	Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error)
	Update(ctx context.Context, m model.MenuItem) error
	SetAvailability(ctx context.Context, id int64, available bool) error
	SoftDelete(ctx context.Context, id int64) error
}
