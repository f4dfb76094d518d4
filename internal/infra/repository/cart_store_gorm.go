package repository

import (
	"context"
	"errors"

	"app/internal/cart"
	"app/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cart.Store のgorm実装。1セッション=1行（key主キー）。
type CartStoreGorm struct {
	db *gorm.DB
}

func NewCartStoreGorm(db *gorm.DB) *CartStoreGorm {
	return &CartStoreGorm{db: db}
}

func (s *CartStoreGorm) Load(ctx context.Context, key string) ([]byte, error) {
	var row model.CartSession
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cart.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Payload, nil
}

// 毎回全量を書き戻す（upsert）
func (s *CartStoreGorm) Save(ctx context.Context, key string, payload []byte) error {
	row := model.CartSession{Key: key, Payload: payload}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *CartStoreGorm) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.CartSession{}).Error
}
