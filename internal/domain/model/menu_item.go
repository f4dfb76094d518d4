package model

import (
	"time"

	"gorm.io/gorm"
)

// メニュー商品。価格は最小通貨単位のint64。
type MenuItem struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"type:varchar(100);not null;index" json:"category"`
	Price       int64          `gorm:"not null" json:"price"`
	ImageURL    string         `gorm:"type:text" json:"image_url"`
	IsAvailable bool           `gorm:"not null;default:false" json:"is_available"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
