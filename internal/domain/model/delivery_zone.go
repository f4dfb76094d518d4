package model

import "time"

// 配達ゾーン。feeがカートのdelivery_feeになる。
type DeliveryZone struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Fee           int64     `gorm:"not null" json:"fee"`
	EstimatedTime string    `gorm:"type:varchar(100)" json:"estimated_time"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
