package model

import "time"

// セッションごとのカート永続化行。
// Payloadはカート明細リストのJSON（形は internal/cart が決める）。
type CartSession struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Payload   []byte    `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
