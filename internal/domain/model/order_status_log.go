package model

import "time"

// 注文ステータス変更の履歴（管理操作の監査用）
type OrderStatusLog struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64       `gorm:"not null;index" json:"order_id"`
	FromStatus OrderStatus `gorm:"type:varchar(20);not null" json:"from_status"`
	ToStatus   OrderStatus `gorm:"type:varchar(20);not null" json:"to_status"`
	ChangedBy  int64       `gorm:"not null" json:"changed_by"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}
