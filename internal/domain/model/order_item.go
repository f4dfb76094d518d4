package model

import "time"

// 注文明細。商品名・単価は注文時点のスナップショットを必ず保存。
type OrderItem struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64     `gorm:"not null;index" json:"order_id"`
	MenuItemID        int64     `gorm:"not null;index" json:"menu_item_id"`
	NameSnapshot      string    `gorm:"type:varchar(255);not null" json:"name"`
	UnitPriceSnapshot int64     `gorm:"not null" json:"price"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	Notes             string    `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
