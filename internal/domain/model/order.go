package model

import "time"

// 注文はチェックアウト時点のカートのスナップショット。
// 配達ゾーン・支払い方法は作成時点の値をコピーして保持する
// （マスタが後から変わっても注文は変わらない）。
type Order struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Number string `gorm:"type:varchar(64);not null;uniqueIndex" json:"number"`

	// 注文者（ゲスト注文はセッションキーのみ）
	UserID     *int64 `gorm:"index" json:"user_id,omitempty"`
	SessionKey string `gorm:"type:varchar(64);not null;index" json:"-"`

	CustomerName    string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string `gorm:"type:varchar(50);not null" json:"customer_phone"`
	CustomerAddress string `gorm:"type:text;not null" json:"customer_address"`

	// 配達ゾーンのスナップショット
	ZoneID            int64  `gorm:"not null" json:"zone_id"`
	ZoneName          string `gorm:"type:varchar(255);not null" json:"zone_name"`
	ZoneEstimatedTime string `gorm:"type:varchar(100)" json:"zone_estimated_time"`

	// 支払い方法のスナップショット
	PaymentMethodCode string `gorm:"type:varchar(50);not null" json:"payment_method_code"`
	PaymentMethodName string `gorm:"type:varchar(255);not null" json:"payment_method_name"`

	Subtotal    int64 `gorm:"not null" json:"subtotal"`
	DeliveryFee int64 `gorm:"not null" json:"delivery_fee"`
	Total       int64 `gorm:"not null" json:"total"`

	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`

	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
