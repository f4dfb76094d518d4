package model

import "time"

type CateringStatus string

const (
	CateringStatusNew       CateringStatus = "NEW"
	CateringStatusReviewed  CateringStatus = "REVIEWED"
	CateringStatusQuoted    CateringStatus = "QUOTED"
	CateringStatusConfirmed CateringStatus = "CONFIRMED"
	CateringStatusDeclined  CateringStatus = "DECLINED"
)

// ケータリング（イベント向け）の問い合わせ
type CateringRequest struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ContactName  string         `gorm:"type:varchar(255);not null" json:"contact_name"`
	ContactPhone string         `gorm:"type:varchar(50);not null" json:"contact_phone"`
	ContactEmail string         `gorm:"type:varchar(255)" json:"contact_email"`
	EventDate    time.Time      `gorm:"not null" json:"event_date"`
	GuestCount   int64          `gorm:"not null" json:"guest_count"`
	VenueAddress string         `gorm:"type:text" json:"venue_address"`
	Message      string         `gorm:"type:text" json:"message"`
	Status       CateringStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
