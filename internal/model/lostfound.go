package model

import "time"

// Lost and found report types.
const (
	ReportLost  = "LOST"
	ReportFound = "FOUND"
)

// LostFoundReport records a lost or found item on the premises.
type LostFoundReport struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Type        string    `gorm:"size:8;not null" json:"type"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:256" json:"location"`
	Resolved    bool      `gorm:"not null;default:false" json:"resolved"`
	CreatedAt   time.Time `json:"createdAt"`
}
