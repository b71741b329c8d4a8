package model

import "time"

// Marketplace item statuses.
const (
	ItemAvailable = "AVAILABLE"
	ItemSold      = "SOLD"
)

// MarketplaceItem is something a resident has put up for sale.
type MarketplaceItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Status      string    `gorm:"size:16;not null;default:AVAILABLE" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
