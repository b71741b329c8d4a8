package model

import "time"

// PushSubscription holds the information for a browser push subscription,
// keyed to the account that registered it. A user may have several
// (one per browser/device).
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
