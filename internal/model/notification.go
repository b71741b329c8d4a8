package model

import "time"

// Notification is either an individual notice (UserID set) or a broadcast
// (UserID nil, optionally scoped by TargetRole). The Read flag tracks
// read state for individual notices only; broadcasts track per-user read
// state through NotificationRead markers.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:256;not null" json:"title"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	UserID     *uint     `gorm:"index" json:"userId"`
	TargetRole *string   `gorm:"size:16" json:"targetRole,omitempty"`
	Read       bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Broadcast reports whether the notification is a broadcast notice.
func (n *Notification) Broadcast() bool {
	return n.UserID == nil
}

// NotificationRead marks that a user has read a broadcast notification.
// Duplicate inserts hit the unique index and are treated as a no-op.
type NotificationRead struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	UserID         uint      `gorm:"uniqueIndex:idx_notification_read_once;not null" json:"userId"`
	NotificationID uint      `gorm:"uniqueIndex:idx_notification_read_once;not null" json:"notificationId"`
	CreatedAt      time.Time `json:"-"`
}
