package model

import "time"

// Roles a user can hold. Role changes go through the warden-only
// assign-role endpoint.
const (
	RoleStudent = "STUDENT"
	RoleWarden  = "WARDEN"
	RoleAdmin   = "ADMIN"
)

// ValidRole reports whether s is one of the recognized roles.
func ValidRole(s string) bool {
	return s == RoleStudent || s == RoleWarden || s == RoleAdmin
}

// User represents a hostel resident or staff account.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	Role       string    `gorm:"size:16;not null;default:STUDENT" json:"role"`
	RoomNumber *int      `json:"roomNumber"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}
