package model

import "time"

// Leave request statuses. Transitions are PENDING -> APPROVED or
// PENDING -> REJECTED, warden only.
const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

// LeaveRequest is a student's request to be away from the hostel.
type LeaveRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	FromDate  time.Time `gorm:"not null" json:"fromDate"`
	ToDate    time.Time `gorm:"not null" json:"toDate"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	Status    string    `gorm:"size:16;not null;default:PENDING" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
