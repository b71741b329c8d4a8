package model

import "time"

// Complaint statuses, advanced forward only.
const (
	ComplaintOpen       = "OPEN"
	ComplaintInProgress = "IN_PROGRESS"
	ComplaintResolved   = "RESOLVED"
)

// Complaint is a maintenance or facility issue raised by a resident.
type Complaint struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Status      string    `gorm:"size:16;not null;default:OPEN" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// complaintRank orders complaint statuses for the forward-only check.
var complaintRank = map[string]int{
	ComplaintOpen:       0,
	ComplaintInProgress: 1,
	ComplaintResolved:   2,
}

// ComplaintStatusAdvances reports whether moving from to next is a valid
// forward transition. Skipping IN_PROGRESS is allowed.
func ComplaintStatusAdvances(from, next string) bool {
	f, okF := complaintRank[from]
	n, okN := complaintRank[next]
	return okF && okN && n > f
}
