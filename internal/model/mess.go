package model

import "time"

// MessMenu is the published menu for one day.
type MessMenu struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Day       string    `gorm:"size:32;not null" json:"day"`
	Breakfast string    `gorm:"type:text" json:"breakfast"`
	Lunch     string    `gorm:"type:text" json:"lunch"`
	Dinner    string    `gorm:"type:text" json:"dinner"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessFeedback is a signed rating (+1 like, -1 dislike) for a menu.
type MessFeedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	MenuID    uint      `gorm:"index;not null" json:"menuId"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}
