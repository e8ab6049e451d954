package models

import "time"

// Review represents a rated review of a campground (PostgreSQL). A user may
// review a campground at most once.
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CampgroundID string    `json:"campground_id" gorm:"index;size:24;uniqueIndex:idx_campground_reviewer"`
	UserID       uint      `json:"user_id" gorm:"index;uniqueIndex:idx_campground_reviewer"`
	Username     string    `json:"username"` // author snapshot
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReviewForm defines the form body for creating or updating a review
type ReviewForm struct {
	Rating int    `form:"rating" json:"rating" validate:"required,min=1,max=5"`
	Text   string `form:"text" json:"text" validate:"required,min=1,max=2000"`
}
