package models

import "time"

// Comment represents a comment on a campground (PostgreSQL). CampgroundID is
// the hex MongoDB ObjectID of the parent document; the reference is not an
// enforced foreign key.
type Comment struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CampgroundID string    `json:"campground_id" gorm:"index;size:24"`
	UserID       uint      `json:"user_id" gorm:"index"`
	Username     string    `json:"username"` // author snapshot
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CommentForm defines the form body for creating or updating a comment
type CommentForm struct {
	Text string `form:"text" json:"text" validate:"required,min=1,max=500"`
}
