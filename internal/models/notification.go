package models

import "time"

// Notification tells a follower that someone they follow created a campground
// (PostgreSQL)
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RecipientID   uint      `json:"recipient_id" gorm:"index"`
	ActorID       uint      `json:"actor_id" gorm:"index"`
	ActorUsername string    `json:"actor_username"` // username snapshot of the creator
	CampgroundID  string    `json:"campground_id" gorm:"size:24"`
	IsRead        bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}
