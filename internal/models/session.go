package models

import "time"

// Session is a server-side login session keyed by the opaque token stored in
// the client cookie (PostgreSQL)
type Session struct {
	Token     string    `json:"-" gorm:"primaryKey;size:36"`
	UserID    uint      `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}
