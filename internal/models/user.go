package models

import "time"

// User represents a registered account (PostgreSQL)
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:30"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest defines the form body for user registration
type RegisterRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
	Avatar   string `form:"avatar" json:"avatar,omitempty" validate:"omitempty,url"`
}

// LoginRequest defines the form body for login
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}
