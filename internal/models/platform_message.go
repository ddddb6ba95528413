package models

import "time"

// PlatformMessage is an admin broadcast banner shown to every visitor.
type PlatformMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"not null" json:"message"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePlatformMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type UpdatePlatformMessageRequest struct {
	Active *bool `json:"active" binding:"required"`
}
