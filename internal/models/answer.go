package models

import "time"

type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	UserID     uint      `json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	Content    string    `gorm:"not null" json:"content"`
	Votes      int       `gorm:"default:0" json:"votes"`
	Accepted   bool      `gorm:"default:false" json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}
