package models

import "time"

const NotificationTypeAnswer = "answer"

type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Type       string    `gorm:"not null" json:"type"`
	Message    string    `gorm:"not null" json:"message"`
	Read       bool      `gorm:"default:false" json:"read"`
	QuestionID *uint     `json:"question_id,omitempty"`
	AnswerID   *uint     `json:"answer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
