package models

import "time"

const (
	ContentTypeQuestion = "question"
	ContentTypeAnswer   = "answer"

	VoteUp   = "up"
	VoteDown = "down"
)

// Vote model - tracks individual user votes on questions and answers.
// A user holds at most one vote per content item, enforced by the
// composite unique index.
type Vote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_votes_user_content" json:"user_id"`
	ContentType string    `gorm:"not null;uniqueIndex:idx_votes_user_content" json:"content_type"`
	ContentID   uint      `gorm:"not null;uniqueIndex:idx_votes_user_content" json:"content_id"`
	VoteType    string    `gorm:"not null" json:"vote_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type VoteRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	ContentID   uint   `json:"content_id" binding:"required"`
	VoteType    string `json:"vote_type" binding:"required"`
}
