package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stackit/internal/models"
)

// AnswerService owns the answer acceptance rule.
type AnswerService struct {
	db *gorm.DB
}

func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{db: db}
}

// AcceptAnswer marks the given answer as the question's accepted solution.
// Only the question's author may accept, and at most one answer per question
// is accepted at any time: the clear-siblings and set-target updates run in
// one transaction so no reader ever observes two accepted answers.
// Re-accepting the already-accepted answer succeeds and changes nothing.
func (s *AnswerService) AcceptAnswer(ctx context.Context, answerID, requesterID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var answer models.Answer
		if err := tx.First(&answer, answerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("answer", answerID)
			}
			return err
		}

		var question models.Question
		if err := tx.First(&question, answer.QuestionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("question", answer.QuestionID)
			}
			return err
		}

		if question.UserID != requesterID {
			return models.NewForbiddenError("Only the question author can accept an answer")
		}

		if err := tx.Model(&models.Answer{}).
			Where("question_id = ? AND id <> ?", answer.QuestionID, answer.ID).
			UpdateColumn("accepted", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Answer{}).
			Where("id = ?", answer.ID).
			UpdateColumn("accepted", true).Error
	})

	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}
