package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"stackit/internal/models"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortVotes  = "votes"
)

// QuestionFilter narrows and orders the question list.
type QuestionFilter struct {
	// Search matches case-insensitively against title or description.
	Search string
	// Tags qualifies a question when it carries at least one of the names.
	Tags []string
	// Sort is one of newest, oldest, votes. Empty means newest.
	Sort string
}

// QuestionService provides the derived question list view.
type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

// ListQuestions returns questions matching the filter. Ordering ties are
// broken by id ascending so repeated calls return the same sequence.
func (s *QuestionService) ListQuestions(ctx context.Context, filter QuestionFilter) ([]models.Question, error) {
	sort := filter.Sort
	if sort == "" {
		sort = SortNewest
	}

	q := s.db.WithContext(ctx).Model(&models.Question{}).
		Preload("User").Preload("Tags")

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if len(filter.Tags) > 0 {
		q = q.Distinct("questions.*").
			Joins("JOIN question_tags ON question_tags.question_id = questions.id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name IN ?", filter.Tags)
	}

	switch sort {
	case SortNewest:
		q = q.Order("questions.created_at DESC, questions.id ASC")
	case SortOldest:
		q = q.Order("questions.created_at ASC, questions.id ASC")
	case SortVotes:
		q = q.Order("questions.votes DESC, questions.id ASC")
	default:
		return nil, models.NewValidationError("sort must be \"newest\", \"oldest\" or \"votes\"")
	}

	var questions []models.Question
	if err := q.Find(&questions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}
