package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stackit/internal/cache"
	"stackit/internal/models"
	"stackit/internal/service"
)

type QuestionHandler struct {
	db        *gorm.DB
	rdb       *redis.Client
	questions *service.QuestionService
}

func NewQuestionHandler(db *gorm.DB, rdb *redis.Client, questions *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{db: db, rdb: rdb, questions: questions}
}

func questionResponse(q models.Question, answerCount int64) gin.H {
	tags := []string{}
	for _, tag := range q.Tags {
		tags = append(tags, tag.Name)
	}
	return gin.H{
		"id":           q.ID,
		"title":        q.Title,
		"description":  q.Description,
		"user_id":      q.UserID,
		"username":     q.User.Username,
		"votes":        q.Votes,
		"tags":         tags,
		"answer_count": answerCount,
		"created_at":   q.CreatedAt,
		"updated_at":   q.UpdatedAt,
	}
}

// answerCounts returns the number of answers per question for the given
// question ids, one grouped query for the whole page.
func (h *QuestionHandler) answerCounts(ctx context.Context, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		QuestionID uint
		N          int64
	}
	err := h.db.WithContext(ctx).Model(&models.Answer{}).
		Select("question_id", "COUNT(*) AS n").
		Where("question_id IN ?", ids).
		Group("question_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.QuestionID] = row.N
	}
	return counts, nil
}

// GetQuestions lists questions, optionally filtered by ?search= and
// ?tags=a,b and ordered by ?sort= (newest, oldest, votes).
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	filter := service.QuestionFilter{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}
	if raw := c.Query("tags"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filter.Tags = append(filter.Tags, name)
			}
		}
	}

	questions, err := h.questions.ListQuestions(c.Request.Context(), filter)
	if err != nil {
		models.RespondWithError(c, err)
		return
	}

	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	counts, err := h.answerCounts(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	// Return empty array not null
	responses := []gin.H{}
	for _, q := range questions {
		responses = append(responses, questionResponse(q, counts[q.ID]))
	}

	c.JSON(http.StatusOK, responses)
}

// GetQuestion returns a single question by ID
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var question models.Question
	if err := h.db.Preload("User").Preload("Tags").First(&question, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	counts, err := h.answerCounts(c.Request.Context(), []uint{question.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
		return
	}

	c.JSON(http.StatusOK, questionResponse(question, counts[question.ID]))
}

// CreateQuestion creates a new question with its tags (PROTECTED)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	question := models.Question{
		Title:       input.Title,
		Description: input.Description,
		UserID:      userID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for _, name := range input.Tags {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			var tag models.Tag
			if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
				return err
			}
			if err := tx.Model(&question).Association("Tags").Append(&tag); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	// New tags invalidate the cached tag list.
	if len(input.Tags) > 0 {
		_ = cache.Delete(c.Request.Context(), h.rdb, tagsCacheKey)
	}

	c.JSON(http.StatusCreated, gin.H{"id": question.ID, "message": "Question created successfully"})
}
