package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stackit/internal/models"
	"stackit/internal/notify"
	"stackit/internal/service"
)

type AnswerHandler struct {
	db       *gorm.DB
	answers  *service.AnswerService
	notifier *notify.Notifier
}

func NewAnswerHandler(db *gorm.DB, answers *service.AnswerService, notifier *notify.Notifier) *AnswerHandler {
	return &AnswerHandler{db: db, answers: answers, notifier: notifier}
}

// GetAnswers lists a question's answers, accepted first, then by votes.
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var question models.Question
	if err := h.db.First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var answers []models.Answer
	if err := h.db.Preload("User").
		Where("question_id = ?", questionID).
		Order("accepted DESC, votes DESC, id ASC").
		Find(&answers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch answers"})
		return
	}

	if answers == nil {
		answers = []models.Answer{}
	}

	c.JSON(http.StatusOK, answers)
}

// CreateAnswer posts an answer to a question (PROTECTED)
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var question models.Question
	if err := h.db.First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	answer := models.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Content:    input.Content,
	}
	if err := h.db.Create(&answer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
		return
	}

	// Best-effort: a failed notification never fails the answer.
	h.notifier.AnswerCreated(c.Request.Context(), answer.ID)

	c.JSON(http.StatusCreated, gin.H{"id": answer.ID, "message": "Answer posted successfully"})
}

// AcceptAnswer marks an answer as the accepted solution (PROTECTED,
// question author only).
func (h *AnswerHandler) AcceptAnswer(c *gin.Context) {
	answerID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.answers.AcceptAnswer(c.Request.Context(), answerID, userID); err != nil {
		models.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accepted": true, "message": "Answer accepted successfully"})
}
