package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stackit/internal/cache"
	"stackit/internal/models"
)

const (
	platformCacheKey = "platform_messages:active"
	platformCacheTTL = time.Minute
)

type PlatformHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewPlatformHandler(db *gorm.DB, rdb *redis.Client) *PlatformHandler {
	return &PlatformHandler{db: db, rdb: rdb}
}

// GetMessages lists active platform messages, newest first.
func (h *PlatformHandler) GetMessages(c *gin.Context) {
	ctx := c.Request.Context()

	var messages []models.PlatformMessage
	if hit, err := cache.Get(ctx, h.rdb, platformCacheKey, &messages); err == nil && hit {
		c.JSON(http.StatusOK, messages)
		return
	}

	if err := h.db.Where("active = ?", true).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch platform messages"})
		return
	}

	if messages == nil {
		messages = []models.PlatformMessage{}
	}

	_ = cache.Set(ctx, h.rdb, platformCacheKey, messages, platformCacheTTL)

	c.JSON(http.StatusOK, messages)
}

// CreateMessage publishes a new platform message (ADMIN)
func (h *PlatformHandler) CreateMessage(c *gin.Context) {
	var input models.CreatePlatformMessageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	message := models.PlatformMessage{Message: input.Message, Active: true}
	if err := h.db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create platform message"})
		return
	}

	_ = cache.Delete(c.Request.Context(), h.rdb, platformCacheKey)

	c.JSON(http.StatusCreated, gin.H{"id": message.ID, "message": "Platform message created successfully"})
}

// UpdateMessage activates or deactivates a platform message (ADMIN)
func (h *PlatformHandler) UpdateMessage(c *gin.Context) {
	messageID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var input models.UpdatePlatformMessageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active is required"})
		return
	}

	res := h.db.Model(&models.PlatformMessage{}).
		Where("id = ?", messageID).
		Update("active", *input.Active)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update platform message"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Platform message not found"})
		return
	}

	_ = cache.Delete(c.Request.Context(), h.rdb, platformCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "Platform message updated successfully"})
}

// DeleteMessage removes a platform message (ADMIN)
func (h *PlatformHandler) DeleteMessage(c *gin.Context) {
	messageID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	res := h.db.Delete(&models.PlatformMessage{}, messageID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete platform message"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Platform message not found"})
		return
	}

	_ = cache.Delete(c.Request.Context(), h.rdb, platformCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "Platform message deleted successfully"})
}
