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
	tagsCacheKey = "tags:all"
	tagsCacheTTL = 5 * time.Minute
)

type TagHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewTagHandler(db *gorm.DB, rdb *redis.Client) *TagHandler {
	return &TagHandler{db: db, rdb: rdb}
}

// GetTags returns all tag names sorted alphabetically.
func (h *TagHandler) GetTags(c *gin.Context) {
	ctx := c.Request.Context()

	var names []string
	if hit, err := cache.Get(ctx, h.rdb, tagsCacheKey, &names); err == nil && hit {
		c.JSON(http.StatusOK, names)
		return
	}

	if err := h.db.Model(&models.Tag{}).Order("name ASC").Pluck("name", &names).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	if names == nil {
		names = []string{}
	}

	_ = cache.Set(ctx, h.rdb, tagsCacheKey, names, tagsCacheTTL)

	c.JSON(http.StatusOK, names)
}
