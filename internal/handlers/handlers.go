package handlers

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stackit/internal/config"
	"stackit/internal/notify"
	"stackit/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth         *AuthHandler
	Question     *QuestionHandler
	Answer       *AnswerHandler
	Vote         *VoteHandler
	Notification *NotificationHandler
	Tag          *TagHandler
	Platform     *PlatformHandler
	Admin        *AdminHandler
}

// NewHandler creates a unified handler with all sub-handlers. rdb may be
// nil, which disables response caching.
func NewHandler(db *gorm.DB, rdb *redis.Client, notifier *notify.Notifier, cfg *config.Config) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(db, cfg.JWTSecret),
		Question:     NewQuestionHandler(db, rdb, service.NewQuestionService(db)),
		Answer:       NewAnswerHandler(db, service.NewAnswerService(db), notifier),
		Vote:         NewVoteHandler(service.NewVoteService(db)),
		Notification: NewNotificationHandler(db),
		Tag:          NewTagHandler(db, rdb),
		Platform:     NewPlatformHandler(db, rdb),
		Admin:        NewAdminHandler(db),
	}
}
