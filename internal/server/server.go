package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stackit/internal/config"
	"stackit/internal/database"
	"stackit/internal/handlers"
	"stackit/internal/middleware"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// New creates and configures the HTTP server.
func New(cfg *config.Config, db database.Service, handler *handlers.Handler) *http.Server {
	s := &Server{
		cfg:     cfg,
		db:      db,
		handler: handler,
	}

	router := s.RegisterRoutes()

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.AppPort,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/register", s.handler.Auth.Register)
		api.POST("/auth/login", s.handler.Auth.Login)

		// Question routes (public reads)
		api.GET("/questions", s.handler.Question.GetQuestions)
		api.GET("/questions/:id", s.handler.Question.GetQuestion)
		api.GET("/questions/:id/answers", s.handler.Answer.GetAnswers)

		// Tag and platform message routes (public reads)
		api.GET("/tags", s.handler.Tag.GetTags)
		api.GET("/platform-messages", s.handler.Platform.GetMessages)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.cfg.JWTSecret))
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.POST("/questions/:id/answers", s.handler.Answer.CreateAnswer)
			protected.POST("/answers/:id/accept", s.handler.Answer.AcceptAnswer)
			protected.POST("/vote", s.handler.Vote.CastVote)

			protected.GET("/notifications", s.handler.Notification.GetNotifications)
			protected.POST("/notifications/:id/read", s.handler.Notification.MarkRead)

			// Admin routes (authentication + admin role required)
			admin := protected.Group("")
			admin.Use(middleware.AdminOnly(s.db.GetDB()))
			{
				admin.GET("/admin/users", s.handler.Admin.ListUsers)
				admin.POST("/admin/users/:id/ban", s.handler.Admin.BanUser)

				admin.POST("/platform-messages", s.handler.Platform.CreateMessage)
				admin.PUT("/platform-messages/:id", s.handler.Platform.UpdateMessage)
				admin.DELETE("/platform-messages/:id", s.handler.Platform.DeleteMessage)
			}
		}
	}

	return r
}
