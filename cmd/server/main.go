package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"stackit/internal/config"
	"stackit/internal/database"
	"stackit/internal/handlers"
	"stackit/internal/notify"
	"stackit/internal/server"
)

func main() {
	cfg := config.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	// Caching is optional; the app runs without Redis.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			logrus.WithError(err).Warn("redis unavailable, caching disabled")
			rdb = nil
		}
	}

	notifier := notify.New(db.GetDB(), cfg)
	handler := handlers.NewHandler(db.GetDB(), rdb, notifier, cfg)

	srv := server.New(cfg, db, handler)

	logrus.Infof("server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("server error: %v", err)
	}
}
