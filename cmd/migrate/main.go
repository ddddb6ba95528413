package main

import (
	"github.com/sirupsen/logrus"

	"stackit/internal/config"
	"stackit/internal/database"
)

// Runs migrations and seeds the default data, then exits.
func main() {
	cfg := config.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Seed(db.GetDB()); err != nil {
		logrus.Fatalf("failed to seed database: %v", err)
	}

	logrus.Info("migrations and seed completed")
}
