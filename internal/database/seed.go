package database

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stackit/internal/models"
)

var defaultTags = []string{
	"React", "JavaScript", "Python", "Node.js", "CSS", "HTML", "TypeScript",
	"Vue.js", "Angular", "Django", "Flask", "Express", "MongoDB",
	"PostgreSQL", "MySQL", "Docker", "AWS", "Git", "JWT", "OAuth",
	"REST API", "GraphQL", "Webpack", "Vite",
}

// Seed creates the admin account, the default tag set, and the welcome
// banner if they are missing. Safe to run repeatedly.
func Seed(db *gorm.DB) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var admin models.User
	err := db.Where("username = ?", "admin").First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin = models.User{
			Username: "admin",
			Email:    "admin@stackit.com",
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		logrus.Info("seeded admin account")
	} else if err != nil {
		return err
	}

	for _, name := range defaultTags {
		var tag models.Tag
		if err := db.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return err
		}
	}

	welcome := "Welcome to StackIt! Please read our community guidelines before posting."
	var message models.PlatformMessage
	if err := db.Where("message = ?", welcome).
		FirstOrCreate(&message, models.PlatformMessage{Message: welcome, Active: true}).Error; err != nil {
		return err
	}

	return nil
}
