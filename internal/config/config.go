package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	AppPort    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  string
	RedisAddr  string
	RedisPass  string
	RedisDB    int

	// Twilio credentials for SMS notification delivery; all three must be
	// set for SMS to be enabled.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	IsProd bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load()
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	cfg := &Config{
		AppPort:          os.Getenv("PORT"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSSLMode:        os.Getenv("DB_SSLMODE"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASS"),
		RedisDB:          redisDB,
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		IsProd:           os.Getenv("IS_PROD") == "true",
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}

	return cfg
}

// SMSEnabled reports whether Twilio delivery is configured.
func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}
