package config

import (
	"os"
	"strconv"
)

// Database settings
var PostgresHost = getEnv("POSTGRES_HOST", "localhost")
var PostgresPort = getEnv("POSTGRES_PORT", "5432")
var PostgresUser = getEnv("POSTGRES_USER", "cyberlab")
var PostgresDB = getEnv("POSTGRES_DB", "cyberlab")
var PostgresPassword = getEnv("POSTGRES_PASSWORD", "")

// Server settings
var ServerPort = getEnv("SERVER_PORT", "8080")
var ClientUrl = getEnv("CLIENT_URL", "http://localhost:3000")

// Auth settings
var JWTSecret = getEnv("JWT_SECRET", "jwt-secret-change-in-production")
var JWTExpiryHours = getEnvInt("JWT_EXPIRY_HOURS", 24)

// Mail settings
var MailHost = getEnv("MAIL_HOST", "")
var MailPort = getEnv("MAIL_PORT", "587")
var MailUsername = getEnv("MAIL_USERNAME", "")
var MailPassword = getEnv("MAIL_PASSWORD", "")

// Upload settings
var UploadDir = getEnv("UPLOAD_DIR", "uploads/challenges")

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
