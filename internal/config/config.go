package config

import (
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	SessionDuration time.Duration
	UploadMaxSize   int64
	StaticFilesPath string
	LessonsPath     string
	MigrationsPath  string

	// Database
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	// Auth
	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Email (share links)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// External services
	PixabayAPIKey       string
	AudioStorageBaseURL string
	OpenAIProxyURL      string
	OpenAIAPIKey        string
	ProgressSummaryURL  string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		SessionDuration: 24 * time.Hour,
		UploadMaxSize:   5 * 1024 * 1024, // 5MB
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		LessonsPath:     getEnv("LESSONS_PATH", "./static/lessons"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),

		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./englisharcade.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "English Arcade"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		PixabayAPIKey:       getEnv("PIXABAY_API_KEY", ""),
		AudioStorageBaseURL: getEnv("AUDIO_STORAGE_BASE_URL", ""),
		OpenAIProxyURL:      getEnv("OPENAI_PROXY_URL", ""),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		ProgressSummaryURL:  getEnv("PROGRESS_SUMMARY_URL", ""),

		Debug: getEnv("DEBUG", "") != "",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
