package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings, read once at process start.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	RedisAddr   string

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	HealthInsuranceFile string
	FrontendBaseURL     string

	// TestMode exposes the verification-token lookup endpoint for e2e suites.
	TestMode bool
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the process-wide configuration, loading it on first use.
func Get() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Error loading .env file. Using environment variables directly.")
		}

		smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

		cfg = &Config{
			Port:                getEnv("PORT", "8000"),
			DatabaseURL:         os.Getenv("DATABASE_URL"),
			JWTSecret:           getEnv("JWT_SECRET", "solid_secret_key"),
			RedisAddr:           os.Getenv("REDIS_ADDR"),
			SMTPHost:            os.Getenv("SMTP_HOST"),
			SMTPPort:            smtpPort,
			EmailUser:           os.Getenv("EMAIL_USER"),
			EmailPass:           os.Getenv("EMAIL_PASS"),
			CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			HealthInsuranceFile: getEnv("HEALTH_INSURANCE_FILE", "data/health_insurance.json"),
			FrontendBaseURL:     getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
			TestMode:            getEnv("TEST_MODE", "false") == "true",
		}
	})
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
