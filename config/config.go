package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// productionProjectID is the GCP project that serves real traffic. Any
// other GCLOUD_PROJECT value is treated as a development environment.
const productionProjectID = "servitec-peru"

type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	SMS      SMSConfig
	Captcha  CaptchaConfig
	Uploads  UploadsConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsPath string
	StorageBucket   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Email    string
	Password string
}

type SMSConfig struct {
	GatewayURL string
	APIKey     string
	From       string
}

type CaptchaConfig struct {
	Secret string
}

type UploadsConfig struct {
	ThumbAttempts  int
	ThumbBaseDelay time.Duration
	ThumbMaxDelay  time.Duration
}

type AppConfig struct {
	Environment  string
	LogLevel     string
	Version      string
	MessagesPath string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	projectID := getEnv("GCLOUD_PROJECT", "")

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       projectID,
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			StorageBucket:   getEnv("STORAGE_BUCKET", projectID+".appspot.com"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Email:    getEnv("SMTP_EMAIL", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
		},
		SMS: SMSConfig{
			GatewayURL: getEnv("SMS_GATEWAY_URL", ""),
			APIKey:     getEnv("SMS_API_KEY", ""),
			From:       getEnv("SMS_FROM", "Servitec"),
		},
		Captcha: CaptchaConfig{
			Secret: getEnv("CAPTCHA_SECRET", ""),
		},
		Uploads: UploadsConfig{
			ThumbAttempts:  getEnvAsInt("UPLOAD_THUMB_ATTEMPTS", 10),
			ThumbBaseDelay: getEnvAsDuration("UPLOAD_THUMB_BASE_DELAY", time.Second),
			ThumbMaxDelay:  getEnvAsDuration("UPLOAD_THUMB_MAX_DELAY", time.Second),
		},
		App: AppConfig{
			Environment:  getEnv("APP_ENV", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			MessagesPath: getEnv("MESSAGES_PATH", "config/messages.yaml"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("GCLOUD_PROJECT is required")
	}

	if c.Uploads.ThumbAttempts <= 0 {
		return fmt.Errorf("UPLOAD_THUMB_ATTEMPTS must be positive")
	}

	return nil
}

// IsProduction reports whether the service runs against the production
// Firebase project.
func (c *Config) IsProduction() bool {
	return c.Firebase.ProjectID == productionProjectID
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
