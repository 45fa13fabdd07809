package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMasterDataTimeout is the blanket timeout applied to every Master Data Service call
	DefaultMasterDataTimeout = 15 * time.Second
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	LogLevel    string
	// Master Data Service
	MasterDataURL     string
	MasterDataTimeout time.Duration
	MasterDataToken   string // Fallback credential when the request carries none
	// Drafts
	DraftTTL time.Duration
	// Exports
	ExportDir      string
	ExportTTL      time.Duration
	AllowedOrigins []string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "db/app.db"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MasterDataURL:     strings.TrimSuffix(getEnv("MASTER_DATA_URL", "http://localhost:9000/api"), "/"),
		MasterDataTimeout: getEnvSeconds("MASTER_DATA_TIMEOUT_SECONDS", DefaultMasterDataTimeout),
		MasterDataToken:   os.Getenv("MASTER_DATA_TOKEN"),
		DraftTTL:          getEnvHours("DRAFT_TTL_HOURS", 24*time.Hour),
		ExportDir:         getEnv("EXPORT_DIR", "static/exports"),
		ExportTTL:         getEnvHours("EXPORT_TTL_HOURS", 72*time.Hour),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
	}
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// R2Configured reports whether every R2 credential is present
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		logrus.Warnf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}

func getEnvHours(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	hours, err := strconv.Atoi(value)
	if err != nil || hours <= 0 {
		logrus.Warnf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return time.Duration(hours) * time.Hour
}
