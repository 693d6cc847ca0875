package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Upload   UploadConfig
	Admin    AdminConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxOpen  int
	MaxIdle  int
}

// RedisConfig is optional; an empty Addr disables the project cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type UploadConfig struct {
	// Backend selects where uploaded images live: "disk" or "s3".
	Backend  string
	Dir      string
	S3Bucket string
	S3Prefix string
	// SweepSchedule is a cron spec for the orphaned-upload sweep.
	// Empty disables the sweep.
	SweepSchedule string
}

type AdminConfig struct {
	// APIKey guards the admin endpoints. Empty means admin routes
	// always reject.
	APIKey string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	SeedData    bool
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			CORSOrigins: splitEnv("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "project"),
			MaxOpen:  getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdle:  getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Upload: UploadConfig{
			Backend:       getEnv("UPLOAD_BACKEND", "disk"),
			Dir:           getEnv("UPLOAD_DIR", "public/uploads"),
			S3Bucket:      getEnv("UPLOAD_S3_BUCKET", ""),
			S3Prefix:      getEnv("UPLOAD_S3_PREFIX", "uploads"),
			SweepSchedule: getEnv("UPLOAD_SWEEP_SCHEDULE", "@hourly"),
		},
		Admin: AdminConfig{
			APIKey: getEnv("ADMIN_API_KEY", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			SeedData:    getEnvAsBool("SEED_DATA", false),
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

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	switch c.Upload.Backend {
	case "disk":
		if c.Upload.Dir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for the disk backend")
		}
	case "s3":
		if c.Upload.S3Bucket == "" {
			return fmt.Errorf("UPLOAD_S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("UPLOAD_BACKEND must be disk or s3, got %q", c.Upload.Backend)
	}

	return nil
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
