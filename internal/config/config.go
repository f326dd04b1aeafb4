package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort            = "3333"
	defaultJWTExpiration   = 7 * 24 * time.Hour
	defaultS3Region        = "us-east-1"
	defaultLogLevel        = "info"
	defaultCORSAllowOrigin = "*"
)

// Config holds runtime configuration sourced from environment variables
type Config struct {
	Port        string
	DatabaseURL string
	GinMode     string
	LogLevel    string
	CORSOrigins []string

	JWTSecret     string
	JWTExpiration time.Duration

	S3 S3Config

	// Warnings collects non-fatal problems found while loading, so the
	// caller can log them once a logger exists.
	Warnings []string
}

// S3Config describes the bucket used for product image uploads.
// Uploads are disabled when Bucket is empty.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// Enabled reports whether image uploads are configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Load reads configuration from the environment and validates required values
func Load() (*Config, error) {
	cfg := &Config{
		Port:        fallback(os.Getenv("SERVER_PORT"), defaultPort),
		GinMode:     strings.TrimSpace(os.Getenv("GIN_MODE")),
		LogLevel:    fallback(os.Getenv("LOG_LEVEL"), defaultLogLevel),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), defaultCORSAllowOrigin)),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		S3: S3Config{
			Bucket:    strings.TrimSpace(os.Getenv("S3_BUCKET")),
			Region:    fallback(os.Getenv("S3_REGION"), defaultS3Region),
			Endpoint:  strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			AccessKey: strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
			PublicURL: strings.TrimRight(strings.TrimSpace(os.Getenv("S3_PUBLIC_URL")), "/"),
		},
	}

	switch cfg.GinMode {
	case "", "debug", "release", "test":
	default:
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown GIN_MODE %q ignored", cfg.GinMode))
		cfg.GinMode = ""
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	cfg.JWTExpiration = defaultJWTExpiration
	if hoursStr := strings.TrimSpace(os.Getenv("JWT_EXPIRATION_HOURS")); hoursStr != "" {
		hours, err := strconv.ParseInt(hoursStr, 10, 64)
		if err != nil || hours <= 0 {
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("invalid JWT_EXPIRATION_HOURS %q, defaulting to %v", hoursStr, defaultJWTExpiration))
		} else {
			cfg.JWTExpiration = time.Duration(hours) * time.Hour
		}
	}

	dsn, err := loadDatabaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = dsn

	return cfg, nil
}

// HTTPAddress returns the address for the HTTP server to bind to
func (c *Config) HTTPAddress() string {
	return ":" + c.Port
}

// loadDatabaseURL prefers DATABASE_URL and falls back to the discrete DB_* variables
func loadDatabaseURL() (string, error) {
	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		return url, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return "", errors.New("database environment variables not set (DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName), nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{defaultCORSAllowOrigin}
	}
	return out
}
