// Package config reads settings from TEAMSCHED_* environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Every field has a
// usable default; the S3 fields stay empty unless remote backups are
// wanted.
type Config struct {
	DBPath       string
	LogLevel     string
	LogFormat    string
	ScanInterval time.Duration
	NotifyURLs   []string

	S3Endpoint          string
	S3Bucket            string
	S3Region            string
	S3AccessKey         string
	S3SecretKey         string
	BackupPassphrase    string
	BackupPrefix        string
	BackupSchedule      string
	BackupRetentionDays int
}

// Load reads configuration from environment variables and a .env file if
// one is present. Variables already set in the environment win over the
// file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:              getenv("TEAMSCHED_DB_PATH", "teamsched.db"),
		LogLevel:            strings.ToLower(getenv("TEAMSCHED_LOG_LEVEL", "info")),
		LogFormat:           strings.ToLower(getenv("TEAMSCHED_LOG_FORMAT", "text")),
		S3Endpoint:          os.Getenv("TEAMSCHED_S3_ENDPOINT"),
		S3Bucket:            os.Getenv("TEAMSCHED_S3_BUCKET"),
		S3Region:            getenv("TEAMSCHED_S3_REGION", "auto"),
		S3AccessKey:         os.Getenv("TEAMSCHED_S3_ACCESS_KEY"),
		S3SecretKey:         os.Getenv("TEAMSCHED_S3_SECRET_KEY"),
		BackupPassphrase:    os.Getenv("TEAMSCHED_BACKUP_PASSPHRASE"),
		BackupPrefix:        getenv("TEAMSCHED_BACKUP_PREFIX", "backups/"),
		BackupSchedule:      getenv("TEAMSCHED_BACKUP_SCHEDULE", "0 3 * * *"),
		BackupRetentionDays: 30,
	}

	if raw := os.Getenv("TEAMSCHED_SCAN_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TEAMSCHED_SCAN_INTERVAL: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("TEAMSCHED_SCAN_INTERVAL must be positive, got %s", raw)
		}
		cfg.ScanInterval = interval
	}

	if raw := os.Getenv("TEAMSCHED_BACKUP_RETENTION_DAYS"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TEAMSCHED_BACKUP_RETENTION_DAYS: %w", err)
		}
		cfg.BackupRetentionDays = days
	}

	if raw := os.Getenv("TEAMSCHED_NOTIFY_URLS"); raw != "" {
		for _, u := range strings.Split(raw, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.NotifyURLs = append(cfg.NotifyURLs, u)
			}
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
