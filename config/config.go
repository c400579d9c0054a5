package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/utils"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverBolt     = "bolt"

	MailDriverSMTP = "smtp"
	MailDriverLog  = "log"
)

// Config holds every setting read from the environment.
type Config struct {
	StorageDriver string
	DatabaseURL   string
	BoltPath      string

	ServerPort   int
	JWTSecretKey string
	BaseURL      string
	Location     *time.Location
	CORSOrigins  []string
	LogLevel     slog.Level

	MailDriver string
	MailFrom   string
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string

	AdminEmail        string
	AdminPasswordHash string

	DailyTriggerEnabled bool
	DailyTriggerTime    models.TimeOfDay

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads the configuration from the environment, loading an optional
// .env file first.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Missing optional settings get defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		StorageDriver: strings.ToLower(get("STORAGE_DRIVER", StorageDriverPostgres)),
		DatabaseURL:   get("DATABASE_URL", ""),
		BoltPath:      get("BOLT_PATH", "futbol5.db"),
		JWTSecretKey:  get("JWT_SECRET_KEY", ""),
		BaseURL:       strings.TrimRight(get("BASE_URL", "http://localhost:8080"), "/"),

		MailDriver: strings.ToLower(get("MAIL_DRIVER", MailDriverSMTP)),
		MailFrom:   get("MAIL_FROM", "Fobal <noreply@fobal.com>"),
		SMTPHost:   get("SMTP_HOST", ""),
		SMTPUser:   get("SMTP_USER", ""),
		SMTPPass:   get("SMTP_PASS", ""),

		AdminEmail:        get("ADMIN_EMAIL", ""),
		AdminPasswordHash: get("ADMIN_PASSWORD_HASH", ""),

		R2AccountID:       get("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     get("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: get("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      get("R2_BUCKET_NAME", ""),
		R2PublicBaseURL:   get("R2_PUBLIC_BASE_URL", ""),
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL environment variable is not set")
		}
	case StorageDriverBolt:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverPostgres, StorageDriverBolt, cfg.StorageDriver)
	}

	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY environment variable is not set")
	}

	var err error
	if cfg.ServerPort, err = parsePort("SERVER_PORT", get("SERVER_PORT", "8080")); err != nil {
		return nil, err
	}

	if cfg.Location, err = time.LoadLocation(get("TIME_ZONE", "America/Argentina/Buenos_Aires")); err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	for _, origin := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	switch cfg.MailDriver {
	case MailDriverLog:
	case MailDriverSMTP:
		if cfg.SMTPHost == "" {
			return nil, errors.New("SMTP_HOST environment variable is not set (use MAIL_DRIVER=log to disable email)")
		}
		if cfg.SMTPPort, err = parsePort("SMTP_PORT", get("SMTP_PORT", "587")); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("MAIL_DRIVER must be %q or %q, got %q", MailDriverSMTP, MailDriverLog, cfg.MailDriver)
	}

	if cfg.AdminPasswordHash == "" {
		if plain := getenv("ADMIN_PASSWORD"); plain != "" {
			if cfg.AdminPasswordHash, err = utils.HashPassword(plain); err != nil {
				return nil, fmt.Errorf("failed to hash ADMIN_PASSWORD: %w", err)
			}
		}
	}

	if cfg.DailyTriggerEnabled, err = strconv.ParseBool(get("DAILY_TRIGGER_ENABLED", "true")); err != nil {
		return nil, fmt.Errorf("invalid DAILY_TRIGGER_ENABLED: %w", err)
	}
	if cfg.DailyTriggerTime, err = models.ParseTimeOfDay(get("DAILY_TRIGGER_TIME", "10:00")); err != nil {
		return nil, fmt.Errorf("invalid DAILY_TRIGGER_TIME: %w", err)
	}

	return cfg, nil
}

func parsePort(name, value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return port, nil
}
