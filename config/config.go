package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EmailConfig configures the outbound mailer.
type EmailConfig struct {
	Provider              string
	FromAddress           string
	FromName              string
	AWSRegion             string
	AWSAccessKeyID        string
	AWSSecretAccessKey    string
	SESInsecureSkipVerify bool
}

// NotifyConfig configures the new-proposal notification.
type NotifyConfig struct {
	Provider     string
	WebhookURL   string
	WebhookToken string
	// Recipient receives the new-proposal email.
	Recipient string
	ReviewURL string
}

// Config holds all configuration for the application
type Config struct {
	Environment        string
	Port               string
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration

	DataSource       string
	AuthSource       string
	DBUrl            string
	LocalStorePath   string
	SimulatedLatency time.Duration

	JWTSecret string
	JWTExpiry time.Duration
	// ProviderJWTSecret verifies the identity-provider access tokens callers present on sign-in.
	ProviderJWTSecret string

	Email  EmailConfig
	Notify NotifyConfig
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// in production the environment is the only source
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               getEnv("PORT", "8080"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DataSource:         getEnv("DATA_SOURCE", "in-memory"),
		AuthSource:         os.Getenv("AUTH_SOURCE"),
		DBUrl:              os.Getenv("DATABASE_URL"),
		LocalStorePath:     getEnv("LOCAL_STORE_PATH", "communityhub.db"),
		JWTSecret:          os.Getenv("AUTH_JWT_SECRET"),
		Email: EmailConfig{
			Provider:           getEnv("EMAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		Notify: NotifyConfig{
			Provider:     getEnv("NOTIFY_PROVIDER", "noop"),
			WebhookURL:   os.Getenv("NOTIFY_WEBHOOK_URL"),
			WebhookToken: os.Getenv("NOTIFY_WEBHOOK_TOKEN"),
			Recipient:    os.Getenv("NOTIFICATION_EMAIL"),
			ReviewURL:    os.Getenv("PROPOSALS_REVIEW_URL"),
		},
	}

	defaultLatency := "300ms"
	if env == "test" {
		defaultLatency = "0"
	}
	cfg.ProviderJWTSecret = getEnv("AUTH_PROVIDER_JWT_SECRET", cfg.JWTSecret)

	var err error
	if cfg.SimulatedLatency, err = getDuration("SIMULATED_LATENCY", defaultLatency); err != nil {
		return nil, err
	}
	if cfg.JWTExpiry, err = getDuration("AUTH_JWT_EXPIRY", "24h"); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if s := os.Getenv("SES_INSECURE_SKIP_VERIFY"); s != "" {
		if cfg.Email.SESInsecureSkipVerify, err = strconv.ParseBool(s); err != nil {
			return nil, fmt.Errorf("SES_INSECURE_SKIP_VERIFY: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
