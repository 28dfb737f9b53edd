package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	DB       DatabaseConfig
	Redis    RedisConfig
	Gateway  GatewayConfig
	Courier  CourierConfig
	Telegram TelegramConfig
	SMTP     SMTPConfig
	Worker   WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// GatewayConfig contains payment gateway credentials. SignatureKey verifies
// incoming payment webhooks.
type GatewayConfig struct {
	BaseURL      string
	APIKey       string
	CollectionID string
	SignatureKey string
	CallbackURL  string
	RedirectURL  string
}

// CourierConfig contains shipping courier API credentials.
type CourierConfig struct {
	BaseURL        string
	APIKey         string
	WebhookSecret  string
	PickupPostcode string
}

// TelegramConfig contains the notification bot credentials. AdminChatID is
// where operational alerts (new orders, chat messages) are posted.
type TelegramConfig struct {
	BotToken    string
	AdminChatID string
}

// SMTPConfig contains outbound email parameters.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	NotifyInterval      time.Duration
	ShipmentInterval    time.Duration
	ShipmentStaleAfter  time.Duration
	OrderExpiryInterval time.Duration
	OrderExpiryAfter    time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Payment gateway
	cfg.Gateway = GatewayConfig{
		BaseURL:      getEnv("GATEWAY_BASE_URL", "https://www.billplz.com/api"),
		APIKey:       getEnv("GATEWAY_API_KEY", ""),
		CollectionID: getEnv("GATEWAY_COLLECTION_ID", ""),
		SignatureKey: getEnv("GATEWAY_SIGNATURE_KEY", ""),
		CallbackURL:  getEnv("GATEWAY_CALLBACK_URL", ""),
		RedirectURL:  getEnv("GATEWAY_REDIRECT_URL", ""),
	}

	// Shipping courier
	cfg.Courier = CourierConfig{
		BaseURL:        getEnv("COURIER_BASE_URL", "https://connect.easyparcel.my/api/v1"),
		APIKey:         getEnv("COURIER_API_KEY", ""),
		WebhookSecret:  getEnv("COURIER_WEBHOOK_SECRET", ""),
		PickupPostcode: getEnv("COURIER_PICKUP_POSTCODE", "50000"),
	}

	// Telegram
	cfg.Telegram = TelegramConfig{
		BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		AdminChatID: getEnv("TELEGRAM_ADMIN_CHAT_ID", ""),
	}

	// SMTP
	cfg.SMTP = SMTPConfig{
		Host: getEnv("SMTP_HOST", ""),
		Port: getEnv("SMTP_PORT", "587"),
		User: getEnv("SMTP_USER", ""),
		Pass: getEnv("SMTP_PASS", ""),
		From: getEnv("SMTP_FROM", "no-reply@pasarlink.my"),
	}

	// Workers (durations)
	var err error
	if cfg.Worker.NotifyInterval, err = parseDurationEnv("NOTIFY_INTERVAL", "30s"); err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_INTERVAL: %w", err)
	}
	if cfg.Worker.ShipmentInterval, err = parseDurationEnv("SHIPMENT_CHECK_INTERVAL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid SHIPMENT_CHECK_INTERVAL: %w", err)
	}
	if cfg.Worker.ShipmentStaleAfter, err = parseDurationEnv("SHIPMENT_STALE_AFTER", "1h"); err != nil {
		return nil, fmt.Errorf("invalid SHIPMENT_STALE_AFTER: %w", err)
	}
	if cfg.Worker.OrderExpiryInterval, err = parseDurationEnv("ORDER_EXPIRY_INTERVAL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid ORDER_EXPIRY_INTERVAL: %w", err)
	}
	if cfg.Worker.OrderExpiryAfter, err = parseDurationEnv("ORDER_EXPIRY_AFTER", "24h"); err != nil {
		return nil, fmt.Errorf("invalid ORDER_EXPIRY_AFTER: %w", err)
	}

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
