package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Booking   BookingConfig
	Mail      MailConfig
	AWS       AWSConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TTL, default=24h"`
	// AdminPasswordHash is a bcrypt hash, never a plain password.
	AdminEmail        string `env:"ADMIN_EMAIL"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	ResetURLBase      string `env:"PASSWORD_RESET_URL, default=http://localhost:3000/reset"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=booking"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	DedupTTL time.Duration `env:"NEWSLETTER_DEDUP_TTL, default=24h"`
}

type BookingConfig struct {
	// KeyShape is "category" or "phone".
	KeyShape          string `env:"BOOKING_KEY_SHAPE,     default=category"`
	EnforceSlots      bool   `env:"BOOKING_ENFORCE_SLOTS, default=false"`
	EmptyListNotFound bool   `env:"LIST_EMPTY_NOT_FOUND,  default=true"`
}

type MailConfig struct {
	// Driver is "ses", "sendgrid" or "log".
	Driver         string `env:"MAIL_DRIVER, default=log"`
	FromEmail      string `env:"MAIL_FROM,   default=no-reply@localhost"`
	FromName       string `env:"MAIL_FROM_NAME"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
}

type AWSConfig struct {
	Region string `env:"AWS_REGION, default=us-east-1"`
}

type UploadConfig struct {
	Bucket        string `env:"UPLOAD_BUCKET"`
	PublicBaseURL string `env:"UPLOAD_PUBLIC_BASE_URL"`
	MaxBytes      int64  `env:"UPLOAD_MAX_BYTES, default=5242880"`
}

type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS,   default=5"`
	Burst int     `env:"RATE_LIMIT_BURST, default=10"`
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads an optional .env file, then the environment, using go-envconfig.
func Load() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process resolves the configuration from lookuper and validates it.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Booking.KeyShape) {
	case "category", "phone":
	default:
		return fmt.Errorf("BOOKING_KEY_SHAPE must be category or phone, got %q", c.Booking.KeyShape)
	}
	switch strings.ToLower(c.Mail.Driver) {
	case "ses", "log":
	case "sendgrid":
		if c.Mail.SendGridAPIKey == "" {
			return fmt.Errorf("SENDGRID_API_KEY is required with MAIL_DRIVER=sendgrid")
		}
	default:
		return fmt.Errorf("MAIL_DRIVER must be ses, sendgrid or log, got %q", c.Mail.Driver)
	}
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}
