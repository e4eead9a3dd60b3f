package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig          `envPrefix:"APP_"`
	Mongo        MongoConfig        `envPrefix:"MONGO_"`
	Redis        RedisConfig        `envPrefix:"REDIS_"`
	Logger       LoggerConfig       `envPrefix:"LOG_"`
	Auth         AuthConfig         `envPrefix:"AUTH_"`
	Notification NotificationConfig `envPrefix:"NOTIFY_"`
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"NAME" envDefault:"absence-reporting-service"`
	Env                   string `env:"ENV" envDefault:"development"`
	Host                  string `env:"HOST" envDefault:"0.0.0.0"`
	Port                  string `env:"PORT" envDefault:"8080"`
	Version               string `env:"VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
}

// MongoConfig holds document store connection values.
type MongoConfig struct {
	URI            string `env:"URI" envDefault:"mongodb://127.0.0.1:27017"`
	Database       string `env:"DATABASE" envDefault:"absence_reporting"`
	TimeoutSeconds int    `env:"TIMEOUT_SECONDS" envDefault:"10"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"127.0.0.1:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LEVEL" envDefault:"info"`
}

// AuthConfig defines session and token parameters.
type AuthConfig struct {
	JWTSecret             string `env:"JWT_SECRET" envDefault:"dev-secret"`
	AccessTokenTTLMinutes int    `env:"ACCESS_TOKEN_TTL_MINUTES" envDefault:"480"`
	LoginSessionTTLMin    int    `env:"LOGIN_SESSION_TTL_MINUTES" envDefault:"30"`
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string `env:"EMAIL_FROM" envDefault:"noreply@example.com"`
	WebhookURL string `env:"WEBHOOK_URL"`
}

// Load reads configuration from the environment, consulting .env first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ConnectTimeout returns the store connection timeout.
func (m MongoConfig) ConnectTimeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the bearer token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// LoginSessionTTL returns how long a staged login may idle before expiring.
func (a AuthConfig) LoginSessionTTL() time.Duration {
	if a.LoginSessionTTLMin <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(a.LoginSessionTTLMin) * time.Minute
}
