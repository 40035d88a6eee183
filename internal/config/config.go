package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration values
type Config struct {
	Server      ServerConfig   `envconfig:"SERVER"`
	DatabaseURL string         `split_words:"true"`
	Database    DatabaseConfig `envconfig:"DB"`
	Redis       RedisConfig    `envconfig:"REDIS"`
	JWT         JWTConfig      `envconfig:"JWT"`
	Stripe      StripeConfig   `envconfig:"STRIPE"`
	Payment     PaymentConfig  `envconfig:"PAYMENT"`
	CORS        CORSConfig     `envconfig:"CORS"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string `split_words:"true" default:"8080"`
	Env  string `split_words:"true" default:"development"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `split_words:"true" default:"localhost"`
	Port        int    `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true" default:"tutorhub"`
	SSLMode     string `envconfig:"SSLMODE" default:"disable"`
	AutoMigrate bool   `split_words:"true" default:"true"`
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// RedisConfig holds Redis configuration. An empty URL disables Redis.
type RedisConfig struct {
	URL      string `split_words:"true"`
	Password string `split_words:"true"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string        `split_words:"true" required:"true"`
	Expiry time.Duration `split_words:"true" default:"1h"`
}

// StripeConfig holds payment processor credentials
type StripeConfig struct {
	SecretKey string `split_words:"true"`
}

// PaymentConfig holds checkout settings
type PaymentConfig struct {
	Currency      string `split_words:"true" default:"usd"`
	VerifyCapture bool   `split_words:"true" default:"true"`
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string `split_words:"true" default:"*"`
}

// DSN returns DATABASE_URL when set, otherwise the URL built from the DB_* settings
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.Database.URL()
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("failed to load config: JWT_SECRET must not be empty")
	}
	return &cfg, nil
}
