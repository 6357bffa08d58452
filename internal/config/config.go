package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DataSourcePostgres = "postgres"
	DataSourceRemote   = "remote"
)

type Config struct {
	App      AppConfig
	Source   SourceConfig
	Database DatabaseConfig
	Remote   RemoteConfig
	Snapshot SnapshotConfig
	CORS     CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
	Env      string `validate:"oneof=development staging production"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

// SourceConfig selects where the dashboard collections are read from.
type SourceConfig struct {
	Kind string `validate:"oneof=postgres remote"`
}

type DatabaseConfig struct {
	Host            string
	Port            int `validate:"min=1,max=65535"`
	User            string
	Password        string
	Name            string
	SSLMode         string        `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns        int32         `validate:"gte=0"`
	MinConns        int32         `validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime time.Duration `validate:"gte=0"`
}

// RemoteConfig points at another instance of the API serving the entity collections.
type RemoteConfig struct {
	BaseURL string `validate:"omitempty,url"`
	APIKey  string
	Timeout time.Duration `validate:"gte=0"`
}

type SnapshotConfig struct {
	// TTL is how long a snapshot is served before Current refetches. Zero disables expiry.
	TTL time.Duration `validate:"gte=0"`
	// RefreshInterval drives the background refresh job. Zero disables the job.
	RefreshInterval time.Duration `validate:"gte=0"`
	FetchTimeout    time.Duration `validate:"gte=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `validate:"dive,url"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	var errs []error
	config := &Config{}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "opsboard"),
		Port:     getEnvInt("APP_PORT", 8080, &errs),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	config.Source = SourceConfig{
		Kind: strings.ToLower(getEnv("DATA_SOURCE", DataSourcePostgres)),
	}

	// Database configuration
	config.Database = DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvInt("DB_PORT", 5432, &errs),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		Name:            getEnv("DB_NAME", "opsboard"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxConns:        int32(getEnvInt("DB_MAX_CONNS", 25, &errs)),
		MinConns:        int32(getEnvInt("DB_MIN_CONNS", 5, &errs)),
		MaxConnLifetime: getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour, &errs),
	}

	config.Remote = RemoteConfig{
		BaseURL: getEnv("REMOTE_API_URL", ""),
		APIKey:  getEnv("REMOTE_API_KEY", ""),
		Timeout: getEnvDuration("REMOTE_API_TIMEOUT", 10*time.Second, &errs),
	}

	config.Snapshot = SnapshotConfig{
		TTL:             getEnvDuration("SNAPSHOT_TTL", 5*time.Minute, &errs),
		RefreshInterval: getEnvDuration("SNAPSHOT_REFRESH_INTERVAL", 5*time.Minute, &errs),
		FetchTimeout:    getEnvDuration("SNAPSHOT_FETCH_TIMEOUT", 15*time.Second, &errs),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks struct tags, then the rules that depend on the data source.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Source.Kind {
	case DataSourcePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DataSourceRemote:
		if c.Remote.BaseURL == "" {
			return fmt.Errorf("REMOTE_API_URL is required")
		}
	}
	return nil
}

// UsesDatabase reports whether entity CRUD is available.
func (c *Config) UsesDatabase() bool {
	return c.Source.Kind == DataSourcePostgres
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
