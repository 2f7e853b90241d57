package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalogue source kinds.
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceSnapshot = "snapshot"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Catalog  CatalogConfig
	Snapshot SnapshotConfig
	S3       S3Config
	View     ViewConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CatalogConfig selects and configures the product source.
type CatalogConfig struct {
	Source   string // "http", "postgres" or "snapshot"
	BaseURL  string
	Category string
	Timeout  time.Duration
}

// SnapshotConfig holds the location of the catalogue snapshot.
type SnapshotConfig struct {
	Path string
}

// S3Config holds AWS S3 configuration for catalogue snapshots.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "snapshots/")
}

// ViewConfig holds list view tuning.
type ViewConfig struct {
	PageSize      int
	DebounceDelay time.Duration
}

// Load loads configuration from environment variables. When CONFIG_FILE is
// set, the file is read first and environment variables override its values.
func Load() (*Config, error) {
	env, err := newEnv(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: env.getString("SERVER_HOST", "0.0.0.0"),
			Port: env.getInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            env.getString("DB_HOST", "localhost"),
			Port:            env.getInt("DB_PORT", 5432),
			User:            env.getString("DB_USER", "postgres"),
			Password:        env.getString("DB_PASSWORD", ""),
			Database:        env.getString("DB_NAME", "storefront"),
			MaxConnections:  env.getInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  env.getInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: env.getInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  env.getString("LOG_LEVEL", "info"),
			Format: env.getString("LOG_FORMAT", "json"),
		},
		Catalog: CatalogConfig{
			Source:   strings.ToLower(env.getString("CATALOG_SOURCE", SourceHTTP)),
			BaseURL:  env.getString("CATALOG_BASE_URL", "https://dummyjson.com/"),
			Category: env.getString("CATALOG_CATEGORY", "smartphones"),
			Timeout:  env.getDuration("CATALOG_TIMEOUT", 10*time.Second),
		},
		Snapshot: SnapshotConfig{
			Path: env.getString("SNAPSHOT_PATH", "data/products.json.gz"),
		},
		S3: S3Config{
			Enabled: env.getBool("S3_ENABLED", false),
			Bucket:  env.getString("S3_BUCKET", ""),
			Region:  env.getString("S3_REGION", "us-east-1"),
			Prefix:  env.getString("S3_PREFIX", "snapshots/"),
		},
		View: ViewConfig{
			PageSize:      env.getInt("VIEW_PAGE_SIZE", 12),
			DebounceDelay: env.getDuration("VIEW_DEBOUNCE_DELAY", 500*time.Millisecond),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Catalog.Source {
	case SourceHTTP:
		if c.Catalog.BaseURL == "" {
			return fmt.Errorf("catalog base URL is required for the http source")
		}
	case SourcePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	case SourceSnapshot:
		if c.Snapshot.Path == "" {
			return fmt.Errorf("snapshot path is required for the snapshot source")
		}
	default:
		return fmt.Errorf("invalid catalog source: %s (must be http, postgres, or snapshot)", c.Catalog.Source)
	}

	if c.Catalog.Category == "" {
		return fmt.Errorf("catalog category is required")
	}

	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.View.PageSize < 1 {
		return fmt.Errorf("view page size must be at least 1")
	}

	if c.View.DebounceDelay < 0 {
		return fmt.Errorf("view debounce delay cannot be negative")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// env reads settings from the process environment, layered over an optional
// config file.
type env struct {
	v *viper.Viper
}

func newEnv(configFile string) (*env, error) {
	v := viper.New()
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	return &env{v: v}, nil
}

// getString retrieves a setting or returns a default value.
func (e *env) getString(key, defaultValue string) string {
	if value := e.v.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt retrieves a setting as an integer or returns a default value.
func (e *env) getInt(key string, defaultValue int) int {
	if value := e.v.GetString(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBool retrieves a setting as a boolean or returns a default value.
func (e *env) getBool(key string, defaultValue bool) bool {
	if value := e.v.GetString(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDuration retrieves a setting as a duration ("750ms", "2s") or returns a
// default value. A bare integer is taken as milliseconds.
func (e *env) getDuration(key string, defaultValue time.Duration) time.Duration {
	value := e.v.GetString(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
