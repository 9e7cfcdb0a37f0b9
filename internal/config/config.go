package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment and an optional file.
type Config struct {
	AppPort string
	Env     string

	DatabaseDriver    string
	DatabaseDSN       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	MigrationMode     string

	JWTSecret     string
	JWTExpiration time.Duration

	LogLevel  string
	LogFormat string

	CORSAllowOrigins string

	PageDefaultSize int
	PageMaxSize     int

	ShutdownTimeout time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	MigrationAuto = "auto"
	MigrationSQL  = "sql"
	MigrationNone = "none"
)

// SetDefaults registers every known key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("ENV", "production")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=jurnal port=5432 sslmode=disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("MIGRATION_MODE", MigrationAuto)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("PAGE_DEFAULT_SIZE", 10)
	v.SetDefault("PAGE_MAX_SIZE", 100)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads configuration from environment variables. If CONFIG_FILE is set,
// that file is read first and the environment overrides it.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:           v.GetString("APP_PORT"),
		Env:               v.GetString("ENV"),
		DatabaseDriver:    strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		MigrationMode:     strings.ToLower(v.GetString("MIGRATION_MODE")),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTExpiration:     v.GetDuration("JWT_EXPIRATION"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		CORSAllowOrigins:  v.GetString("CORS_ALLOW_ORIGINS"),
		PageDefaultSize:   v.GetInt("PAGE_DEFAULT_SIZE"),
		PageMaxSize:       v.GetInt("PAGE_MAX_SIZE"),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}

	switch c.MigrationMode {
	case MigrationAuto, MigrationNone:
	case MigrationSQL:
		if c.DatabaseDriver != DriverPostgres {
			return fmt.Errorf("MIGRATION_MODE %q requires the %s driver", MigrationSQL, DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported MIGRATION_MODE %q", c.MigrationMode)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTExpiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	if c.PageDefaultSize <= 0 || c.PageMaxSize <= 0 {
		return errors.New("PAGE_DEFAULT_SIZE and PAGE_MAX_SIZE must be positive")
	}
	if c.PageDefaultSize > c.PageMaxSize {
		return errors.New("PAGE_DEFAULT_SIZE must not exceed PAGE_MAX_SIZE")
	}
	return nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}
