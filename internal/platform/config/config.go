package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	DBPoolSize        int32
	DBMinConns        int32
	DBConnMaxLifetime time.Duration
	DBQueryTimeout    time.Duration

	// SecretKey is the HMAC key shared with the external token issuer.
	SecretKey string

	AppName      string
	AppVersion   string
	Debug        bool
	LogLevel     slog.Level
	Port         string
	IsProduction bool

	CORSOrigins          []string
	CORSAllowCredentials bool

	ListMaxLimit  int
	RateLimit     string
	OTELEnabled   bool
	RunMigrations bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_POOL_SIZE", 10)
	v.SetDefault("DB_MIN_CONNS", 0)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_QUERY_TIMEOUT", "10s")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("APP_NAME", "Finance Planner API")
	v.SetDefault("APP_VERSION", "0.1.0")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("CORS_ALLOW_CREDENTIALS", true)
	v.SetDefault("LIST_MAX_LIMIT", 1000)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("RUN_MIGRATIONS", true)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:          v.GetString("DATABASE_URL"),
		DBPoolSize:           v.GetInt32("DB_POOL_SIZE"),
		DBMinConns:           v.GetInt32("DB_MIN_CONNS"),
		SecretKey:            v.GetString("SECRET_KEY"),
		AppName:              v.GetString("APP_NAME"),
		AppVersion:           v.GetString("APP_VERSION"),
		Debug:                v.GetBool("DEBUG"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		CORSOrigins:          ParseOrigins(v.GetString("CORS_ORIGINS")),
		CORSAllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
		ListMaxLimit:         v.GetInt("LIST_MAX_LIMIT"),
		RateLimit:            v.GetString("RATE_LIMIT"),
		OTELEnabled:          v.GetBool("OTEL_ENABLED"),
		RunMigrations:        v.GetBool("RUN_MIGRATIONS"),
	}

	var err error
	if cfg.DBConnMaxLifetime, err = time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME")); err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}
	if cfg.DBQueryTimeout, err = time.ParseDuration(v.GetString("DB_QUERY_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("invalid DB_QUERY_TIMEOUT: %w", err)
	}
	if cfg.LogLevel, err = ParseLogLevel(v.GetString("LOG_LEVEL")); err != nil {
		return nil, err
	}
	if cfg.Debug {
		cfg.LogLevel = slog.LevelDebug
	}

	return cfg, nil
}

// Validate reports every missing or out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	if c.DBPoolSize < 1 {
		errs = append(errs, fmt.Errorf("DB_POOL_SIZE must be at least 1, got %d", c.DBPoolSize))
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBPoolSize {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_POOL_SIZE, got %d", c.DBMinConns))
	}
	if c.DBQueryTimeout <= 0 {
		errs = append(errs, errors.New("DB_QUERY_TIMEOUT must be positive"))
	}
	if c.ListMaxLimit < 1 {
		errs = append(errs, fmt.Errorf("LIST_MAX_LIMIT must be at least 1, got %d", c.ListMaxLimit))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	return errors.Join(errs...)
}

// ParseOrigins splits a comma-separated origin list, dropping blanks.
func ParseOrigins(raw string) []string {
	origins := []string{}
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ParseLogLevel accepts DEBUG, INFO, WARN/WARNING and ERROR in any case.
func ParseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR", "CRITICAL":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}
}
