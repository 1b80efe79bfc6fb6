package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tesseract-Nexus/go-shared/secrets"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all configuration for the service
type Config struct {
	Environment string
	Port        string

	StorageBackend    string
	DataDir           string
	StorageQuotaBytes int64
	SQLitePath        string
	DatabaseURL       string
	RedisURL          string

	RefreshInterval time.Duration
	ReportTimezone  string

	LeadUsername     string
	LeadPassword     string
	CSUsername       string
	CSPassword       string
	AdminResetSecret string
	AuthRateLimit    string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8097"),

		StorageBackend:    getEnv("STORAGE_BACKEND", BackendFile),
		DataDir:           getEnv("DATA_DIR", "./data"),
		StorageQuotaBytes: getEnvInt64("STORAGE_QUOTA_BYTES", 5*1024*1024),
		SQLitePath:        getEnv("SQLITE_PATH", "./data/promoter.db"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 5*time.Second),
		ReportTimezone:  getEnv("REPORT_TIMEZONE", "Local"),

		LeadUsername:     getEnv("LEAD_USERNAME", "admin"),
		LeadPassword:     secrets.GetSecretOrEnv("LEAD_PASSWORD_SECRET_NAME", "LEAD_PASSWORD", "admin"),
		CSUsername:       getEnv("CS_USERNAME", "user"),
		CSPassword:       secrets.GetSecretOrEnv("CS_PASSWORD_SECRET_NAME", "CS_PASSWORD", "password"),
		AdminResetSecret: secrets.GetSecretOrEnv("ADMIN_RESET_SECRET_NAME", "ADMIN_RESET_SECRET", "admin"),
		AuthRateLimit:    getEnv("AUTH_RATE_LIMIT", "10-M"),
	}
}

// Validate checks values that have no safe fallback
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendFile, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive")
	}
	if _, err := c.ReportLocation(); err != nil {
		return err
	}
	return nil
}

// ReportLocation returns the time zone used for report days and the dashboard
func (c *Config) ReportLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", c.ReportTimezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// InitDB initializes the database connection
func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		// Build DSN from individual components if DATABASE_URL not set
		host := getEnv("DB_HOST", "localhost")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "postgres")
		password := secrets.GetDBPassword()
		dbname := getEnv("DB_NAME", "promoter_db")
		sslmode := getEnv("DB_SSLMODE", "require")

		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode,
		)
	}

	logLevel := logger.Silent
	if cfg.Environment == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// RedisOptions parses REDIS_URL, falling back to localhost when it is malformed.
// The password always comes from the secret store.
func RedisOptions(cfg *Config) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	if password := secrets.GetRedisPassword(); password != "" {
		opts.Password = password
	}
	return opts, err
}
