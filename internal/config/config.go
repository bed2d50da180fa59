package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Upload   UploadConfig
	MinIO    MinIOConfig
}

type AppConfig struct {
	Env      string
	Timezone string
	LogLevel string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	// BasePath is prepended to generated upload URLs when the API sits behind a path prefix.
	BasePath string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	Required       bool
	RateLimitRPS   float64
	RateLimitBurst int
}

type UploadConfig struct {
	Driver          string
	Dir             string
	URLPrefix       string
	MaxSize         int64
	MaxWidth        int
	MaxHeight       int
	JPEGQuality     int
	Retention       time.Duration
	CleanupInterval time.Duration
}

type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
	PublicURL       string
}

const (
	StorageLocal = "local"
	StorageMinIO = "minio"
)

func Load() *Config {
	return &Config{
		App: AppConfig{
			Env:      getEnvOrDefault("GO_ENV", "dev"),
			Timezone: getEnvOrDefault("APP_TIMEZONE", "Asia/Jakarta"),
			LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8010"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			BodyLimit:    getIntOrDefault("SERVER_BODY_LIMIT", 16*1024*1024),
			BasePath:     strings.TrimRight(os.Getenv("SERVER_BASE_PATH"), "/"),
		},
		Database: DatabaseConfig{
			Host:            getEnvOrDefault("DB_HOST", "localhost"),
			Port:            getEnvOrDefault("DB_PORT", "5432"),
			User:            getEnvOrDefault("DB_USER", "postgres"),
			Password:        getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:          getEnvOrDefault("DB_NAME", "movie_collection"),
			SSLMode:         getEnvOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			QueryTimeout:    getDurationOrDefault("DB_QUERY_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			TokenTTL:       getDurationOrDefault("JWT_TTL", 7*24*time.Hour),
			Required:       getBoolOrDefault("AUTH_REQUIRED", false),
			RateLimitRPS:   getFloatOrDefault("AUTH_RATE_LIMIT_RPS", 5),
			RateLimitBurst: getIntOrDefault("AUTH_RATE_LIMIT_BURST", 10),
		},
		Upload: UploadConfig{
			Driver:          strings.ToLower(getEnvOrDefault("STORAGE_DRIVER", StorageLocal)),
			Dir:             getEnvOrDefault("UPLOAD_DIR", "uploads"),
			URLPrefix:       getEnvOrDefault("UPLOAD_URL_PREFIX", "/uploads"),
			MaxSize:         getInt64OrDefault("UPLOAD_MAX_SIZE", 3*1024*1024),
			MaxWidth:        getIntOrDefault("UPLOAD_MAX_WIDTH", 2000),
			MaxHeight:       getIntOrDefault("UPLOAD_MAX_HEIGHT", 2000),
			JPEGQuality:     getIntOrDefault("UPLOAD_JPEG_QUALITY", 75),
			Retention:       getDurationOrDefault("UPLOAD_RETENTION", 30*24*time.Hour),
			CleanupInterval: getDurationOrDefault("CLEANUP_INTERVAL", 24*time.Hour),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnvOrDefault("AWS_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnvOrDefault("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnvOrDefault("AWS_BUCKET", "movie-posters"),
			Region:          getEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1"),
			UseSSL:          getBoolOrDefault("AWS_USE_SSL", false),
			PublicURL:       getEnvOrDefault("AWS_URL", "http://localhost:9000"),
		},
	}
}

// GetDSN returns PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// Validate reports the first missing setting. Callers treat it as a warning.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is empty, falling back to a secret derived from the install path")
	}
	switch c.Upload.Driver {
	case StorageLocal:
		if c.Upload.Dir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local storage")
		}
	case StorageMinIO:
		if c.MinIO.AccessKeyID == "" {
			return fmt.Errorf("AWS_ACCESS_KEY_ID is required for MinIO")
		}
		if c.MinIO.SecretAccessKey == "" {
			return fmt.Errorf("AWS_SECRET_ACCESS_KEY is required for MinIO")
		}
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("AWS_ENDPOINT is required for MinIO")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q, expected %q or %q", c.Upload.Driver, StorageLocal, StorageMinIO)
	}
	return nil
}

// IsDevelopment reports whether GO_ENV selects a development profile.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "dev" || c.App.Env == "development"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
