package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	Port        string
	MetricsPort string
	Env         string

	DBDriver        string // postgres or sqlite
	PostgresConnStr string
	DBDSN           string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnLifetime  time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthRateLimit  int
	AuthRateWindow time.Duration

	UploadDir     string
	PublicBaseURL string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3BucketName       string
	S3UseSSL           bool

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, loading .env first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		Env:         getEnv("ENV", "development"),

		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		DBDSN:           getEnv("DB_DSN", ""),
		DBMaxOpenConns:  getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:  getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:    getEnvDuration("JWT_TTL", 7*24*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: getEnvDuration("AUTH_RATE_WINDOW", time.Minute),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3BucketName:       getEnv("S3_BUCKET_NAME", ""),
		S3UseSSL:           getEnvBool("S3_USE_SSL", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),
	}
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// UsesS3 reports whether uploads go to an S3 bucket instead of local disk.
func (c *Config) UsesS3() bool {
	return c.S3BucketName != ""
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.PostgresConnStr == "" {
			return errors.New("POSTGRES_CONN_STR environment variable not set")
		}
	case "sqlite":
		if c.DBDSN == "" {
			return errors.New("DB_DSN environment variable not set")
		}
	default:
		return errors.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.AuthRateLimit <= 0 || c.AuthRateWindow <= 0 {
		return errors.New("AUTH_RATE_LIMIT and AUTH_RATE_WINDOW must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
