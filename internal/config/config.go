package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrMissingJWTSecret is returned when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Config holds application level configuration loaded from environment variables
// and an optional config file. It is built once at startup and never mutated.
type Config struct {
	ServerPort      string
	DBDriver        string
	DatabaseDSN     string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	JWTSecret       string
	SwaggerHost     string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	ResetDB         bool
	S3              S3Config
}

// S3Config describes the object store used for product images.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// Enabled reports whether an image bucket has been configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Load builds Config from defaults, the file named by CONFIG_FILE (if any) and the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("RESET_DB", false)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		ServerPort:      v.GetString("SERVER_PORT"),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisDB:         v.GetInt("REDIS_DB"),
		RedisPass:       v.GetString("REDIS_PASSWORD"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		SwaggerHost:     v.GetString("SWAGGER_HOST"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		ResetDB:         v.GetBool("RESET_DB"),
		S3: S3Config{
			Bucket:        v.GetString("S3_BUCKET"),
			Region:        v.GetString("S3_REGION"),
			Endpoint:      v.GetString("S3_ENDPOINT"),
			AccessKey:     v.GetString("S3_ACCESS_KEY"),
			SecretKey:     v.GetString("S3_SECRET_KEY"),
			PublicBaseURL: v.GetString("S3_PUBLIC_BASE_URL"),
		},
	}

	// MYSQL_DSN is still honoured for deployments that predate DATABASE_DSN.
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = v.GetString("MYSQL_DSN")
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDSN(cfg.DBDriver)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

func defaultDSN(driver string) string {
	switch driver {
	case DriverPostgres:
		return "host=localhost user=tienda password=tienda dbname=tienda port=5432 sslmode=disable"
	case DriverSQLite:
		return "tienda.db"
	default:
		return "user:password@tcp(localhost:3306)/tienda?charset=utf8mb4&parseTime=True&loc=Local"
	}
}

// String returns a printable form of the config with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DB: %s, Redis: %s/%d, S3 bucket: %q, Log: %s/%s, JWT: ***}",
		c.ServerPort, c.DBDriver, c.RedisAddr, c.RedisDB, c.S3.Bucket, c.LogLevel, c.LogFormat)
}
