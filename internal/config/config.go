package config

import (
	"fmt"
	"os"

	"visit-counter-api/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required"`
	Port        string `validate:"required,numeric"`
	LogLevel    string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Store       StoreConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
}

// StoreConfig holds counter store configuration
type StoreConfig struct {
	Type        string `validate:"required,oneof=dynamodb redis sqlite memory"`
	CounterKey  string `validate:"required"`
	MaxAttempts int    `validate:"min=1"`
	DynamoDB    DynamoDBConfig
	Redis       RedisConfig
	SQLite      SQLiteConfig
}

// DynamoDBConfig holds DynamoDB table configuration
type DynamoDBConfig struct {
	Table           string `validate:"required_if=Enabled true"`
	Region          string `validate:"required_if=Enabled true"`
	Endpoint        string `validate:"omitempty,url"`
	AccessKeyID     string
	SecretAccessKey string
	ConsistentRead  bool
	Enabled         bool
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr      string `validate:"required_if=Enabled true"`
	Password  string
	DB        int `validate:"min=0"`
	KeyPrefix string
	Enabled   bool
}

// SQLiteConfig holds SQLite database configuration
type SQLiteConfig struct {
	Path    string `validate:"required_if=Enabled true"`
	Enabled bool
}

// CORSConfig holds cross-origin behavior
type CORSConfig struct {
	// PreflightShortCircuit answers OPTIONS without reading the counter.
	PreflightShortCircuit bool
}

// RateLimitConfig holds the dev server rate limiter settings
type RateLimitConfig struct {
	RequestsPerSecond float64 `validate:"min=0"`
	Burst             int     `validate:"min=1"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_TYPE", "dynamodb")
	viper.SetDefault("COUNTER_KEY", models.DefaultCounterKey)
	viper.SetDefault("STORE_MAX_ATTEMPTS", 1)
	viper.SetDefault("DYNAMODB_TABLE", "ktad-portfolio-table")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("DYNAMODB_CONSISTENT_READ", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_KEY_PREFIX", "visits:")
	viper.SetDefault("SQLITE_PATH", "./data/visits.db")
	viper.SetDefault("CORS_PREFLIGHT_SHORT_CIRCUIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Store: StoreConfig{
			Type:        viper.GetString("STORE_TYPE"),
			CounterKey:  viper.GetString("COUNTER_KEY"),
			MaxAttempts: viper.GetInt("STORE_MAX_ATTEMPTS"),
			DynamoDB: DynamoDBConfig{
				Table:           viper.GetString("DYNAMODB_TABLE"),
				Region:          viper.GetString("AWS_REGION"),
				Endpoint:        viper.GetString("DYNAMODB_ENDPOINT"),
				AccessKeyID:     viper.GetString("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: viper.GetString("AWS_SECRET_ACCESS_KEY"),
				ConsistentRead:  viper.GetBool("DYNAMODB_CONSISTENT_READ"),
			},
			Redis: RedisConfig{
				Addr:      viper.GetString("REDIS_ADDR"),
				Password:  viper.GetString("REDIS_PASSWORD"),
				DB:        viper.GetInt("REDIS_DB"),
				KeyPrefix: viper.GetString("REDIS_KEY_PREFIX"),
			},
			SQLite: SQLiteConfig{
				Path: viper.GetString("SQLITE_PATH"),
			},
		},
		CORS: CORSConfig{
			PreflightShortCircuit: viper.GetBool("CORS_PREFLIGHT_SHORT_CIRCUIT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	config.Store.enableSelected()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// enableSelected marks the store named by Type as the one in use, so only
// its settings are required.
func (s *StoreConfig) enableSelected() {
	s.DynamoDB.Enabled = s.Type == "dynamodb"
	s.Redis.Enabled = s.Type == "redis"
	s.SQLite.Enabled = s.Type == "sqlite"
}

// Validate checks the configuration for missing or inconsistent values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction reports whether the application runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
