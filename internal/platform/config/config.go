package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Bulk charging limits
	BulkMaxBatchSize int
	BulkParallelism  int
	BulkItemTimeout  time.Duration
	BulkRateLimit    string // ulule/limiter format, e.g. "10-M"
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("BULK_MAX_BATCH_SIZE", 500)
	viper.SetDefault("BULK_PARALLELISM", 8)
	viper.SetDefault("BULK_ITEM_TIMEOUT", "10s")
	viper.SetDefault("BULK_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.BulkMaxBatchSize = viper.GetInt("BULK_MAX_BATCH_SIZE")
	cfg.BulkParallelism = viper.GetInt("BULK_PARALLELISM")
	cfg.BulkRateLimit = viper.GetString("BULK_RATE_LIMIT")

	bulkTimeoutStr := viper.GetString("BULK_ITEM_TIMEOUT")
	bulkItemTimeout, err := time.ParseDuration(bulkTimeoutStr)
	if err != nil {
		bulkItemTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for BULK_ITEM_TIMEOUT ('%s'). Defaulting to %s.\n", bulkTimeoutStr, bulkItemTimeout.String())
	}
	cfg.BulkItemTimeout = bulkItemTimeout

	return cfg, nil
}
