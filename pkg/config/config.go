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

	// Pipeline tuning
	FuzzyThreshold     float64
	DedupPolicy        string
	HierarchyTolerance string
	ReviewConfidence   float64
	ExtractionWorkers  int
	FetchTimeout       time.Duration

	// Catalogue seed files, optional
	AccountsFile            string
	ClassificationRulesFile string
	ValidationRulesFile     string

	// Rate limiting, e.g. "100-M" for 100 requests per minute
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("FUZZY_THRESHOLD", 0.85)
	viper.SetDefault("DEDUP_POLICY", "keep_first")
	viper.SetDefault("HIERARCHY_TOLERANCE", "1")
	viper.SetDefault("REVIEW_CONFIDENCE", 0.6)
	viper.SetDefault("EXTRACTION_WORKERS", 4)
	viper.SetDefault("FETCH_TIMEOUT", "30s")
	viper.SetDefault("ACCOUNTS_FILE", "")
	viper.SetDefault("CLASSIFICATION_RULES_FILE", "")
	viper.SetDefault("VALIDATION_RULES_FILE", "")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.FuzzyThreshold = viper.GetFloat64("FUZZY_THRESHOLD")
	if cfg.FuzzyThreshold <= 0 || cfg.FuzzyThreshold > 1 {
		log.Printf("Warning: Invalid FUZZY_THRESHOLD (%v). Defaulting to 0.85.\n", cfg.FuzzyThreshold)
		cfg.FuzzyThreshold = 0.85
	}

	cfg.DedupPolicy = viper.GetString("DEDUP_POLICY")
	cfg.HierarchyTolerance = viper.GetString("HIERARCHY_TOLERANCE")

	cfg.ReviewConfidence = viper.GetFloat64("REVIEW_CONFIDENCE")
	if cfg.ReviewConfidence < 0 || cfg.ReviewConfidence > 1 {
		log.Printf("Warning: Invalid REVIEW_CONFIDENCE (%v). Defaulting to 0.6.\n", cfg.ReviewConfidence)
		cfg.ReviewConfidence = 0.6
	}

	cfg.ExtractionWorkers = viper.GetInt("EXTRACTION_WORKERS")
	if cfg.ExtractionWorkers < 1 {
		log.Printf("Warning: Invalid EXTRACTION_WORKERS (%d). Defaulting to 4.\n", cfg.ExtractionWorkers)
		cfg.ExtractionWorkers = 4
	}

	fetchTimeoutStr := viper.GetString("FETCH_TIMEOUT")
	fetchTimeout, err := time.ParseDuration(fetchTimeoutStr)
	if err != nil {
		fetchTimeout = 30 * time.Second
		if fetchTimeoutStr != "" {
			log.Printf("Warning: Invalid value for FETCH_TIMEOUT ('%s'). Defaulting to %s.\n", fetchTimeoutStr, fetchTimeout)
		}
	}
	cfg.FetchTimeout = fetchTimeout

	cfg.AccountsFile = viper.GetString("ACCOUNTS_FILE")
	cfg.ClassificationRulesFile = viper.GetString("CLASSIFICATION_RULES_FILE")
	cfg.ValidationRulesFile = viper.GetString("VALIDATION_RULES_FILE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
