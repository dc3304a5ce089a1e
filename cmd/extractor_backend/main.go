package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/finparse/statement-pipeline/internal/catalog"
	"github.com/finparse/statement-pipeline/internal/core/pipeline"
	portsrepo "github.com/finparse/statement-pipeline/internal/core/ports/repositories"
	"github.com/finparse/statement-pipeline/internal/core/services"
	"github.com/finparse/statement-pipeline/internal/handlers"
	"github.com/finparse/statement-pipeline/internal/middleware"
	"github.com/finparse/statement-pipeline/internal/repositories/database/pgsql"
	"github.com/finparse/statement-pipeline/pkg/config"
	"github.com/finparse/statement-pipeline/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	source := pgsql.NewRawLineSource(dbPool)

	ruleSpecs, err := loadClassificationRules(cfg)
	if err != nil {
		logger.Error("Failed to load classification rules", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seedCatalogues(context.Background(), cfg, repos, logger); err != nil {
		logger.Error("Failed to seed catalogues", slog.String("error", err.Error()))
		os.Exit(1)
	}

	extractionCfg, err := buildExtractionConfig(cfg, ruleSpecs)
	if err != nil {
		logger.Error("Invalid pipeline configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(repos, source, extractionCfg, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if rateMiddleware := buildRateLimit(cfg, logger); rateMiddleware != nil {
		r.Use(rateMiddleware)
	}

	handlers.RegisterRoutes(r, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending schema migrations over a temporary
// database/sql connection compatible with the main pgx pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// loadClassificationRules returns the configured rule file or the built-in set.
func loadClassificationRules(cfg *config.Config) ([]pipeline.RuleSpec, error) {
	if cfg.ClassificationRulesFile == "" {
		return pipeline.DefaultRuleSpecs(), nil
	}
	return catalog.LoadClassificationRules(cfg.ClassificationRulesFile)
}

// seedCatalogues loads the chart of accounts and validation rules from the
// configured YAML files, when set, and upserts them into the database.
func seedCatalogues(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) error {
	now := time.Now().UTC()

	if cfg.AccountsFile != "" {
		entries, err := catalog.LoadAccounts(cfg.AccountsFile, now, "seed")
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := repos.AccountRepo.SaveEntry(ctx, entry); err != nil {
				return err
			}
		}
		logger.Info("Chart of accounts seeded", slog.Int("entries", len(entries)))
	}

	if cfg.ValidationRulesFile != "" {
		rules, err := catalog.LoadValidationRules(cfg.ValidationRulesFile, now, "seed")
		if err != nil {
			return err
		}
		for _, rule := range rules {
			if err := repos.RuleRepo.SaveRule(ctx, rule); err != nil {
				return err
			}
		}
		logger.Info("Validation rules seeded", slog.Int("rules", len(rules)))
	}
	return nil
}

func buildExtractionConfig(cfg *config.Config, ruleSpecs []pipeline.RuleSpec) (services.ExtractionConfig, error) {
	dedupPolicy, err := pipeline.ParseDedupPolicy(cfg.DedupPolicy)
	if err != nil {
		return services.ExtractionConfig{}, err
	}

	tolerance, err := decimal.NewFromString(cfg.HierarchyTolerance)
	if err != nil {
		return services.ExtractionConfig{}, err
	}

	opts := pipeline.DefaultOptions()
	opts.FuzzyThreshold = cfg.FuzzyThreshold
	opts.DedupPolicy = dedupPolicy
	opts.HierarchyTolerance = tolerance
	opts.ReviewConfidence = cfg.ReviewConfidence

	return services.ExtractionConfig{
		RuleSpecs:    ruleSpecs,
		Options:      opts,
		Workers:      cfg.ExtractionWorkers,
		FetchTimeout: cfg.FetchTimeout,
	}, nil
}

// buildRateLimit sets up the IP rate limiter from the configured rate string.
func buildRateLimit(cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	if cfg.RateLimit == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT value, rate limiting disabled", slog.String("value", cfg.RateLimit))
		return nil
	}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}
