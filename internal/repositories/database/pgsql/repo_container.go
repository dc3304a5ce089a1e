package pgsql

import (
	portsrepo "github.com/finparse/statement-pipeline/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	documentRepo := newPgxDocumentRepository(dbPool)
	extractionRepo := newPgxExtractionRepository(dbPool)
	rawLineRepo := newPgxRawLineRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	ruleRepo := newPgxRuleRepository(dbPool)

	return portsrepo.RepositoryProvider{
		DocumentRepo:   documentRepo,
		ExtractionRepo: extractionRepo,
		RawLineRepo:    rawLineRepo,
		AccountRepo:    accountRepo,
		RuleRepo:       ruleRepo,
	}
}

// NewRawLineSource returns the staged-table raw line source backed by the pool.
func NewRawLineSource(dbPool *pgxpool.Pool) portsrepo.RawLineSource {
	return newPgxRawLineRepository(dbPool)
}
