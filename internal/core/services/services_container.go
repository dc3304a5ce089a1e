package services

import (
	"log/slog"

	portsrepo "github.com/finparse/statement-pipeline/internal/core/ports/repositories"
	portssvc "github.com/finparse/statement-pipeline/internal/core/ports/services"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies. The staged raw-line repository doubles as the raw line source
// when no external extractor endpoint is configured.
func NewServiceContainer(repos portsrepo.RepositoryProvider, source portsrepo.RawLineSource, cfg ExtractionConfig, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Catalog = NewCatalogService(repos.AccountRepo, repos.RuleRepo)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.RawLineRepo, repos.ExtractionRepo, repos.RuleRepo)
	container.Extraction = NewExtractionService(
		repos.DocumentRepo,
		repos.ExtractionRepo,
		repos.RuleRepo,
		source,
		container.Catalog,
		cfg,
		logger,
	)

	return container
}
