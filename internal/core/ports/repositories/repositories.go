package repositories

// RepositoryProvider bundles all repository implementations for service wiring.
type RepositoryProvider struct {
	DocumentRepo   DocumentRepository
	ExtractionRepo ExtractionRepository
	RawLineRepo    RawLineRepository
	AccountRepo    AccountRepository
	RuleRepo       RuleRepository
}
