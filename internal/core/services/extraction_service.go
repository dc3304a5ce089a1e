package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finparse/statement-pipeline/internal/apperrors"
	"github.com/finparse/statement-pipeline/internal/core/domain"
	"github.com/finparse/statement-pipeline/internal/core/pipeline"
	portsrepo "github.com/finparse/statement-pipeline/internal/core/ports/repositories"
	portssvc "github.com/finparse/statement-pipeline/internal/core/ports/services"
	"github.com/finparse/statement-pipeline/internal/core/validation"
	"github.com/finparse/statement-pipeline/internal/dto"
)

// ExtractionConfig carries the runner's tunables from configuration.
type ExtractionConfig struct {
	RuleSpecs    []pipeline.RuleSpec
	Options      pipeline.Options
	Workers      int
	FetchTimeout time.Duration
}

// extractionService runs the per-document pipeline as one unit of work and
// fans documents out across a worker pool. Documents share only the read-only
// catalogue snapshots; there is no mutable state between them.
type extractionService struct {
	documentRepo   portsrepo.DocumentRepository
	extractionRepo portsrepo.ExtractionRepository
	ruleRepo       portsrepo.RuleRepository
	source         portsrepo.RawLineSource
	catalog        portssvc.CatalogSvcFacade
	cfg            ExtractionConfig
	logger         *slog.Logger
}

// NewExtractionService creates the extraction runner.
func NewExtractionService(
	documentRepo portsrepo.DocumentRepository,
	extractionRepo portsrepo.ExtractionRepository,
	ruleRepo portsrepo.RuleRepository,
	source portsrepo.RawLineSource,
	catalog portssvc.CatalogSvcFacade,
	cfg ExtractionConfig,
	logger *slog.Logger,
) portssvc.ExtractionSvcFacade {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if len(cfg.RuleSpecs) == 0 {
		cfg.RuleSpecs = pipeline.DefaultRuleSpecs()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &extractionService{
		documentRepo:   documentRepo,
		extractionRepo: extractionRepo,
		ruleRepo:       ruleRepo,
		source:         source,
		catalog:        catalog,
		cfg:            cfg,
		logger:         logger,
	}
}

// runContext bundles the per-run read-only machinery shared by all workers.
type runContext struct {
	engine *pipeline.Engine
	rules  *validation.Engine
}

func (s *extractionService) newRunContext(ctx context.Context) (*runContext, error) {
	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	engine, err := pipeline.NewEngine(s.cfg.RuleSpecs, snapshot.Accounts, s.cfg.Options, s.logger)
	if err != nil {
		return nil, err
	}
	rules, err := validation.NewEngine(snapshot.Rules, s.logger)
	if err != nil {
		return nil, err
	}
	return &runContext{engine: engine, rules: rules}, nil
}

// RunDocument processes a single document end to end.
func (s *extractionService) RunDocument(ctx context.Context, documentID string) (*domain.DocumentHeader, error) {
	run, err := s.newRunContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.runOne(ctx, run, documentID)
}

// RunBatch processes documents concurrently. Cancellation is cooperative at
// document boundaries: documents not yet started when ctx is cancelled are
// reported cancelled, the in-flight ones roll back via their open transaction.
func (s *extractionService) RunBatch(ctx context.Context, documentIDs []string) []dto.BatchResult {
	results := make([]dto.BatchResult, len(documentIDs))
	run, err := s.newRunContext(ctx)
	if err != nil {
		for i, id := range documentIDs {
			results[i] = dto.BatchResult{DocumentID: id, Status: domain.StatusFailed, Error: err.Error()}
		}
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				id := documentIDs[idx]
				header, err := s.runOne(ctx, run, id)
				switch {
				case err != nil && header != nil:
					results[idx] = dto.BatchResult{DocumentID: id, Status: header.Status, Error: err.Error()}
				case err != nil:
					results[idx] = dto.BatchResult{DocumentID: id, Status: domain.StatusFailed, Error: err.Error()}
				default:
					results[idx] = dto.BatchResult{DocumentID: id, Status: header.Status}
				}
			}
		}()
	}

dispatch:
	for i := range documentIDs {
		select {
		case <-ctx.Done():
			// Checkpoint between documents; the remainder is not started.
			for j := i; j < len(documentIDs); j++ {
				results[j] = dto.BatchResult{DocumentID: documentIDs[j], Status: domain.StatusPending, Error: ctx.Err().Error()}
			}
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

// runOne is the unit of work for one document. Errors in one document never
// propagate to another; fatal conditions land the document in failed state
// with a diagnostic reason.
func (s *extractionService) runOne(ctx context.Context, run *runContext, documentID string) (*domain.DocumentHeader, error) {
	logger := s.logger.With(slog.String("document_id", documentID))
	now := time.Now().UTC()

	existing, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !existing.Status.CanTransitionTo(domain.StatusProcessing) {
		return existing, fmt.Errorf("%w: document %s is %s, not pending", apperrors.ErrValidation, documentID, existing.Status)
	}
	if err := s.documentRepo.UpdateDocumentStatus(ctx, documentID, domain.StatusProcessing, "", now); err != nil {
		return existing, err
	}

	header, runErr := s.process(ctx, run, existing, logger)
	if runErr != nil {
		reason := runErr.Error()
		if updErr := s.documentRepo.UpdateDocumentStatus(ctx, documentID, domain.StatusFailed, reason, time.Now().UTC()); updErr != nil {
			logger.Error("failed to record failure status", slog.String("error", updErr.Error()))
		}
		failed := *existing
		failed.Status = domain.StatusFailed
		failed.FailureReason = reason
		logger.Error("extraction failed", slog.String("error", reason))
		return &failed, runErr
	}
	return header, nil
}

// process performs fetch, pipeline, persistence and validation. It returns
// the header in its terminal state.
func (s *extractionService) process(ctx context.Context, run *runContext, existing *domain.DocumentHeader, logger *slog.Logger) (*domain.DocumentHeader, error) {
	documentID := existing.DocumentID
	started := time.Now()

	// The only external I/O before the final write: bounded by its own timeout.
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	rawLines, err := s.source.FetchRawLines(fetchCtx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch raw lines: %w", err)
	}

	extraction, err := run.engine.Process(documentID, existing.DocumentType, rawLines, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// Keep submission audit data; the engine only derives statement metadata.
	extraction.Header.Status = domain.StatusProcessing
	extraction.Header.AuditFields = existing.AuditFields
	extraction.Header.LastUpdatedAt = time.Now().UTC()

	s.assignIDs(extraction)

	if err := s.extractionRepo.ReplaceDocumentExtraction(ctx, extraction); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// The dedup stage guarantees key uniqueness; reaching the DB
			// constraint is an engineering defect, not a business failure.
			logger.Error("uniqueness violation past deduplication", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("persist extraction: %w", err)
	}

	outcome := run.rules.Evaluate(documentID, existing.DocumentType, extraction.Header.TotalsSummary, time.Now().UTC())
	if len(outcome.Results) > 0 {
		if err := s.ruleRepo.SaveValidationResults(ctx, outcome.Results); err != nil {
			return nil, fmt.Errorf("persist validation results: %w", err)
		}
	}

	status := domain.StatusCompleted
	if outcome.CriticalFailed || anyNeedsReview(extraction.Items) {
		status = domain.StatusNeedsReview
	}
	if err := s.documentRepo.UpdateDocumentStatus(ctx, documentID, status, "", time.Now().UTC()); err != nil {
		return nil, err
	}

	logger.Info("extraction completed",
		slog.String("status", string(status)),
		slog.Int("line_items", len(extraction.Items)),
		slog.Int("validation_rules", len(outcome.Results)),
		slog.Duration("elapsed", time.Since(started)),
	)
	extraction.Header.Status = status
	return &extraction.Header, nil
}

// assignIDs gives every record its identity and resolves arena parent indices
// into persisted parent line IDs. Indices only point backward, so parents are
// resolved on a single pass.
func (s *extractionService) assignIDs(extraction *domain.Extraction) {
	for i := range extraction.Items {
		extraction.Items[i].LineItemID = uuid.NewString()
	}
	for i := range extraction.Items {
		if p := extraction.Items[i].ParentIndex; p != nil {
			id := extraction.Items[*p].LineItemID
			extraction.Items[i].ParentLineID = &id
		}
	}
	for i := range extraction.Adjustments {
		extraction.Adjustments[i].AdjustmentID = uuid.NewString()
	}
	for i := range extraction.Reconciliations {
		extraction.Reconciliations[i].EntryID = uuid.NewString()
	}
}

func anyNeedsReview(items []domain.LineItem) bool {
	for _, item := range items {
		if item.NeedsReview {
			return true
		}
	}
	return false
}
