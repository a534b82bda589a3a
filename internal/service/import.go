package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/dedup"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/ledger"
)

// HistoryLookup fetches a user's stored trips occurring at or after since.
type HistoryLookup interface {
	ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Trip, error)
}

// TripPersister stores an import batch atomically and reports how many rows
// were actually written.
type TripPersister interface {
	CreateBatch(ctx context.Context, trips []domain.Trip) (int, error)
}

// ImportService runs ledger imports in preview or commit mode.
// It keeps no state between calls; a commit must resend the whole file.
type ImportService struct {
	parser   *ledger.Parser
	dedup    *dedup.Deduplicator
	profiles ProfileReader
	history  HistoryLookup
	persist  TripPersister
	log      *slog.Logger
}

// NewImportService wires the import pipeline.
// history and persist are only used by commits and may be nil for a
// preview-only service.
func NewImportService(
	parser *ledger.Parser,
	dd *dedup.Deduplicator,
	profiles ProfileReader,
	history HistoryLookup,
	persist TripPersister,
	log *slog.Logger,
) *ImportService {
	if log == nil {
		log = slog.Default()
	}
	return &ImportService{
		parser:   parser,
		dedup:    dd,
		profiles: profiles,
		history:  history,
		persist:  persist,
		log:      log,
	}
}

// Run parses, validates and, in commit mode, deduplicates and persists req.Raw.
//
// Row-level problems never fail the call; they come back as Rejections.
// Returns domain.ErrUnauthenticated when req.UserID is empty,
// domain.ErrValidation for an unknown mode and domain.ErrPersistence when the
// history lookup or the batch insert fails.
func (s *ImportService) Run(ctx context.Context, req domain.ImportRequest) (domain.ImportResult, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Run: %w", domain.ErrUnauthenticated)
	}
	mode, err := domain.ParseImportMode(string(req.Mode))
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Run: %w", err)
	}

	rows := s.parser.Parse(req.Raw)
	valid, rejections := ValidateCandidates(rows)
	res := domain.ImportResult{
		Total:      len(rows),
		Valid:      len(valid),
		Invalid:    len(rejections),
		Rejections: rejections,
		Sample:     []domain.Trip{},
	}

	if len(valid) == 0 {
		res.Outcome = domain.OutcomeNoValidTrips
		res.Message = "no valid trips found in file"
		s.logResult(ctx, userID, mode, res)
		return res, nil
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Run: load profile: %w", err)
	}
	for i := range valid {
		valid[i] = priceTrip(valid[i], userID, profile)
		valid[i].Source = domain.SourceImported
	}

	if mode == domain.ImportModePreview {
		res.Outcome = domain.OutcomePreview
		res.Sample = valid[:min(domain.SampleSize, len(valid))]
		res.Message = fmt.Sprintf("%d of %d trips are valid", res.Valid, res.Total)
		s.logResult(ctx, userID, mode, res)
		return res, nil
	}

	history, err := s.history.ListSince(ctx, userID, s.dedup.Window())
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Run: %w: %w", domain.ErrPersistence, err)
	}
	deduped := s.dedup.Dedupe(valid, history)
	res.Duplicates = len(deduped.Duplicates)

	if len(deduped.Unique) == 0 {
		res.Outcome = domain.OutcomeNothingNew
		res.Message = "no new trips to import"
		s.logResult(ctx, userID, mode, res)
		return res, nil
	}

	inserted, err := s.persist.CreateBatch(ctx, deduped.Unique)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Run: %w: %w", domain.ErrPersistence, err)
	}
	// Rows the store skipped on its fingerprint constraint were duplicates too.
	res.Imported = inserted
	res.Duplicates += len(deduped.Unique) - inserted

	if inserted == 0 {
		res.Outcome = domain.OutcomeNothingNew
		res.Message = "no new trips to import"
	} else {
		res.Outcome = domain.OutcomeImported
		res.Message = fmt.Sprintf("%d trips imported, %d duplicates skipped", res.Imported, res.Duplicates)
	}
	s.logResult(ctx, userID, mode, res)
	return res, nil
}

func (s *ImportService) logResult(ctx context.Context, userID string, mode domain.ImportMode, res domain.ImportResult) {
	s.log.InfoContext(ctx, "import finished",
		"user_id", userID,
		"mode", string(mode),
		"outcome", string(res.Outcome),
		"total", res.Total,
		"valid", res.Valid,
		"invalid", res.Invalid,
		"imported", res.Imported,
		"duplicates", res.Duplicates,
	)
}
