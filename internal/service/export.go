package service

import (
	"context"
	"fmt"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// TripRangeLister lists a user's trips inside a date range, oldest first.
type TripRangeLister interface {
	ListBetween(ctx context.Context, userID string, r domain.DateRange) ([]domain.Trip, error)
}

// ExportService returns the trips a user wants to download.
type ExportService struct {
	trips TripRangeLister
}

// NewExportService constructs an ExportService backed by the provided lister.
func NewExportService(trips TripRangeLister) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns the user's trips in rng, oldest first.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context, userID string, rng domain.DateRange) ([]domain.Trip, error) {
	if !rng.From.IsZero() && !rng.To.IsZero() && rng.From.After(rng.To) {
		return nil, fmt.Errorf("service.ExportService.Export: %w: from must not be after to", domain.ErrValidation)
	}
	trips, err := s.trips.ListBetween(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}
