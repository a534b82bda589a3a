// Package service contains the business logic for the GiroPro API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/dedup"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/repo"
)

// TripService implements business logic for manually entered trips.
type TripService struct {
	repo     repo.TripRepo
	profiles ProfileReader
	loc      *time.Location
}

// NewTripService constructs a TripService. loc is the ledger time zone used
// for fingerprints; nil means UTC.
func NewTripService(r repo.TripRepo, profiles ProfileReader, loc *time.Location) *TripService {
	if loc == nil {
		loc = time.UTC
	}
	return &TripService{repo: r, profiles: profiles, loc: loc}
}

// Create validates, prices and persists a new manual trip.
// Returns domain.ErrValidation if the trip breaks an import rule.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	priced, err := s.prepare(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	priced.Source = domain.SourceManual

	result, err := s.repo.Create(ctx, priced)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip owned by userID.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of the user's trips and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and re-prices an existing trip with the current profile.
// Returns domain.ErrValidation for invalid input and domain.ErrNotFound if
// the trip does not exist for trip.UserID.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	priced, err := s.prepare(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	result, err := s.repo.Update(ctx, priced)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip owned by userID.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// prepare runs the shared trip rules and prices the trip.
func (s *TripService) prepare(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.UserID == "" {
		return domain.Trip{}, domain.ErrUnauthenticated
	}
	trip.Platform = strings.TrimSpace(trip.Platform)
	trip.City = strings.TrimSpace(trip.City)
	if problems := tripProblems(trip); len(problems) > 0 {
		return domain.Trip{}, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
	}

	profile, err := s.profiles.Get(ctx, trip.UserID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("load profile: %w", err)
	}
	priced := priceTrip(trip, trip.UserID, profile)
	priced.Fingerprint = dedup.Fingerprint(priced, s.loc)
	return priced, nil
}
