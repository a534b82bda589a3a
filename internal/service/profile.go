package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/repo"
)

// ProfileReader resolves the cost profile used to price a user's trips.
// *ProfileService satisfies it.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (domain.CostProfile, error)
}

// ProfileService owns reading and updating per-user cost profiles.
type ProfileService struct {
	repo repo.ProfileRepo
}

// NewProfileService constructs a ProfileService backed by the provided ProfileRepo.
func NewProfileService(r repo.ProfileRepo) *ProfileService {
	return &ProfileService{repo: r}
}

// Get returns the stored profile, or the defaults when the user has none.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.CostProfile, error) {
	p, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultCostProfile(userID), nil
	}
	if err != nil {
		return domain.CostProfile{}, fmt.Errorf("service.ProfileService.Get: %w", err)
	}
	return p, nil
}

// Update validates and stores p.
// Returns domain.ErrValidation for negative costs or a tax rate outside (0,1].
func (s *ProfileService) Update(ctx context.Context, p domain.CostProfile) (domain.CostProfile, error) {
	if err := validateProfile(p); err != nil {
		return domain.CostProfile{}, err
	}
	out, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return domain.CostProfile{}, fmt.Errorf("service.ProfileService.Update: %w", err)
	}
	return out, nil
}

func validateProfile(p domain.CostProfile) error {
	if p.CostPerKmVariable.IsNegative() {
		return fmt.Errorf("%w: costPerKmVariable must not be negative", domain.ErrValidation)
	}
	if p.CostPerKmFixed.IsNegative() {
		return fmt.Errorf("%w: costPerKmFixed must not be negative", domain.ErrValidation)
	}
	if !p.TaxRate.IsPositive() || p.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: taxRate must be greater than 0 and at most 1", domain.ErrValidation)
	}
	return nil
}
