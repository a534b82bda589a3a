package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/finance"
)

// ProfitSummer totals the net profit of a user's trips over a range.
type ProfitSummer interface {
	SumNetProfit(ctx context.Context, userID string, r domain.DateRange) (decimal.Decimal, error)
}

// TaxService estimates tax liability over a period.
type TaxService struct {
	trips    ProfitSummer
	profiles ProfileReader
}

// NewTaxService constructs a TaxService.
func NewTaxService(trips ProfitSummer, profiles ProfileReader) *TaxService {
	return &TaxService{trips: trips, profiles: profiles}
}

// Estimate applies the user's tax rate to the net profit of trips in rng.
// Returns domain.ErrValidation when rng.From is after rng.To.
func (s *TaxService) Estimate(ctx context.Context, userID string, rng domain.DateRange) (domain.TaxEstimate, error) {
	if !rng.From.IsZero() && !rng.To.IsZero() && rng.From.After(rng.To) {
		return domain.TaxEstimate{}, fmt.Errorf("service.TaxService.Estimate: %w: from must not be after to", domain.ErrValidation)
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return domain.TaxEstimate{}, fmt.Errorf("service.TaxService.Estimate: %w", err)
	}
	profit, err := s.trips.SumNetProfit(ctx, userID, rng)
	if err != nil {
		return domain.TaxEstimate{}, fmt.Errorf("service.TaxService.Estimate: %w", err)
	}

	rate := profile.TaxRate
	if !rate.IsPositive() {
		rate = domain.DefaultTaxRate
	}
	return domain.TaxEstimate{
		PeriodStart: rng.From,
		PeriodEnd:   rng.To,
		GrossProfit: profit,
		Rate:        rate,
		Amount:      finance.TaxEstimate(profit, rate),
	}, nil
}
