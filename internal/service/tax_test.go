package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/service"
)

func TestTaxService_Estimate(t *testing.T) {
	rng := domain.DateRange{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	trips := &mockTripRepo{
		sumNetProfit: func(_ context.Context, userID string, got domain.DateRange) (decimal.Decimal, error) {
			assert.Equal(t, "driver-1", userID)
			assert.Equal(t, rng, got)
			return d("1000"), nil
		},
	}
	svc := service.NewTaxService(trips, defaultProfile())

	est, err := svc.Estimate(context.Background(), "driver-1", rng)

	require.NoError(t, err)
	assert.True(t, est.Amount.Equal(d("115")), "got %s", est.Amount)
	assert.True(t, est.Rate.Equal(d("0.115")))
	assert.True(t, est.GrossProfit.Equal(d("1000")))
	assert.Equal(t, rng.From, est.PeriodStart)
}

func TestTaxService_Estimate_ProfileRate(t *testing.T) {
	trips := &mockTripRepo{
		sumNetProfit: func(context.Context, string, domain.DateRange) (decimal.Decimal, error) { return d("200"), nil },
	}
	profile := staticProfile(domain.CostProfile{TaxRate: d("0.2")})
	svc := service.NewTaxService(trips, profile)

	est, err := svc.Estimate(context.Background(), "driver-1", domain.DateRange{})

	require.NoError(t, err)
	assert.True(t, est.Amount.Equal(d("40")))
}

func TestTaxService_Estimate_InvertedRange(t *testing.T) {
	svc := service.NewTaxService(&mockTripRepo{}, defaultProfile())
	rng := domain.DateRange{
		From: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := svc.Estimate(context.Background(), "driver-1", rng)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
