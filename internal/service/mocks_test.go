package service_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/repo"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	createBatch  func(ctx context.Context, trips []domain.Trip) (int, error)
	getByID      func(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error)
	listPaged    func(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	listSince    func(ctx context.Context, userID string, since time.Time) ([]domain.Trip, error)
	listBetween  func(ctx context.Context, userID string, r domain.DateRange) ([]domain.Trip, error)
	update       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete       func(ctx context.Context, userID string, id uuid.UUID) error
	sumNetProfit func(ctx context.Context, userID string, r domain.DateRange) (decimal.Decimal, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) CreateBatch(ctx context.Context, trips []domain.Trip) (int, error) {
	return m.createBatch(ctx, trips)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Trip, error) {
	return m.listSince(ctx, userID, since)
}
func (m *mockTripRepo) ListBetween(ctx context.Context, userID string, r domain.DateRange) ([]domain.Trip, error) {
	return m.listBetween(ctx, userID, r)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}
func (m *mockTripRepo) SumNetProfit(ctx context.Context, userID string, r domain.DateRange) (decimal.Decimal, error) {
	return m.sumNetProfit(ctx, userID, r)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockProfileRepo struct {
	get    func(ctx context.Context, userID string) (domain.CostProfile, error)
	upsert func(ctx context.Context, p domain.CostProfile) (domain.CostProfile, error)
}

func (m *mockProfileRepo) Get(ctx context.Context, userID string) (domain.CostProfile, error) {
	return m.get(ctx, userID)
}
func (m *mockProfileRepo) Upsert(ctx context.Context, p domain.CostProfile) (domain.CostProfile, error) {
	return m.upsert(ctx, p)
}

var _ repo.ProfileRepo = (*mockProfileRepo)(nil)

// staticProfile is a ProfileReader that always returns the same profile.
type staticProfile domain.CostProfile

func (s staticProfile) Get(_ context.Context, userID string) (domain.CostProfile, error) {
	p := domain.CostProfile(s)
	p.UserID = userID
	return p, nil
}

var _ service.ProfileReader = staticProfile{}

func defaultProfile() staticProfile {
	return staticProfile(domain.DefaultCostProfile(""))
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
