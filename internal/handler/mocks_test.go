package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/handler"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/middleware"
)

// ---- mocks -----------------------------------------------------------------
// Each mock is a set of function fields; set only the ones your test needs.

type mockImporter struct {
	run func(ctx context.Context, req domain.ImportRequest) (domain.ImportResult, error)
}

func (m *mockImporter) Run(ctx context.Context, req domain.ImportRequest) (domain.ImportResult, error) {
	return m.run(ctx, req)
}

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, userID string, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockProfileServicer struct {
	get    func(ctx context.Context, userID string) (domain.CostProfile, error)
	update func(ctx context.Context, p domain.CostProfile) (domain.CostProfile, error)
}

func (m *mockProfileServicer) Get(ctx context.Context, userID string) (domain.CostProfile, error) {
	return m.get(ctx, userID)
}
func (m *mockProfileServicer) Update(ctx context.Context, p domain.CostProfile) (domain.CostProfile, error) {
	return m.update(ctx, p)
}

type mockTaxEstimator struct {
	estimate func(ctx context.Context, userID string, rng domain.DateRange) (domain.TaxEstimate, error)
}

func (m *mockTaxEstimator) Estimate(ctx context.Context, userID string, rng domain.DateRange) (domain.TaxEstimate, error) {
	return m.estimate(ctx, userID, rng)
}

type mockExporter struct {
	export func(ctx context.Context, userID string, rng domain.DateRange) ([]domain.Trip, error)
}

func (m *mockExporter) Export(ctx context.Context, userID string, rng domain.DateRange) ([]domain.Trip, error) {
	return m.export(ctx, userID, rng)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.Importer        = (*mockImporter)(nil)
	_ handler.TripServicer    = (*mockTripServicer)(nil)
	_ handler.ProfileServicer = (*mockProfileServicer)(nil)
	_ handler.TaxEstimator    = (*mockTaxEstimator)(nil)
	_ handler.Exporter        = (*mockExporter)(nil)
)

// ---- helpers ---------------------------------------------------------------

const testUser = "driver-1"

// asUser stands in for the Authenticator: it marks every request as coming
// from testUser.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), testUser)))
	})
}

// newHTTPHandler wires a Server with the given mocks into a chi router,
// the same way main.go does in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	return asUser(newAnonymousHandler(svc))
}

func newAnonymousHandler(svc handler.Services) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, time.UTC, []byte("openapi: 3.0.3\n"), log).Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&m))
	return m
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:            uuid.New(),
		UserID:        testUser,
		OccurredAt:    time.Date(2024, 12, 9, 18, 30, 0, 0, time.UTC),
		Platform:      "UberX",
		GrossEarnings: d("85.50"),
		DistanceKm:    d("12.5"),
		DurationHours: d("0.75"),
		City:          "São Paulo",
		CostPerKm:     d("0.5"),
		NetProfit:     d("79.25"),
		Source:        domain.SourceManual,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
}

// decimalField reads a decimal encoded as a JSON string from a decoded body.
func decimalField(t *testing.T, m map[string]any, key string) decimal.Decimal {
	t.Helper()
	s, ok := m[key].(string)
	require.Truef(t, ok, "%s is not a JSON string: %v", key, m[key])
	return d(s)
}
