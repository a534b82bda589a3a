package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/dedup"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/handler"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/ledger"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/service"
)

const sampleLedger = "Date,Time,City,Category,Amount,Distance,Duration\n" +
	"2024-12-09,18:30,São Paulo,UberX,85.50,12.5,45\n"

func importHandler(run func(context.Context, domain.ImportRequest) (domain.ImportResult, error)) http.Handler {
	return newHTTPHandler(handler.Services{Imports: &mockImporter{run: run}})
}

func TestPostImport_JSONBody_Preview(t *testing.T) {
	var got domain.ImportRequest
	h := importHandler(func(_ context.Context, req domain.ImportRequest) (domain.ImportResult, error) {
		got = req
		return domain.ImportResult{
			Outcome:    domain.OutcomePreview,
			Total:      2,
			Valid:      1,
			Invalid:    1,
			Rejections: []domain.Rejection{{RowIndex: 3, Reasons: []string{"a", "b"}}},
			Sample:     []domain.Trip{{Platform: "UberX", GrossEarnings: d("85.5")}},
		}, nil
	})

	rec := do(t, h, http.MethodPost, "/imports", map[string]string{"rawFileContent": sampleLedger, "mode": "preview"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUser, got.UserID)
	assert.Equal(t, domain.ImportModePreview, got.Mode)
	assert.Equal(t, sampleLedger, got.Raw)

	body := decodeMap(t, rec)
	assert.Equal(t, true, body["preview"])
	assert.EqualValues(t, 2, body["totalTrips"])
	assert.EqualValues(t, 1, body["validTrips"])
	assert.EqualValues(t, 1, body["invalidTrips"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, map[string]any{"index": float64(3), "reason": "a; b"}, errs[0])
	sample := body["sampleData"].([]any)
	require.Len(t, sample, 1)
	trip := sample[0].(map[string]any)
	assert.Equal(t, "85.5", trip["grossEarnings"], "decimals are JSON strings")
	assert.NotContains(t, trip, "id", "preview samples are not stored")
}

func TestPostImport_CSVBody_ModeFromQuery(t *testing.T) {
	var got domain.ImportRequest
	h := importHandler(func(_ context.Context, req domain.ImportRequest) (domain.ImportResult, error) {
		got = req
		return domain.ImportResult{Outcome: domain.OutcomeImported, Imported: 1, Message: "1 trips imported, 0 duplicates skipped"}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/imports?mode=import", strings.NewReader(sampleLedger))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ImportModeCommit, got.Mode)
	assert.Equal(t, sampleLedger, got.Raw)
	assert.JSONEq(t, `{"success":true,"importedCount":1,"duplicateCount":0,"message":"1 trips imported, 0 duplicates skipped"}`, rec.Body.String())
}

func TestPostImport_NoValidTrips_400(t *testing.T) {
	h := importHandler(func(context.Context, domain.ImportRequest) (domain.ImportResult, error) {
		return domain.ImportResult{
			Outcome:    domain.OutcomeNoValidTrips,
			Message:    "no valid trips found in file",
			Rejections: []domain.Rejection{{RowIndex: 2, Reasons: []string{"platform is required"}}},
		}, nil
	})

	rec := do(t, h, http.MethodPost, "/imports", map[string]string{"rawFileContent": "x", "mode": "import"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"error": "no valid trips found in file",
		"code": "no_valid_trips",
		"rejections": [{"index": 2, "reason": "platform is required"}]
	}`, rec.Body.String())
}

func TestPostImport_NothingNew(t *testing.T) {
	h := importHandler(func(context.Context, domain.ImportRequest) (domain.ImportResult, error) {
		return domain.ImportResult{Outcome: domain.OutcomeNothingNew, Message: "no new trips to import"}, nil
	})

	rec := do(t, h, http.MethodPost, "/imports", map[string]string{"rawFileContent": "x", "mode": "import"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"no new trips to import"}`, rec.Body.String())
}

func TestPostImport_PersistenceError_400(t *testing.T) {
	h := importHandler(func(context.Context, domain.ImportRequest) (domain.ImportResult, error) {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Run: %w: %w", domain.ErrPersistence, errors.New("connection reset"))
	})

	rec := do(t, h, http.MethodPost, "/imports", map[string]string{"rawFileContent": "x", "mode": "import"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, "connection reset", body["error"])
	assert.Equal(t, "persistence_error", body["code"])
}

func TestPostImport_UnknownMode_400(t *testing.T) {
	h := importHandler(func(_ context.Context, req domain.ImportRequest) (domain.ImportResult, error) {
		_, err := domain.ParseImportMode(string(req.Mode))
		return domain.ImportResult{}, err
	})

	rec := do(t, h, http.MethodPost, "/imports", map[string]string{"rawFileContent": "x", "mode": "dry-run"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeMap(t, rec)["code"])
}

func TestPostImport_MalformedJSON_400(t *testing.T) {
	h := importHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/imports", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostImport_Anonymous_401(t *testing.T) {
	h := newAnonymousHandler(handler.Services{Imports: &mockImporter{}})

	rec := do(t, h, http.MethodPost, "/imports", map[string]string{"rawFileContent": "x"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// memoryTrips is the storage side of the end-to-end test.
type memoryTrips struct{ trips []domain.Trip }

func (m *memoryTrips) ListSince(_ context.Context, _ string, since time.Time) ([]domain.Trip, error) {
	var out []domain.Trip
	for _, t := range m.trips {
		if !t.OccurredAt.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryTrips) CreateBatch(_ context.Context, trips []domain.Trip) (int, error) {
	m.trips = append(m.trips, trips...)
	return len(trips), nil
}

type defaultProfiles struct{}

func (defaultProfiles) Get(_ context.Context, userID string) (domain.CostProfile, error) {
	return domain.DefaultCostProfile(userID), nil
}

func TestPostImport_EndToEnd(t *testing.T) {
	store := &memoryTrips{}
	now := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	svc := service.NewImportService(
		ledger.NewParser(time.UTC),
		dedup.New(dedup.DefaultWindowDays, time.UTC).WithClock(func() time.Time { return now }),
		defaultProfiles{},
		store,
		store,
		nil,
	)
	h := newHTTPHandler(handler.Services{Imports: svc})

	preview := do(t, h, http.MethodPost, "/imports", map[string]string{"rawFileContent": sampleLedger, "mode": "preview"})
	require.Equal(t, http.StatusOK, preview.Code)
	pb := decodeMap(t, preview)
	assert.EqualValues(t, 1, pb["validTrips"])
	assert.EqualValues(t, 0, pb["invalidTrips"])
	assert.Empty(t, store.trips, "preview must not persist")

	first := do(t, h, http.MethodPost, "/imports", map[string]string{"rawFileContent": sampleLedger, "mode": "import"})
	require.Equal(t, http.StatusOK, first.Code)
	fb := decodeMap(t, first)
	assert.EqualValues(t, 1, fb["importedCount"])
	assert.EqualValues(t, 0, fb["duplicateCount"])

	second := do(t, h, http.MethodPost, "/imports", map[string]string{"rawFileContent": sampleLedger, "mode": "import"})
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"message":"no new trips to import"}`, second.Body.String())
	assert.Len(t, store.trips, 1)
}
