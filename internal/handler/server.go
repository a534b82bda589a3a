// Package handler implements the HTTP handlers for the GiroPro API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (imports.go, trips.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/ledger"
)

// Importer runs ledger imports. *service.ImportService satisfies it.
type Importer interface {
	Run(ctx context.Context, req domain.ImportRequest) (domain.ImportResult, error)
}

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// ProfileServicer reads and updates cost profiles.
type ProfileServicer interface {
	Get(ctx context.Context, userID string) (domain.CostProfile, error)
	Update(ctx context.Context, p domain.CostProfile) (domain.CostProfile, error)
}

// TaxEstimator estimates tax over a date range.
type TaxEstimator interface {
	Estimate(ctx context.Context, userID string, rng domain.DateRange) (domain.TaxEstimate, error)
}

// Exporter lists trips for download.
type Exporter interface {
	Export(ctx context.Context, userID string, rng domain.DateRange) ([]domain.Trip, error)
}

// Services groups the business dependencies of Server. A nil field leaves
// its routes unregistered.
type Services struct {
	Imports  Importer
	Trips    TripServicer
	Profiles ProfileServicer
	Tax      TaxEstimator
	Export   Exporter
}

// Server holds every handler dependency.
type Server struct {
	svc     Services
	loc     *time.Location
	ledger  *ledger.Writer
	openapi []byte
	log     *slog.Logger
}

// NewServer constructs the Server. loc is the ledger time zone used to read
// date query parameters and write CSV exports; nil means UTC.
func NewServer(svc Services, loc *time.Location, doc []byte, log *slog.Logger) *Server {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		svc:     svc,
		loc:     loc,
		ledger:  ledger.NewWriter(loc),
		openapi: doc,
		log:     log,
	}
}

// Routes registers every endpoint on r. importMW wraps POST /imports only,
// e.g. with the per-user rate limiter.
func (s *Server) Routes(r chi.Router, importMW ...func(http.Handler) http.Handler) {
	r.Get("/healthz", s.GetHealth)
	if len(s.openapi) > 0 {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	if s.svc.Imports != nil {
		r.With(importMW...).Post("/imports", s.PostImport)
	}

	r.Route("/trips", func(r chi.Router) {
		if s.svc.Export != nil {
			r.Get("/export", s.GetExport)
		}
		if s.svc.Trips == nil {
			return
		}
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Get("/{id}", s.GetTrip)
		r.Put("/{id}", s.UpdateTrip)
		r.Delete("/{id}", s.DeleteTrip)
	})

	if s.svc.Profiles != nil {
		r.Get("/profile", s.GetProfile)
		r.Put("/profile", s.PutProfile)
	}
	if s.svc.Tax != nil {
		r.Get("/tax-estimate", s.GetTaxEstimate)
	}

	r.Route("/calculations", func(r chi.Router) {
		r.Post("/daily-profit", s.PostDailyProfit)
		r.Post("/cost-breakdown", s.PostCostBreakdown)
		r.Post("/fuel-comparison", s.PostFuelComparison)
	})
}

// Handler returns a fresh chi router carrying every route.
func (s *Server) Handler(importMW ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	s.Routes(r, importMW...)
	return r
}
