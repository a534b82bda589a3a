package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// Trip is the JSON form of domain.Trip. Decimals encode as strings.
// ID and the timestamps are absent on preview samples, which are not stored.
type Trip struct {
	ID            *uuid.UUID      `json:"id,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Platform      string          `json:"platform"`
	GrossEarnings decimal.Decimal `json:"grossEarnings"`
	DistanceKm    decimal.Decimal `json:"distanceKm"`
	DurationHours decimal.Decimal `json:"durationHours"`
	City          string          `json:"city,omitempty"`
	CostPerKm     decimal.Decimal `json:"costPerKm"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	Source        string          `json:"source"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

// TripRequest is the body of POST /trips and PUT /trips/{id}.
type TripRequest struct {
	OccurredAt    time.Time       `json:"occurredAt"`
	Platform      string          `json:"platform"`
	GrossEarnings decimal.Decimal `json:"grossEarnings"`
	DistanceKm    decimal.Decimal `json:"distanceKm"`
	DurationHours decimal.Decimal `json:"durationHours"`
	City          string          `json:"city"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CostProfile is the JSON form of domain.CostProfile.
type CostProfile struct {
	CostPerKmVariable decimal.Decimal `json:"costPerKmVariable"`
	CostPerKmFixed    decimal.Decimal `json:"costPerKmFixed"`
	TaxRate           decimal.Decimal `json:"taxRate"`
	UpdatedAt         *time.Time      `json:"updatedAt,omitempty"`
}

// TaxEstimate is the body of GET /tax-estimate.
type TaxEstimate struct {
	PeriodStart *openapi_types.Date `json:"periodStart"`
	PeriodEnd   *openapi_types.Date `json:"periodEnd"`
	GrossProfit decimal.Decimal     `json:"grossProfit"`
	Rate        decimal.Decimal     `json:"rate"`
	Amount      decimal.Decimal     `json:"amount"`
}

func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		OccurredAt:    t.OccurredAt,
		Platform:      t.Platform,
		GrossEarnings: t.GrossEarnings,
		DistanceKm:    t.DistanceKm,
		DurationHours: t.DurationHours,
		City:          t.City,
		CostPerKm:     t.CostPerKm,
		NetProfit:     t.NetProfit,
		Source:        string(t.Source),
	}
	if t.ID != uuid.Nil {
		id := t.ID
		resp.ID = &id
	}
	if !t.CreatedAt.IsZero() {
		resp.CreatedAt = &t.CreatedAt
	}
	if !t.UpdatedAt.IsZero() {
		resp.UpdatedAt = &t.UpdatedAt
	}
	return resp
}

func tripsToResponse(trips []domain.Trip) []Trip {
	out := make([]Trip, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out
}

func requestToTrip(userID string, body TripRequest) domain.Trip {
	return domain.Trip{
		UserID:        userID,
		OccurredAt:    body.OccurredAt,
		Platform:      body.Platform,
		GrossEarnings: body.GrossEarnings,
		DistanceKm:    body.DistanceKm,
		DurationHours: body.DurationHours,
		City:          body.City,
	}
}

func profileToResponse(p domain.CostProfile) CostProfile {
	resp := CostProfile{
		CostPerKmVariable: p.CostPerKmVariable,
		CostPerKmFixed:    p.CostPerKmFixed,
		TaxRate:           p.TaxRate,
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = &p.UpdatedAt
	}
	return resp
}

func optionalDate(t time.Time) *openapi_types.Date {
	if t.IsZero() {
		return nil
	}
	return &openapi_types.Date{Time: t}
}
