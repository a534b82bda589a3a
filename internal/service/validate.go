package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

var (
	minDistanceKm    = decimal.RequireFromString("0.1")
	minDurationHours = decimal.RequireFromString("0.1")
)

// ValidateCandidates splits parsed rows into trips and rejections, keeping
// input order. Every failed rule of a row is reported in the same Rejection.
// Accepted trips carry only the parsed fields; cost and profit are filled in
// by the caller.
func ValidateCandidates(rows []domain.CandidateRow) ([]domain.Trip, []domain.Rejection) {
	trips := []domain.Trip{}
	rejections := []domain.Rejection{}

	for _, row := range rows {
		if row.ParseError != "" {
			rejections = append(rejections, domain.Rejection{
				RowIndex: row.Line,
				Reasons:  []string{"unparseable row: " + row.ParseError},
			})
			continue
		}

		trip := domain.Trip{
			OccurredAt:    row.OccurredAt,
			Platform:      strings.TrimSpace(row.Platform),
			GrossEarnings: row.Amount,
			DistanceKm:    row.DistanceKm,
			DurationHours: row.DurationHours,
			City:          strings.TrimSpace(row.City),
		}
		if problems := tripProblems(trip); len(problems) > 0 {
			rejections = append(rejections, domain.Rejection{RowIndex: row.Line, Reasons: problems})
			continue
		}
		trips = append(trips, trip)
	}
	return trips, rejections
}

// tripProblems returns every business rule t violates, in rule order.
// An empty result means the trip is acceptable.
func tripProblems(t domain.Trip) []string {
	var problems []string

	if t.OccurredAt.IsZero() {
		problems = append(problems, "date is missing or invalid")
	}
	switch {
	case t.GrossEarnings.IsNegative():
		problems = append(problems, "gross earnings must not be negative")
	case t.GrossEarnings.IsZero():
		problems = append(problems, "gross earnings must be greater than zero")
	}
	if t.DistanceKm.LessThan(minDistanceKm) {
		problems = append(problems, "distance must be at least 0.1 km")
	}
	if t.DurationHours.LessThan(minDurationHours) {
		problems = append(problems, "duration must be at least 0.1 hours")
	}
	if strings.TrimSpace(t.Platform) == "" {
		problems = append(problems, "platform is required")
	}
	return problems
}
