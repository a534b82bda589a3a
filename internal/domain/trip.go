// Package domain contains the core data types for the GiroPro API.
// This package depends only on uuid and decimal and is imported by every
// other internal package (ledger, finance, dedup, repo, service, handler).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source records how a trip entered the system.
type Source string

const (
	// SourceManual marks trips typed in by the driver.
	SourceManual Source = "manual"
	// SourceImported marks trips that arrived through a ledger import.
	SourceImported Source = "imported"
)

// Trip is one economic unit of gig work: a single ride or delivery.
// NetProfit always equals GrossEarnings - DistanceKm*CostPerKm for the cost
// basis known when the trip was stored. GrossEarnings is never zero.
type Trip struct {
	ID            uuid.UUID
	UserID        string
	OccurredAt    time.Time
	Platform      string
	GrossEarnings decimal.Decimal
	DistanceKm    decimal.Decimal
	DurationHours decimal.Decimal
	City          string
	CostPerKm     decimal.Decimal
	NetProfit     decimal.Decimal
	Source        Source

	// Fingerprint is the content hash used to detect re-imports.
	// Populated by the service layer before the trip is persisted.
	Fingerprint string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CandidateRow is one data row of a ledger file before validation.
// ParseError is set when the row could not be read at all (too few fields,
// unreadable date); such rows are always rejected by the validator.
type CandidateRow struct {
	// Line is the 1-based physical line number in the source file.
	Line int

	OccurredAt    time.Time
	Platform      string
	Amount        decimal.Decimal
	DistanceKm    decimal.Decimal
	DurationHours decimal.Decimal
	City          string

	ParseError string
}

// Rejection explains why one candidate row did not become a trip.
// Reasons lists every failed rule, in rule order.
type Rejection struct {
	RowIndex int
	Reasons  []string
}

// Reason joins all reasons into the single message shown to the user.
func (r Rejection) Reason() string {
	return strings.Join(r.Reasons, "; ")
}
