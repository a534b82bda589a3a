// Package dedup detects re-imported trips via SHA256 content fingerprints.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// DefaultWindowDays is how far back stored trips are compared.
const DefaultWindowDays = 90

// Fingerprint hashes the calendar date (in loc), the amount in cents and the
// distance in hundredths of a km.
// Format: SHA256("{YYYY-MM-DD}|{cents}|{distance*100}")
// Platform, duration and city do not take part: two trips equal on these three
// values are the same economic event.
func Fingerprint(t domain.Trip, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	date := t.OccurredAt.In(loc).Format("2006-01-02")
	cents := t.GrossEarnings.Shift(2).Round(0).String()
	dist := t.DistanceKm.Shift(2).Round(0).String()

	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", date, cents, dist)))
	return hex.EncodeToString(hash[:])
}

// Deduplicator filters candidate trips against stored ones.
// It never touches storage; callers supply both sides.
type Deduplicator struct {
	windowDays int
	loc        *time.Location
	now        func() time.Time
}

// New returns a Deduplicator comparing against the last windowDays days of
// history, with dates read in loc. windowDays <= 0 compares all history.
func New(windowDays int, loc *time.Location) *Deduplicator {
	if loc == nil {
		loc = time.UTC
	}
	return &Deduplicator{windowDays: windowDays, loc: loc, now: time.Now}
}

// WithClock returns a copy of d that reads the current time from now.
func (d *Deduplicator) WithClock(now func() time.Time) *Deduplicator {
	c := *d
	c.now = now
	return &c
}

// Window returns the earliest OccurredAt still compared, or the zero time
// when the whole history is compared.
func (d *Deduplicator) Window() time.Time {
	if d.windowDays <= 0 {
		return time.Time{}
	}
	return d.now().AddDate(0, 0, -d.windowDays)
}

// Fingerprint hashes t in the deduplicator's location.
func (d *Deduplicator) Fingerprint(t domain.Trip) string {
	return Fingerprint(t, d.loc)
}

// Result splits candidates into unique trips and suppressed duplicates,
// each in input order. Unique trips carry their Fingerprint.
type Result struct {
	Unique     []domain.Trip
	Duplicates []domain.Trip
}

// Dedupe keeps candidates whose fingerprint is in neither existing nor an
// earlier candidate of the same batch.
func (d *Deduplicator) Dedupe(candidates, existing []domain.Trip) Result {
	cutoff := d.Window()
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, t := range existing {
		if !cutoff.IsZero() && t.OccurredAt.Before(cutoff) {
			continue
		}
		seen[d.Fingerprint(t)] = struct{}{}
	}

	res := Result{Unique: []domain.Trip{}, Duplicates: []domain.Trip{}}
	for _, t := range candidates {
		fp := d.Fingerprint(t)
		if _, dup := seen[fp]; dup {
			res.Duplicates = append(res.Duplicates, t)
			continue
		}
		seen[fp] = struct{}{}
		t.Fingerprint = fp
		res.Unique = append(res.Unique, t)
	}
	return res
}
