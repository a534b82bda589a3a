package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// Header is the header row written by Writer. It is the StandardCSV layout.
var Header = []string{"Date", "Time", "City", "Category", "Amount", "Distance", "Duration"}

// Writer encodes trips in the StandardCSV layout, so an exported file goes
// back through Parser unchanged: same dates in the ledger zone, amounts to
// the cent, distances to two decimals and durations in whole minutes.
type Writer struct {
	loc *time.Location
}

// NewWriter returns a Writer that formats dates in loc (nil means UTC).
func NewWriter(loc *time.Location) *Writer {
	if loc == nil {
		loc = time.UTC
	}
	return &Writer{loc: loc}
}

// Write emits the header followed by one row per trip.
func (lw *Writer) Write(w io.Writer, trips []domain.Trip) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("ledger.Writer.Write: header: %w", err)
	}
	for _, t := range trips {
		at := t.OccurredAt.In(lw.loc)
		record := []string{
			at.Format("2006-01-02"),
			at.Format("15:04"),
			t.City,
			t.Platform,
			t.GrossEarnings.StringFixed(2),
			t.DistanceKm.StringFixed(2),
			t.DurationHours.Mul(minutesPerHour).Round(0).String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("ledger.Writer.Write: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("ledger.Writer.Write: flush: %w", err)
	}
	return nil
}
