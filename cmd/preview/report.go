package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

var (
	heading   = color.New(color.FgGreen, color.Bold)
	okLine    = color.New(color.FgGreen)
	warnLine  = color.New(color.FgYellow)
	errorLine = color.New(color.FgRed)
	dim       = color.New(color.Faint)
)

// report prints a preview result for a terminal.
func report(w io.Writer, path string, res domain.ImportResult, loc *time.Location) {
	line := strings.Repeat("=", 60)
	heading.Fprintf(w, "%s\n%s\n%s\n", line, path, line)

	fmt.Fprintf(w, "  rows:    %d\n", res.Total)
	okLine.Fprintf(w, "  valid:   %d\n", res.Valid)
	if res.Invalid > 0 {
		warnLine.Fprintf(w, "  invalid: %d\n", res.Invalid)
	} else {
		fmt.Fprintf(w, "  invalid: %d\n", res.Invalid)
	}

	if len(res.Rejections) > 0 {
		fmt.Fprintln(w)
		warnLine.Fprintln(w, "Rejected rows")
		for _, r := range res.Rejections {
			warnLine.Fprintf(w, "  line %d: %s\n", r.RowIndex, r.Reason())
		}
	}

	if res.Outcome == domain.OutcomeNoValidTrips {
		fmt.Fprintln(w)
		errorLine.Fprintln(w, res.Message)
		return
	}

	fmt.Fprintln(w)
	heading.Fprintf(w, "Sample (%d of %d)\n", len(res.Sample), res.Valid)
	for _, t := range res.Sample {
		fmt.Fprintf(w, "  %s  %-12s %8s BRL %7s km  net %8s",
			t.OccurredAt.In(loc).Format("2006-01-02 15:04"),
			t.Platform,
			t.GrossEarnings.StringFixed(2),
			t.DistanceKm.StringFixed(1),
			t.NetProfit.StringFixed(2),
		)
		if t.City != "" {
			dim.Fprintf(w, "  %s", t.City)
		}
		fmt.Fprintln(w)
	}
}
