// Command preview dry-runs a ledger import locally: it parses and validates a
// file with default costs and prints what an import would store, without
// touching a database.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/dedup"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/ledger"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/service"
)

const localUser = "local"

var tz = flag.String("tz", "America/Sao_Paulo", "Time zone ledger timestamps are recorded in")

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `preview - dry-run a trip ledger import

Usage:
  preview [flags] file.csv

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), os.Stdout, flag.Arg(0), *tz); err != nil {
		errorLine.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, path, zone string) error {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return fmt.Errorf("invalid -tz: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	svc := service.NewImportService(
		ledger.NewParser(loc),
		dedup.New(dedup.DefaultWindowDays, loc),
		defaultProfiles{},
		nil,
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	res, err := svc.Run(ctx, domain.ImportRequest{
		Raw:    string(raw),
		Mode:   domain.ImportModePreview,
		UserID: localUser,
	})
	if err != nil {
		return err
	}
	report(w, path, res, loc)
	return nil
}

type defaultProfiles struct{}

func (defaultProfiles) Get(_ context.Context, userID string) (domain.CostProfile, error) {
	return domain.DefaultCostProfile(userID), nil
}
