// Package repo contains all database access logic for the GiroPro API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// TripRepo defines the persistence operations for Trips.
// Every read and write is scoped to one user.
type TripRepo interface {
	// Create inserts a single trip and returns the persisted record.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// CreateBatch inserts trips in one round trip and one implicit transaction.
	// Imported trips whose (user_id, fingerprint) already exist are skipped;
	// the returned count is the number of rows actually inserted.
	CreateBatch(ctx context.Context, trips []domain.Trip) (int, error)

	// GetByID returns domain.ErrNotFound if the trip does not exist for userID.
	GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips, most recent first, and the total count.
	ListPaged(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// ListSince returns every trip that occurred at or after since.
	ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Trip, error)

	// ListBetween returns trips inside r, oldest first.
	ListBetween(ctx context.Context, userID string, r domain.DateRange) ([]domain.Trip, error)

	// Update overwrites the mutable fields of a trip.
	// Returns domain.ErrNotFound if no such trip exists for trip.UserID.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete returns domain.ErrNotFound if the trip does not exist for userID.
	Delete(ctx context.Context, userID string, id uuid.UUID) error

	// SumNetProfit totals net_profit of the trips inside r.
	SumNetProfit(ctx context.Context, userID string, r domain.DateRange) (decimal.Decimal, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const tripColumns = `id, user_id, occurred_at, platform, gross_earnings, distance_km,
	duration_hours, city, cost_per_km, net_profit, source, fingerprint, created_at, updated_at`

const insertTrip = `
	INSERT INTO trips (user_id, occurred_at, platform, gross_earnings, distance_km,
		duration_hours, city, cost_per_km, net_profit, source, fingerprint)
	VALUES (@user_id, @occurred_at, @platform, @gross_earnings, @distance_km,
		@duration_hours, @city, @cost_per_km, @net_profit, @source, @fingerprint)`

func tripArgs(t domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":        t.UserID,
		"occurred_at":    t.OccurredAt,
		"platform":       t.Platform,
		"gross_earnings": t.GrossEarnings,
		"distance_km":    t.DistanceKm,
		"duration_hours": t.DurationHours,
		"city":           t.City,
		"cost_per_km":    t.CostPerKm,
		"net_profit":     t.NetProfit,
		"source":         string(t.Source),
		"fingerprint":    t.Fingerprint,
	}
}

// Create inserts a trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := insertTrip + ` RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// CreateBatch queues one INSERT per trip. Postgres runs the whole batch in a
// single implicit transaction, so an error leaves nothing behind.
func (r *pgTripRepo) CreateBatch(ctx context.Context, trips []domain.Trip) (int, error) {
	if len(trips) == 0 {
		return 0, nil
	}
	q := insertTrip + `
	ON CONFLICT (user_id, fingerprint) WHERE source = 'imported' DO NOTHING`

	batch := &pgx.Batch{}
	for _, t := range trips {
		batch.Queue(q, tripArgs(t))
	}

	br := r.db.SendBatch(ctx, batch)
	inserted := 0
	for range trips {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return 0, fmt.Errorf("repo.TripRepo.CreateBatch: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.CreateBatch: close: %w", err)
	}
	return inserted, nil
}

// GetByID retrieves a trip by primary key, scoped to userID.
func (r *pgTripRepo) GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id AND user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of trips ordered by occurred_at descending.
func (r *pgTripRepo) ListPaged(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": userID}).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY occurred_at DESC, id
		LIMIT @limit OFFSET @offset`

	trips, err := r.query(ctx, q, pgx.NamedArgs{"user_id": userID, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

// ListSince returns trips with occurred_at >= since, most recent first.
func (r *pgTripRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id AND occurred_at >= @since
		ORDER BY occurred_at DESC`

	trips, err := r.query(ctx, q, pgx.NamedArgs{"user_id": userID, "since": since})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListSince: %w", err)
	}
	return trips, nil
}

// ListBetween returns trips inside rng ordered by occurred_at ascending.
// A nil bound is an open side of the range.
func (r *pgTripRepo) ListBetween(ctx context.Context, userID string, rng domain.DateRange) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		  AND (@from::timestamptz IS NULL OR occurred_at >= @from)
		  AND (@until::timestamptz IS NULL OR occurred_at < @until)
		ORDER BY occurred_at ASC`

	trips, err := r.query(ctx, q, rangeArgs(userID, rng))
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListBetween: %w", err)
	}
	return trips, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET occurred_at    = @occurred_at,
		    platform       = @platform,
		    gross_earnings = @gross_earnings,
		    distance_km    = @distance_km,
		    duration_hours = @duration_hours,
		    city           = @city,
		    cost_per_km    = @cost_per_km,
		    net_profit     = @net_profit,
		    fingerprint    = @fingerprint,
		    updated_at     = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrConflict)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key, scoped to userID.
func (r *pgTripRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// SumNetProfit totals net_profit over rng. An empty range sums to zero.
func (r *pgTripRepo) SumNetProfit(ctx context.Context, userID string, rng domain.DateRange) (decimal.Decimal, error) {
	const q = `
		SELECT COALESCE(SUM(net_profit), 0)
		FROM trips
		WHERE user_id = @user_id
		  AND (@from::timestamptz IS NULL OR occurred_at >= @from)
		  AND (@until::timestamptz IS NULL OR occurred_at < @until)`

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, q, rangeArgs(userID, rng)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("repo.TripRepo.SumNetProfit: %w", err)
	}
	return total, nil
}

func (r *pgTripRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// rangeArgs turns an inclusive calendar range into [from, until) bounds.
// Zero bounds become NULL.
func rangeArgs(userID string, rng domain.DateRange) pgx.NamedArgs {
	args := pgx.NamedArgs{"user_id": userID, "from": nil, "until": nil}
	if !rng.From.IsZero() {
		args["from"] = rng.From
	}
	if !rng.To.IsZero() {
		args["until"] = rng.To.AddDate(0, 0, 1)
	}
	return args
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// Numeric columns scan straight into decimal.Decimal via sql.Scanner.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		source string
	)

	err := s.Scan(&id, &t.UserID, &t.OccurredAt, &t.Platform, &t.GrossEarnings, &t.DistanceKm,
		&t.DurationHours, &t.City, &t.CostPerKm, &t.NetProfit, &source, &t.Fingerprint,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Source = domain.Source(source)
	return t, nil
}
