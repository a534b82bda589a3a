// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when required environment
// variables are not set, so unit tests can run without Postgres or Redis.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/vinih2/giropro-motoristas-v2-sub000/migrations"
)

const (
	databaseEnv = "TEST_DATABASE_URL"
	redisEnv    = "TEST_REDIS_URL"
)

// NewPool opens a *pgxpool.Pool against TEST_DATABASE_URL.
// The pool is closed when the test (and all its subtests) finish.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireEnv(t, databaseEnv))
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction that is rolled back when the test finishes.
// Repos accept a pgx.Tx, so every test gets an isolated view of the schema.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// NewSQLDB opens a *sql.DB against TEST_DATABASE_URL using the pgx
// database/sql driver, for goose migrations.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", requireEnv(t, databaseEnv))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MigrateFromEnv applies every pending migration to TEST_DATABASE_URL.
// It is meant for TestMain, where no *testing.T exists: it reports false
// when the variable is unset and panics on any other failure.
func MigrateFromEnv() bool {
	dsn := os.Getenv(databaseEnv)
	if dsn == "" {
		return false
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic("testutil.MigrateFromEnv: open: " + err.Error())
	}
	defer db.Close()

	if _, err := migrations.Up(context.Background(), db); err != nil {
		panic("testutil.MigrateFromEnv: " + err.Error())
	}
	return true
}

// RedisURL returns TEST_REDIS_URL, skipping the test when it is not set.
func RedisURL(t *testing.T) string {
	t.Helper()
	return requireEnv(t, redisEnv)
}

// UserID returns a user id no other test run shares, so rows written by
// concurrent packages never collide on (user_id, fingerprint).
func UserID() string {
	return "test-user-" + uuid.NewString()
}

func requireEnv(t *testing.T, key string) string {
	t.Helper()
	v := os.Getenv(key)
	if v == "" {
		t.Skipf("%s not set; skipping integration test", key)
	}
	return v
}
