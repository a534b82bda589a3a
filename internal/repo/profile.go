package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// ProfileRepo defines persistence for per-user cost profiles.
type ProfileRepo interface {
	// Get returns domain.ErrNotFound when the user never saved a profile.
	Get(ctx context.Context, userID string) (domain.CostProfile, error)

	// Upsert inserts or replaces the user's profile.
	Upsert(ctx context.Context, p domain.CostProfile) (domain.CostProfile, error)
}

type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

func (r *pgProfileRepo) Get(ctx context.Context, userID string) (domain.CostProfile, error) {
	const q = `
		SELECT user_id, cost_per_km_variable, cost_per_km_fixed, tax_rate, updated_at
		FROM cost_profiles
		WHERE user_id = @user_id`

	p, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if err != nil {
		return domain.CostProfile{}, fmt.Errorf("repo.ProfileRepo.Get: %w", err)
	}
	return p, nil
}

func (r *pgProfileRepo) Upsert(ctx context.Context, p domain.CostProfile) (domain.CostProfile, error) {
	const q = `
		INSERT INTO cost_profiles (user_id, cost_per_km_variable, cost_per_km_fixed, tax_rate)
		VALUES (@user_id, @variable, @fixed, @tax_rate)
		ON CONFLICT (user_id) DO UPDATE
		SET cost_per_km_variable = EXCLUDED.cost_per_km_variable,
		    cost_per_km_fixed    = EXCLUDED.cost_per_km_fixed,
		    tax_rate             = EXCLUDED.tax_rate,
		    updated_at           = now()
		RETURNING user_id, cost_per_km_variable, cost_per_km_fixed, tax_rate, updated_at`

	args := pgx.NamedArgs{
		"user_id":  p.UserID,
		"variable": p.CostPerKmVariable,
		"fixed":    p.CostPerKmFixed,
		"tax_rate": p.TaxRate,
	}
	out, err := scanProfile(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.CostProfile{}, fmt.Errorf("repo.ProfileRepo.Upsert: %w", err)
	}
	return out, nil
}

func scanProfile(s scanner) (domain.CostProfile, error) {
	var p domain.CostProfile
	err := s.Scan(&p.UserID, &p.CostPerKmVariable, &p.CostPerKmFixed, &p.TaxRate, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CostProfile{}, domain.ErrNotFound
		}
		return domain.CostProfile{}, err
	}
	return p, nil
}
