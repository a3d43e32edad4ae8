package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type UsageRepo struct {
	db *DB
}

func NewUsageRepo(db *DB) *UsageRepo {
	return &UsageRepo{db: db}
}

func (r *UsageRepo) Runs(ctx context.Context, day string) (int, error) {
	query := `SELECT runs FROM usage_days WHERE day = $1`

	var runs int
	err := r.db.Pool.QueryRow(ctx, query, day).Scan(&runs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get runs: %w", err)
	}

	return runs, nil
}

// Increment relies on the upsert being atomic at the database level, so
// concurrent scans never lose a count.
func (r *UsageRepo) Increment(ctx context.Context, day string) error {
	query := `
		INSERT INTO usage_days (day, runs)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET runs = usage_days.runs + 1
	`

	if _, err := r.db.Pool.Exec(ctx, query, day); err != nil {
		return fmt.Errorf("increment runs: %w", err)
	}

	return nil
}
