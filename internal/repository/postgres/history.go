package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
)

type HistoryRepo struct {
	db *DB
}

func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Append(ctx context.Context, rec *domain.HistoryRecord) error {
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	query := `
		INSERT INTO scan_history (id, target, market, items, summary, generic, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		rec.ID,
		string(rec.Target),
		string(rec.Market),
		items,
		rec.Summary,
		rec.Generic,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	return nil
}

func (r *HistoryRepo) Recent(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	query := `
		SELECT id, target, market, items, summary, generic, created_at
		FROM scan_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

func (r *HistoryRepo) GetByID(ctx context.Context, id string) (*domain.HistoryRecord, error) {
	query := `
		SELECT id, target, market, items, summary, generic, created_at
		FROM scan_history
		WHERE id = $1
	`

	row := r.db.Pool.QueryRow(ctx, query, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHistoryNotFound
		}
		return nil, err
	}

	return rec, nil
}

func scanRecord(row pgx.Row) (*domain.HistoryRecord, error) {
	var rec domain.HistoryRecord
	var target, market string
	var items []byte

	err := row.Scan(&rec.ID, &target, &market, &items, &rec.Summary, &rec.Generic, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan history record: %w", err)
	}

	rec.Target = target
	rec.Market = domain.MarketStatus(market)

	if err := json.Unmarshal(items, &rec.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}

	return &rec, nil
}
