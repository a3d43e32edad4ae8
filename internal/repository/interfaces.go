package repository

import (
	"context"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
)

// UsageRepository counts completed scan runs per calendar day (UTC).
type UsageRepository interface {
	// Runs returns the count for the day, zero when no row exists yet.
	Runs(ctx context.Context, day string) (int, error)
	// Increment bumps the day's counter by one. Safe under concurrency:
	// two concurrent calls always land as two.
	Increment(ctx context.Context, day string) error
}

// HistoryRepository is an append-only log of completed scans. Records
// are never updated or deleted.
type HistoryRepository interface {
	Append(ctx context.Context, rec *domain.HistoryRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryRecord, error)
	GetByID(ctx context.Context, id string) (*domain.HistoryRecord, error)
}
