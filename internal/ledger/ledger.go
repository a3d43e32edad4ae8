// Package ledger enforces the shared daily run quota and keeps the scan
// history. The quota is global, not per client: every completed scan
// consumes one run regardless of who asked or what came back.
package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/metrics"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/repository"
)

type Config struct {
	DailyQuota int
	Passcode   string
}

type Deps struct {
	Usage   repository.UsageRepository
	History repository.HistoryRepository
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Config  Config
}

type Ledger struct {
	usage   repository.UsageRepository
	history repository.HistoryRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
	config  Config
}

func New(deps Deps) *Ledger {
	if deps.Config.DailyQuota == 0 {
		deps.Config.DailyQuota = 100
	}

	return &Ledger{
		usage:   deps.Usage,
		history: deps.History,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		config:  deps.Config,
	}
}

// Remaining reports how many runs are left for the day. Fails open: when
// the counter cannot be read the full quota is reported, trading possible
// overuse for availability.
func (l *Ledger) Remaining(ctx context.Context, day string) int {
	runs, err := l.usage.Runs(ctx, day)
	if err != nil {
		l.logger.Warn("usage read failed, assuming full quota",
			zap.String("day", day),
			zap.Error(err),
		)
		runs = 0
	}

	remaining := l.config.DailyQuota - runs
	if remaining < 0 {
		remaining = 0
	}

	if l.metrics != nil {
		l.metrics.SetQuotaRemaining(float64(remaining))
	}

	return remaining
}

// Authorize gates a scan: the passcode must match and the day must have
// quota left. Checked before any provider call is made.
func (l *Ledger) Authorize(ctx context.Context, day, passcode string) error {
	if passcode != l.config.Passcode {
		return domain.ErrBadPasscode
	}

	if l.Remaining(ctx, day) <= 0 {
		return domain.ErrQuotaExhausted
	}

	return nil
}

// RecordRun charges one run against the day and appends the record to
// history. Called once per completed orchestration, empty result sets
// included.
func (l *Ledger) RecordRun(ctx context.Context, day string, rec *domain.HistoryRecord) error {
	if err := l.usage.Increment(ctx, day); err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}

	if err := l.history.Append(ctx, rec); err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	return nil
}

func (l *Ledger) Recent(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	records, err := l.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	return records, nil
}

func (l *Ledger) Get(ctx context.Context, id string) (*domain.HistoryRecord, error) {
	rec, err := l.history.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
