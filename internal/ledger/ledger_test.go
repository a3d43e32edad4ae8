package ledger

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/repository"
)

const testDay = "2026-09-01"

func newTestLedger(usage *repository.MockUsageRepository, history *repository.MockHistoryRepository) *Ledger {
	return New(Deps{
		Usage:   usage,
		History: history,
		Logger:  zap.NewNop(),
		Config: Config{
			DailyQuota: 3,
			Passcode:   "sesame",
		},
	})
}

func testRecord(target string) *domain.HistoryRecord {
	set := domain.NewResultSet(domain.Target(target))
	return domain.NewHistoryRecord(set, domain.MarketUnlisted, "")
}

func TestRemaining(t *testing.T) {
	usage := repository.NewMockUsageRepository()
	l := newTestLedger(usage, repository.NewMockHistoryRepository())

	if got := l.Remaining(context.Background(), testDay); got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}

	usage.SetRuns(testDay, 2)
	if got := l.Remaining(context.Background(), testDay); got != 1 {
		t.Errorf("remaining = %d, want 1", got)
	}

	usage.SetRuns(testDay, 5)
	if got := l.Remaining(context.Background(), testDay); got != 0 {
		t.Errorf("remaining = %d, want 0 not negative", got)
	}
}

func TestRemaining_FailsOpen(t *testing.T) {
	usage := repository.NewMockUsageRepository()
	usage.RunsErr = errors.New("connection refused")
	l := newTestLedger(usage, repository.NewMockHistoryRepository())

	if got := l.Remaining(context.Background(), testDay); got != 3 {
		t.Errorf("remaining = %d, want full quota when the counter is unreadable", got)
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		passcode string
		runs     int
		wantErr  error
	}{
		{"valid", "sesame", 0, nil},
		{"wrong passcode", "guess", 0, domain.ErrBadPasscode},
		{"empty passcode", "", 0, domain.ErrBadPasscode},
		{"quota exhausted", "sesame", 3, domain.ErrQuotaExhausted},
		{"passcode checked before quota", "guess", 3, domain.ErrBadPasscode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := repository.NewMockUsageRepository()
			usage.SetRuns(testDay, tt.runs)
			l := newTestLedger(usage, repository.NewMockHistoryRepository())

			err := l.Authorize(context.Background(), testDay, tt.passcode)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordRun(t *testing.T) {
	usage := repository.NewMockUsageRepository()
	history := repository.NewMockHistoryRepository()
	l := newTestLedger(usage, history)

	if err := l.RecordRun(context.Background(), testDay, testRecord("Acme Bio")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if runs, _ := usage.Runs(context.Background(), testDay); runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if history.Len() != 1 {
		t.Errorf("history len = %d, want 1", history.Len())
	}
}

func TestRecordRun_EmptyResultStillCharges(t *testing.T) {
	usage := repository.NewMockUsageRepository()
	l := newTestLedger(usage, repository.NewMockHistoryRepository())

	rec := testRecord("Acme Bio")
	if len(rec.Items) != 0 {
		t.Fatal("record should be empty for this test")
	}

	if err := l.RecordRun(context.Background(), testDay, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runs, _ := usage.Runs(context.Background(), testDay); runs != 1 {
		t.Errorf("runs = %d, want 1 even for empty results", runs)
	}
}

func TestRecordRun_IncrementFailure(t *testing.T) {
	usage := repository.NewMockUsageRepository()
	usage.IncrementErr = errors.New("write failed")
	history := repository.NewMockHistoryRepository()
	l := newTestLedger(usage, history)

	if err := l.RecordRun(context.Background(), testDay, testRecord("Acme Bio")); err == nil {
		t.Error("expected error")
	}
	if history.Len() != 0 {
		t.Errorf("history len = %d, want 0 when increment fails", history.Len())
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	history := repository.NewMockHistoryRepository()
	l := newTestLedger(repository.NewMockUsageRepository(), history)

	first := testRecord("First Co")
	second := testRecord("Second Co")
	third := testRecord("Third Co")
	for _, rec := range []*domain.HistoryRecord{first, second, third} {
		if err := l.RecordRun(context.Background(), testDay, rec); err != nil {
			t.Fatalf("record run: %v", err)
		}
	}

	got, err := l.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Target != "Third Co" || got[1].Target != "Second Co" {
		t.Errorf("order = [%s, %s], want newest first", got[0].Target, got[1].Target)
	}
}

func TestGet(t *testing.T) {
	history := repository.NewMockHistoryRepository()
	l := newTestLedger(repository.NewMockUsageRepository(), history)

	rec := testRecord("Acme Bio")
	if err := l.RecordRun(context.Background(), testDay, rec); err != nil {
		t.Fatalf("record run: %v", err)
	}

	got, err := l.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Target != "Acme Bio" {
		t.Errorf("target = %q", got.Target)
	}

	if _, err := l.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrHistoryNotFound) {
		t.Errorf("err = %v, want ErrHistoryNotFound", err)
	}
}
