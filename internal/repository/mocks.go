package repository

import (
	"context"
	"sync"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
)

type MockUsageRepository struct {
	mu   sync.Mutex
	runs map[string]int

	// RunsErr and IncrementErr inject failures.
	RunsErr      error
	IncrementErr error
}

func NewMockUsageRepository() *MockUsageRepository {
	return &MockUsageRepository{
		runs: make(map[string]int),
	}
}

func (m *MockUsageRepository) Runs(ctx context.Context, day string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RunsErr != nil {
		return 0, m.RunsErr
	}
	return m.runs[day], nil
}

func (m *MockUsageRepository) Increment(ctx context.Context, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IncrementErr != nil {
		return m.IncrementErr
	}
	m.runs[day]++
	return nil
}

// SetRuns seeds the counter for a day.
func (m *MockUsageRepository) SetRuns(day string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[day] = n
}

type MockHistoryRepository struct {
	mu      sync.Mutex
	records []domain.HistoryRecord // newest first

	AppendErr error
	RecentErr error
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

func (m *MockHistoryRepository) Append(ctx context.Context, rec *domain.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.records = append([]domain.HistoryRecord{*rec}, m.records...)
	return nil
}

func (m *MockHistoryRepository) Recent(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecentErr != nil {
		return nil, m.RecentErr
	}
	if limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]domain.HistoryRecord, limit)
	copy(out, m.records[:limit])
	return out, nil
}

func (m *MockHistoryRepository) GetByID(ctx context.Context, id string) (*domain.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID == id {
			rec := m.records[i]
			return &rec, nil
		}
	}
	return nil, domain.ErrHistoryNotFound
}

func (m *MockHistoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

var (
	_ UsageRepository   = (*MockUsageRepository)(nil)
	_ HistoryRepository = (*MockHistoryRepository)(nil)
)
