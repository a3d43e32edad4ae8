package domain

import (
	"time"

	"github.com/google/uuid"
)

// MarketStatus is the best-effort listed/unlisted verdict for a target.
type MarketStatus string

const (
	MarketListed   MarketStatus = "listed"
	MarketUnlisted MarketStatus = "unlisted"
	MarketUnknown  MarketStatus = "unknown"
)

// MaxHistoryItems bounds how much of a result set is persisted per run.
const MaxHistoryItems = 8

// HistoryRecord is one immutable log entry of a completed scan. Written once
// after the scan finishes, read back only for display and report export.
type HistoryRecord struct {
	ID        string       `json:"id"`
	Target    string       `json:"target"`
	Market    MarketStatus `json:"market"`
	Items     []ResultItem `json:"items"`
	Summary   string       `json:"summary,omitempty"`
	Generic   bool         `json:"generic,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewHistoryRecord(set *ResultSet, market MarketStatus, summary string) *HistoryRecord {
	items := set.Items
	if len(items) > MaxHistoryItems {
		items = items[:MaxHistoryItems]
	}

	return &HistoryRecord{
		ID:        uuid.NewString(),
		Target:    set.Target,
		Market:    market,
		Items:     items,
		Summary:   summary,
		Generic:   set.Generic,
		CreatedAt: time.Now().UTC(),
	}
}

// DayKey is the date-string key of a usage record. Quota rolls over
// naturally because the key changes at UTC midnight.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
