package scanner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
	llmmock "github.com/kanesei1102-sketch/Corporate-Scanner/internal/llm/mock"
)

func testSet(n int) *domain.ResultSet {
	set := domain.NewResultSet(domain.Target("Acme Bio"))
	items := make([]domain.ResultItem, n)
	for i := range items {
		items[i] = domain.ResultItem{
			Title:  "item",
			URL:    "https://example.com/" + string(rune('a'+i)),
			Source: "example.com",
		}
	}
	set.Merge(items, 10)
	return set
}

func TestSummarize_EmptySetSkipsLLM(t *testing.T) {
	client := llmmock.New()
	s := NewSummarizer(client, zap.NewNop(), nil)

	got := s.Summarize(context.Background(), testSet(0))
	if got != "" {
		t.Errorf("summary = %q, want empty", got)
	}
	if client.CallCount != 0 {
		t.Errorf("llm calls = %d, want 0", client.CallCount)
	}
}

func TestSummarize_IncludesItemsInPrompt(t *testing.T) {
	client := llmmock.New().WithResponse("Short briefing.")
	s := NewSummarizer(client, zap.NewNop(), nil)

	got := s.Summarize(context.Background(), testSet(2))
	if got != "Short briefing." {
		t.Errorf("summary = %q", got)
	}
	if !strings.Contains(client.LastPrompt, "Acme Bio") {
		t.Errorf("prompt missing target: %q", client.LastPrompt)
	}
	if !strings.Contains(client.LastPrompt, "https://example.com/a") {
		t.Errorf("prompt missing item URL: %q", client.LastPrompt)
	}
}

func TestSummarize_ErrorBecomesPlaceholder(t *testing.T) {
	client := llmmock.New().WithError(errors.New("model overloaded"))
	s := NewSummarizer(client, zap.NewNop(), nil)

	got := s.Summarize(context.Background(), testSet(1))
	if !strings.Contains(got, "Summary unavailable") {
		t.Errorf("summary = %q, want placeholder", got)
	}
	if !strings.Contains(got, "model overloaded") {
		t.Errorf("summary = %q, want the error text visible", got)
	}
}

func TestSummarize_NilClient(t *testing.T) {
	s := NewSummarizer(nil, zap.NewNop(), nil)

	if got := s.Summarize(context.Background(), testSet(1)); got != "" {
		t.Errorf("summary = %q, want empty without a client", got)
	}
}
