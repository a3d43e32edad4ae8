package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/llm"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/metrics"
)

const summarySystemPrompt = `You are a corporate intelligence analyst. Summarize the news items below into a short strategic briefing for a business development team. Focus on partnerships, funding, clinical progress and regulatory events. Answer in the language of the source material. Keep it under 200 words.`

// Summarizer turns a result set into a short narrative briefing. It never
// blocks a scan: on LLM failure the error text stands in for the summary
// so the results still render.
type Summarizer struct {
	llm     llm.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewSummarizer(client llm.Client, logger *zap.Logger, m *metrics.Metrics) *Summarizer {
	return &Summarizer{llm: client, logger: logger, metrics: m}
}

func (s *Summarizer) Summarize(ctx context.Context, set *domain.ResultSet) string {
	if s == nil || s.llm == nil || set.Empty() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n\n", set.Target)
	for i, item := range set.Items {
		fmt.Fprintf(&b, "%d. %s\n%s\n(%s, %s)\n\n", i+1, item.Title, item.Snippet, item.Source, item.Date)
	}

	start := time.Now()
	summary, err := s.llm.CompleteWithSystem(ctx, summarySystemPrompt, b.String())
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordLLMRequest("summary", "error", time.Since(start))
		}
		s.logger.Warn("summary generation failed",
			zap.String("target", string(set.Target)),
			zap.Error(err),
		)
		return fmt.Sprintf("Summary unavailable: %v", err)
	}
	if s.metrics != nil {
		s.metrics.RecordLLMRequest("summary", "success", time.Since(start))
	}

	return summary
}
