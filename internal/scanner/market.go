package scanner

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search"
)

// Well-known listed names that a noisy probe query can miss.
var listedKeywords = []string{
	"sony", "ソニー", "トヨタ", "toyota", "terumo", "テルモ",
}

// Hosts whose presence in probe results indicates exchange coverage.
var financeDomains = []string{
	"finance.yahoo", "kabutan", "nikkei.com", "shikiho.jp",
}

// MarketStatus probes whether the target looks like a listed company.
// Best effort: any probe failure reports unlisted rather than blocking
// the scan.
func (o *Orchestrator) MarketStatus(ctx context.Context, target domain.Target) domain.MarketStatus {
	lower := strings.ToLower(target.String())
	for _, kw := range listedKeywords {
		if strings.Contains(lower, kw) {
			return domain.MarketListed
		}
	}

	resp, err := o.web.Search(ctx, search.Request{
		Query:      target.String() + " 株価 銘柄コード 証券",
		Mode:       search.ModeWeb,
		MaxResults: 5,
	})
	if err != nil {
		o.logger.Warn("market probe failed",
			zap.String("target", target.String()),
			zap.Error(err),
		)
		return domain.MarketUnlisted
	}

	for _, r := range resp.Results {
		for _, d := range financeDomains {
			if strings.Contains(r.URL, d) {
				return domain.MarketListed
			}
		}
	}

	return domain.MarketUnlisted
}
