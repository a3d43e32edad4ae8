package scanner

import (
	"context"
	"testing"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search/mock"
)

func TestMarketStatus_KnownListedKeyword(t *testing.T) {
	web := mock.New()
	o := newTestOrchestrator(mock.New(), web)

	got := o.MarketStatus(context.Background(), domain.Target("ソニーグループ"))
	if got != domain.MarketListed {
		t.Errorf("status = %q, want listed", got)
	}
	if web.CallCount != 0 {
		t.Errorf("keyword match must skip the probe, got %d calls", web.CallCount)
	}
}

func TestMarketStatus_FinanceDomainHit(t *testing.T) {
	web := mock.New().WithResults([]search.Result{
		{Title: "quote page", URL: "https://finance.yahoo.co.jp/quote/1234"},
	})
	o := newTestOrchestrator(mock.New(), web)

	got := o.MarketStatus(context.Background(), domain.Target("架空製薬"))
	if got != domain.MarketListed {
		t.Errorf("status = %q, want listed", got)
	}
}

func TestMarketStatus_NoFinanceCoverage(t *testing.T) {
	web := mock.New().WithResults([]search.Result{
		{Title: "blog", URL: "https://example.com/post"},
	})
	o := newTestOrchestrator(mock.New(), web)

	got := o.MarketStatus(context.Background(), domain.Target("架空バイオ"))
	if got != domain.MarketUnlisted {
		t.Errorf("status = %q, want unlisted", got)
	}
}

func TestMarketStatus_ProbeFailureIsUnlisted(t *testing.T) {
	web := mock.New().WithError(search.ErrSearchFailed)
	o := newTestOrchestrator(mock.New(), web)

	got := o.MarketStatus(context.Background(), domain.Target("架空バイオ"))
	if got != domain.MarketUnlisted {
		t.Errorf("status = %q, want unlisted on probe failure", got)
	}
}
