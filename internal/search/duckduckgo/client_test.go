package duckduckgo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search"
)

const samplePage = `<html><body><table>
<tr><td><a rel="nofollow" class="result-link" href="https://example.com/about">Acme Bio - About us</a></td></tr>
<tr><td class="result-snippet">Acme Bio develops cell therapies &amp; regenerative products.</td></tr>
<tr><td><a rel="nofollow" class="result-link" href="https://kabutan.jp/stock/?code=9999">Acme Bio stock page</a></td></tr>
<tr><td class="result-snippet">Stock quote and financials.</td></tr>
</table></body></html>`

func newTestClient(url string) *Client {
	return New(Config{Endpoint: url}, zap.NewNop())
}

func TestSearch_ParsesLitePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("q"); got != "acme bio" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Search(context.Background(), search.Request{Query: "acme bio"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].URL != "https://example.com/about" {
		t.Errorf("url = %q", resp.Results[0].URL)
	}
	if resp.Results[0].Snippet != "Acme Bio develops cell therapies & regenerative products." {
		t.Errorf("snippet = %q, entities not decoded", resp.Results[0].Snippet)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := newTestClient("http://invalid.localhost")

	_, err := client.Search(context.Background(), search.Request{Query: "   "})
	if !errors.Is(err, search.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestSearch_RateLimitedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), search.Request{Query: "acme"})
	if !errors.Is(err, search.ErrRateLimit) {
		t.Errorf("err = %v, want ErrRateLimit", err)
	}
}

func TestSearch_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>No results.</body></html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), search.Request{Query: "acme"})
	if !errors.Is(err, search.ErrEmptyResults) {
		t.Errorf("err = %v, want ErrEmptyResults", err)
	}
}

func TestParseLiteHTML_MaxResults(t *testing.T) {
	results := parseLiteHTML(samplePage, 1)
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestFallbackParse(t *testing.T) {
	page := `<html><body>
<a href="/internal">internal nav</a>
<a href="https://duckduckgo.com/settings">settings</a>
<a href="https://example.com/story">External story title</a>
<a href="https://example.com/story">External story title</a>
</body></html>`

	results := fallbackParse(page, 5)
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1 after filtering and dedup", len(results))
	}
	if results[0].URL != "https://example.com/story" {
		t.Errorf("url = %q", results[0].URL)
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>bold</b> text", "bold text"},
		{"a &amp; b", "a & b"},
		{"  spaced  ", "spaced"},
		{"&quot;quoted&quot;", `"quoted"`},
	}

	for _, tt := range tests {
		if got := cleanHTML(tt.in); got != tt.want {
			t.Errorf("cleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
