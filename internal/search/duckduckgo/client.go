package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search"
)

// ddgRateLimit enforces a global 1 query per second limit across all
// client instances; the lite endpoint throttles aggressively otherwise.
var ddgRateLimit struct {
	mu   sync.Mutex
	last time.Time
}

// Client scrapes DuckDuckGo's HTML lite interface. Keyless, so it serves
// as the web-mode fallback when nothing else returns results.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://lite.duckduckgo.com/lite/"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

func (c *Client) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, search.ErrInvalidRequest
	}
	if req.MaxResults == 0 {
		req.MaxResults = 5
	}

	if err := waitRateLimit(ctx); err != nil {
		return nil, err
	}

	formData := url.Values{}
	formData.Set("q", req.Query)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, search.ErrRateLimit
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", search.ErrSearchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	results := parseLiteHTML(string(body), req.MaxResults)
	if len(results) == 0 {
		return nil, search.ErrEmptyResults
	}

	return &search.Response{Query: req.Query, Results: results}, nil
}

func waitRateLimit(ctx context.Context) error {
	ddgRateLimit.mu.Lock()
	wait := time.Until(ddgRateLimit.last.Add(time.Second))
	if wait > 0 {
		ddgRateLimit.mu.Unlock()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
		ddgRateLimit.mu.Lock()
	}
	ddgRateLimit.last = time.Now()
	ddgRateLimit.mu.Unlock()
	return nil
}

// The lite page is plain table markup: result links carry class
// "result-link", snippets sit in "result-snippet" cells.
var (
	reLink     = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	reLinkAlt  = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>([^<]+)</a>`)
	reSnippet  = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</td>`)
	reAnyLink  = regexp.MustCompile(`<a[^>]+href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	reHTMLTags = regexp.MustCompile(`<[^>]+>`)
)

func parseLiteHTML(html string, max int) []search.Result {
	matches := reLink.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		matches = reLinkAlt.FindAllStringSubmatch(html, -1)
	}
	snippets := reSnippet.FindAllStringSubmatch(html, -1)

	var results []search.Result
	for i, m := range matches {
		if len(results) >= max {
			break
		}
		if len(m) < 3 {
			continue
		}

		link := strings.TrimSpace(m[1])
		title := cleanHTML(m[2])
		if link == "" || title == "" {
			continue
		}

		snippet := ""
		if i < len(snippets) && len(snippets[i]) > 1 {
			snippet = cleanHTML(snippets[i][1])
		}

		results = append(results, search.Result{
			Title:   title,
			URL:     link,
			Snippet: snippet,
		})
	}

	if len(results) == 0 {
		results = fallbackParse(html, max)
	}
	return results
}

// fallbackParse grabs any external-looking links when the page layout
// drifts from what the patterns above expect.
func fallbackParse(html string, max int) []search.Result {
	var results []search.Result
	seen := make(map[string]bool)

	for _, m := range reAnyLink.FindAllStringSubmatch(html, -1) {
		if len(results) >= max {
			break
		}
		if len(m) < 3 {
			continue
		}

		link := strings.TrimSpace(m[1])
		title := cleanHTML(m[2])

		if strings.Contains(link, "duckduckgo.com") ||
			strings.HasPrefix(link, "/") ||
			strings.HasPrefix(link, "#") ||
			strings.HasPrefix(link, "javascript:") {
			continue
		}
		if len(title) < 5 || seen[link] {
			continue
		}
		seen[link] = true

		results = append(results, search.Result{Title: title, URL: link})
	}

	return results
}

func cleanHTML(s string) string {
	s = reHTMLTags.ReplaceAllString(s, "")

	replacements := []struct{ from, to string }{
		{"&amp;", "&"},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
		{"&#39;", "'"},
		{"&nbsp;", " "},
	}
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}

	return strings.TrimSpace(s)
}
