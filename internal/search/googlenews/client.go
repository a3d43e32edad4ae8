package googlenews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search"
)

// Client pulls the Google News RSS search feed. Keyless, news mode only;
// web-mode requests are answered with ErrInvalidRequest so the caller
// falls through to its web provider.
type Client struct {
	baseURL string
	hl      string
	gl      string
	ceid    string
	client  *http.Client
	logger  *zap.Logger
	parser  *gofeed.Parser
}

type Config struct {
	BaseURL string
	HL      string // e.g. "ja"
	GL      string // e.g. "JP"
	CEID    string // e.g. "JP:ja"
	Timeout time.Duration
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://news.google.com/rss/search"
	}
	if cfg.HL == "" {
		cfg.HL = "ja"
	}
	if cfg.GL == "" {
		cfg.GL = "JP"
	}
	if cfg.CEID == "" {
		cfg.CEID = "JP:ja"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		hl:      cfg.HL,
		gl:      cfg.GL,
		ceid:    cfg.CEID,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		parser:  gofeed.NewParser(),
	}
}

func (c *Client) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	if req.Mode == search.ModeWeb {
		return nil, search.ErrInvalidRequest
	}
	if req.MaxResults == 0 {
		req.MaxResults = 10
	}

	u := fmt.Sprintf("%s?q=%s&hl=%s&gl=%s&ceid=%s",
		c.baseURL,
		url.QueryEscape(req.Query),
		url.QueryEscape(c.hl),
		url.QueryEscape(c.gl),
		url.QueryEscape(c.ceid),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 corporate-scanner/0.1")
	httpReq.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.1")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, search.ErrRateLimit
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", search.ErrSearchFailed, resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	results := make([]search.Result, 0, req.MaxResults)
	for _, it := range feed.Items {
		if len(results) >= req.MaxResults {
			break
		}

		link := strings.TrimSpace(it.Link)
		title := strings.TrimSpace(it.Title)
		if link == "" || title == "" {
			continue
		}

		date := ""
		if it.PublishedParsed != nil {
			date = it.PublishedParsed.Format("2006-01-02")
		}

		source := "Google News"
		// Google News appends " - Publisher" to the title; lift it out.
		if idx := strings.LastIndex(title, " - "); idx > 0 {
			source = strings.TrimSpace(title[idx+3:])
			title = strings.TrimSpace(title[:idx])
		}

		results = append(results, search.Result{
			Title:   title,
			URL:     link,
			Snippet: cleanDescription(it.Description),
			Source:  source,
			Date:    date,
		})
	}

	if len(results) == 0 {
		return nil, search.ErrEmptyResults
	}

	return &search.Response{Query: req.Query, Results: results}, nil
}

func cleanDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	// descriptions arrive as a small HTML anchor list; strip the markup
	for {
		open := strings.Index(desc, "<")
		if open == -1 {
			break
		}
		end := strings.Index(desc[open:], ">")
		if end == -1 {
			desc = desc[:open]
			break
		}
		desc = desc[:open] + desc[open+end+1:]
	}
	return strings.TrimSpace(desc)
}
