package search

import (
	"context"
	"errors"
)

var (
	ErrUnauthorized   = errors.New("invalid API key")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrInvalidRequest = errors.New("invalid request parameters")
	ErrSearchFailed   = errors.New("search request failed")
	ErrEmptyResults   = errors.New("no results found")
)

// Mode selects between a news-focused and a general web search.
type Mode string

const (
	ModeNews Mode = "news"
	ModeWeb  Mode = "web"
)

type Client interface {
	Search(ctx context.Context, req Request) (*Response, error)
}

type Request struct {
	Query      string
	Mode       Mode
	MaxResults int
}

type Response struct {
	Query   string
	Results []Result
}

// Result is a raw provider hit. Source and Date are best effort: many
// providers never supply them.
type Result struct {
	Title   string
	URL     string
	Snippet string
	Source  string
	Date    string
}
