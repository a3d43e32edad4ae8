package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search"
)

func newTestClient(url string) *Client {
	return New(Config{APIKey: "test-key", BaseURL: url}, zap.NewNop())
}

func TestSearch_Success(t *testing.T) {
	var captured tavilyRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(tavilyResponse{
			Query: captured.Query,
			Results: []tavilyResult{
				{Title: "funding news", URL: "https://www.example.com/news/1", Content: "raised", PublishedDate: "2026-08-30"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Search(context.Background(), search.Request{
		Query:      "acme",
		Mode:       search.ModeNews,
		MaxResults: 5,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if captured.Topic != "news" {
		t.Errorf("topic = %q, want news", captured.Topic)
	}
	if captured.APIKey != "test-key" {
		t.Errorf("api key not forwarded")
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	if resp.Results[0].Source != "example.com" {
		t.Errorf("source = %q, want host without www", resp.Results[0].Source)
	}
	if resp.Results[0].Date != "2026-08-30" {
		t.Errorf("date = %q", resp.Results[0].Date)
	}
}

func TestSearch_WebModeUsesGeneralTopic(t *testing.T) {
	var captured tavilyRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(tavilyResponse{
			Results: []tavilyResult{{Title: "page", URL: "https://example.com/p"}},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Search(context.Background(), search.Request{Query: "acme", Mode: search.ModeWeb}); err != nil {
		t.Fatalf("search: %v", err)
	}

	if captured.Topic != "general" {
		t.Errorf("topic = %q, want general", captured.Topic)
	}
}

func TestSearch_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, search.ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, search.ErrRateLimit},
		{"bad request", http.StatusBadRequest, search.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.Search(context.Background(), search.Request{Query: "acme"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearch_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tavilyResponse{Results: nil})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), search.Request{Query: "acme"})
	if !errors.Is(err, search.ErrEmptyResults) {
		t.Errorf("err = %v, want ErrEmptyResults", err)
	}
}

func TestSearch_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(tavilyResponse{
			Results: []tavilyResult{{Title: "late", URL: "https://example.com/1"}},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Search(context.Background(), search.Request{Query: "acme"})
	if err != nil {
		t.Fatalf("search after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if len(resp.Results) != 1 {
		t.Errorf("results = %d", len(resp.Results))
	}
}

func TestExtractHost(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.example.com/path", "example.com"},
		{"http://example.com", "example.com"},
		{"https://news.example.co.jp/a/b", "news.example.co.jp"},
	}

	for _, tt := range tests {
		if got := extractHost(tt.url); got != tt.want {
			t.Errorf("extractHost(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
