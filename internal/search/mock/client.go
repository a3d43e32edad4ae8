package mock

import (
	"context"
	"sync"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search"
)

// Call is one scripted reply: either Results or Err is used.
type Call struct {
	Results []search.Result
	Err     error
}

// Client replays a scripted sequence of replies and records every request.
// When the script runs out, the last entry repeats; an empty script means
// every call fails with ErrEmptyResults.
type Client struct {
	Script []Call

	CallCount   int
	LastRequest search.Request
	AllRequests []search.Request

	mu sync.Mutex
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResults(results []search.Result) *Client {
	c.Script = append(c.Script, Call{Results: results})
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Script = append(c.Script, Call{Err: err})
	return c
}

func (c *Client) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastRequest = req
	c.AllRequests = append(c.AllRequests, req)

	var call Call
	switch {
	case len(c.Script) == 0:
		call = Call{Err: search.ErrEmptyResults}
	case c.CallCount <= len(c.Script):
		call = c.Script[c.CallCount-1]
	default:
		call = c.Script[len(c.Script)-1]
	}
	c.mu.Unlock()

	if call.Err != nil {
		return nil, call.Err
	}
	if len(call.Results) == 0 {
		return nil, search.ErrEmptyResults
	}

	return &search.Response{
		Query:   req.Query,
		Results: call.Results,
	}, nil
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastRequest = search.Request{}
	c.AllRequests = nil
}

var _ search.Client = (*Client)(nil)
