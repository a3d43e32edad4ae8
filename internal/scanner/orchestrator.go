package scanner

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/cache"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/metrics"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search"
)

// Stage names, in escalation order. Each stage issues at most one provider
// call and runs only when the previous stage left the set below its
// threshold, so a full scan is bounded by four calls.
const (
	stagePrecision  = "precision"
	stageWiden      = "widen"
	stageWebFall    = "web_fallback"
	stageLastResort = "last_resort"
)

type Config struct {
	MaxResults        int // total cap on the result set
	StageOneResults   int // asked from the provider at stage 1
	WidenThreshold    int // below this after stage 1, stage 2 fires
	FallbackThreshold int // below this after stage 2, stage 3 fires
	StageDelayMin     time.Duration
	StageDelayMax     time.Duration
	CacheTTL          time.Duration
}

// Deps wires the orchestrator. News must support news-mode queries; Web is
// the alternate provider used by the stage-3 fallback.
type Deps struct {
	News    search.Client
	Web     search.Client
	Cache   cache.Cache
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Config  Config
}

type Orchestrator struct {
	news    search.Client
	web     search.Client
	cache   cache.Cache
	logger  *zap.Logger
	metrics *metrics.Metrics
	config  Config
}

func New(deps Deps) *Orchestrator {
	if deps.Config.MaxResults == 0 {
		deps.Config.MaxResults = 10
	}
	if deps.Config.StageOneResults == 0 {
		deps.Config.StageOneResults = 10
	}
	if deps.Config.WidenThreshold == 0 {
		deps.Config.WidenThreshold = 3
	}
	if deps.Config.FallbackThreshold == 0 {
		deps.Config.FallbackThreshold = 2
	}
	if deps.Config.CacheTTL == 0 {
		deps.Config.CacheTTL = time.Hour
	}

	return &Orchestrator{
		news:    deps.News,
		web:     deps.Web,
		cache:   deps.Cache,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		config:  deps.Config,
	}
}

// Scan runs the staged widening search for one target. Provider failures
// downgrade to empty stages; an empty final set is a normal outcome. The
// only error returned is context cancellation.
func (o *Orchestrator) Scan(ctx context.Context, target domain.Target) (*domain.ResultSet, error) {
	set := domain.NewResultSet(target)

	// stage 1: target plus the script-family qualifier, news mode
	o.runStage(ctx, set, o.news, stagePrecision, search.Request{
		Query:      quote(target.String()) + " " + target.Qualifier(),
		Mode:       search.ModeNews,
		MaxResults: o.config.StageOneResults,
	})

	// stage 2: bare target, same provider, when stage 1 came up short
	if set.Len() < o.config.WidenThreshold {
		if err := o.pause(ctx); err != nil {
			return set, err
		}
		o.runStage(ctx, set, o.news, stageWiden, search.Request{
			Query:      quote(target.String()),
			Mode:       search.ModeNews,
			MaxResults: 5,
		})
	}

	// stage 3: general web search on the alternate provider
	if set.Len() < o.config.FallbackThreshold {
		if err := o.pause(ctx); err != nil {
			return set, err
		}
		o.runStage(ctx, set, o.web, stageWebFall, search.Request{
			Query:      target.String() + " " + target.Qualifier(),
			Mode:       search.ModeWeb,
			MaxResults: 5,
		})
	}

	// stage 4: qualifier-only query, accepting generic industry results
	if set.Empty() && !target.IsASCII() {
		if err := o.pause(ctx); err != nil {
			return set, err
		}
		added := o.runStage(ctx, set, o.news, stageLastResort, search.Request{
			Query:      target.Qualifier(),
			Mode:       search.ModeNews,
			MaxResults: 5,
		})
		if added > 0 {
			set.Generic = true
		}
	}

	o.logger.Info("scan finished",
		zap.String("target", target.String()),
		zap.Int("results", set.Len()),
		zap.Bool("generic", set.Generic),
	)

	return set, nil
}

func (o *Orchestrator) runStage(ctx context.Context, set *domain.ResultSet, client search.Client, stage string, req search.Request) int {
	results, err := o.searchCached(ctx, client, stage, req)
	if err != nil {
		// zero results for this stage; later stages still run
		o.logger.Warn("search stage failed",
			zap.String("stage", stage),
			zap.String("query", req.Query),
			zap.Error(err),
		)
		return 0
	}

	return set.Merge(toItems(results), o.config.MaxResults)
}

func (o *Orchestrator) searchCached(ctx context.Context, client search.Client, stage string, req search.Request) ([]search.Result, error) {
	key := "search:" + string(req.Mode) + ":" + req.Query

	if o.cache != nil {
		if cached, ok := o.cache.Get(key); ok {
			if results, ok := cached.([]search.Result); ok {
				if o.metrics != nil {
					o.metrics.RecordCacheHit()
				}
				return results, nil
			}
		}
		if o.metrics != nil {
			o.metrics.RecordCacheMiss()
		}
	}

	start := time.Now()
	resp, err := client.Search(ctx, req)
	if err != nil {
		if o.metrics != nil {
			o.metrics.RecordSearchRequest(stage, "error", time.Since(start))
		}
		return nil, err
	}
	if o.metrics != nil {
		o.metrics.RecordSearchRequest(stage, "success", time.Since(start))
	}

	if o.cache != nil {
		o.cache.Set(key, resp.Results, o.config.CacheTTL)
	}

	return resp.Results, nil
}

// pause sleeps a randomized interval between stages. Courtesy toward
// rate-limited free-tier providers, not a correctness requirement.
func (o *Orchestrator) pause(ctx context.Context) error {
	if o.config.StageDelayMax <= 0 {
		return ctx.Err()
	}

	d := o.config.StageDelayMin
	if jitter := o.config.StageDelayMax - o.config.StageDelayMin; jitter > 0 {
		d += time.Duration(rand.Int63n(int64(jitter)))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func toItems(results []search.Result) []domain.ResultItem {
	items := make([]domain.ResultItem, 0, len(results))
	for _, r := range results {
		source := r.Source
		if source == "" {
			// web fallback hits often carry no provider metadata
			source = "web"
		}
		date := r.Date
		if date == "" {
			date = time.Now().UTC().Format("2006-01-02")
		}
		items = append(items, domain.ResultItem{
			Title:   r.Title,
			Snippet: r.Snippet,
			URL:     r.URL,
			Source:  source,
			Date:    date,
		})
	}
	return items
}

func quote(s string) string {
	return `"` + s + `"`
}
