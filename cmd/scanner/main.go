package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/cache/memory"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/config"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/ledger"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/llm"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/llm/openrouter"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/metrics"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/ratelimit"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/repository/postgres"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/scanner"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search/duckduckgo"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search/googlenews"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/search/tavily"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	db, err := postgres.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	ldg := ledger.New(ledger.Deps{
		Usage:   postgres.NewUsageRepo(db),
		History: postgres.NewHistoryRepo(db),
		Logger:  logger,
		Metrics: m,
		Config: ledger.Config{
			DailyQuota: cfg.Quota.DailyRuns,
			Passcode:   cfg.Quota.Passcode,
		},
	})

	news, webSearch := buildSearchClients(cfg, logger)

	c := memory.NewWithContext(ctx)

	orch := scanner.New(scanner.Deps{
		News:    news,
		Web:     webSearch,
		Cache:   c,
		Logger:  logger,
		Metrics: m,
		Config: scanner.Config{
			MaxResults:    cfg.Scan.MaxResults,
			StageDelayMin: cfg.Scan.StageDelayMin,
			StageDelayMax: cfg.Scan.StageDelayMax,
			CacheTTL:      cfg.Cache.TTL,
		},
	})

	summarizer := scanner.NewSummarizer(buildLLMClient(cfg, logger), logger, m)

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
	})

	srv := web.New(web.Deps{
		Ledger:       ldg,
		Orchestrator: orch,
		Summarizer:   summarizer,
		Limiter:      limiter,
		Logger:       logger,
		Metrics:      m,
	})

	appServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := &http.Server{
		Addr:              cfg.HTTP.MetricsAddr,
		Handler:           metricsMux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server starting", zap.String("addr", cfg.HTTP.Addr))
		if err := appServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("metrics server starting", zap.String("addr", cfg.HTTP.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		appServer.Shutdown(shutdownCtx)
		metricsServer.Shutdown(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

// buildSearchClients picks providers from configuration. With a Tavily
// key both modes go through Tavily; without one the keyless fallbacks
// take over, Google News RSS for news and DuckDuckGo for web.
func buildSearchClients(cfg *config.Config, logger *zap.Logger) (news, web search.Client) {
	if cfg.Tavily.APIKey != "" {
		client := tavily.New(tavily.Config{
			APIKey:  cfg.Tavily.APIKey,
			BaseURL: cfg.Tavily.BaseURL,
			Timeout: cfg.Tavily.Timeout,
		}, logger)
		return client, client
	}

	logger.Info("no tavily key configured, using keyless providers")
	return googlenews.New(googlenews.Config{}, logger), duckduckgo.New(duckduckgo.Config{}, logger)
}

func buildLLMClient(cfg *config.Config, logger *zap.Logger) llm.Client {
	if cfg.LLM.OpenRouter.APIKey == "" {
		logger.Info("no openrouter key configured, summaries disabled")
		return nil
	}

	return openrouter.New(openrouter.Config{
		APIKey:  cfg.LLM.OpenRouter.APIKey,
		Model:   cfg.LLM.OpenRouter.Model,
		BaseURL: cfg.LLM.OpenRouter.BaseURL,
	}, logger)
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
