// Package web serves the single-page scan form and the DOCX export
// endpoint. All user-visible failures are short plain sentences; stack
// traces and wrapped errors stay in the logs.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/ledger"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/metrics"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/ratelimit"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/report"
	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/scanner"
)

const (
	scanTimeout    = 90 * time.Second
	historyDisplay = 5
)

type Deps struct {
	Ledger       *ledger.Ledger
	Orchestrator *scanner.Orchestrator
	Summarizer   *scanner.Summarizer
	Limiter      *ratelimit.Limiter
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
}

type Server struct {
	ledger       *ledger.Ledger
	orchestrator *scanner.Orchestrator
	summarizer   *scanner.Summarizer
	limiter      *ratelimit.Limiter
	logger       *zap.Logger
	metrics      *metrics.Metrics
	router       chi.Router
}

func New(deps Deps) *Server {
	s := &Server{
		ledger:       deps.Ledger,
		orchestrator: deps.Orchestrator,
		summarizer:   deps.Summarizer,
		limiter:      deps.Limiter,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/scan", s.handleScan)
	r.Get("/export/{id}", s.handleExport)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type resultView struct {
	ID      string
	Target  string
	Market  string
	Summary string
	Generic bool
	Items   []domain.ResultItem
}

type pageData struct {
	Remaining int
	Target    string
	Error     string
	Result    *resultView
	History   []domain.HistoryRecord
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pageData{})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), scanTimeout)
	defer cancel()

	if !s.limiter.Allow(clientIP(r)) {
		if s.metrics != nil {
			s.metrics.RecordRateLimitHit()
		}
		s.render(w, r, pageData{Error: "Too many requests. Please wait a minute and try again."})
		return
	}

	target, err := domain.NewTarget(r.FormValue("target"))
	if err != nil {
		s.render(w, r, pageData{Error: targetError(err), Target: r.FormValue("target")})
		return
	}

	day := domain.DayKey(time.Now())
	if err := s.ledger.Authorize(ctx, day, r.FormValue("passcode")); err != nil {
		s.render(w, r, pageData{Error: authError(err), Target: target.String()})
		return
	}

	if s.metrics != nil {
		s.metrics.IncScansInFlight()
		defer s.metrics.DecScansInFlight()
	}
	start := time.Now()

	market := s.orchestrator.MarketStatus(ctx, target)

	set, err := s.orchestrator.Scan(ctx, target)
	if err != nil {
		// only context cancellation reaches here
		if s.metrics != nil {
			s.metrics.RecordScan("error", time.Since(start))
		}
		s.logger.Warn("scan aborted", zap.String("target", target.String()), zap.Error(err))
		s.render(w, r, pageData{Error: "The scan took too long and was cancelled. Please try again.", Target: target.String()})
		return
	}

	summary := s.summarizer.Summarize(ctx, set)

	rec := domain.NewHistoryRecord(set, market, summary)
	if err := s.ledger.RecordRun(ctx, day, rec); err != nil {
		// results still render; only persistence is degraded
		s.logger.Warn("record run failed", zap.String("target", target.String()), zap.Error(err))
		rec.ID = ""
	}

	if s.metrics != nil {
		s.metrics.RecordScan("success", time.Since(start))
	}

	s.render(w, r, pageData{
		Target: target.String(),
		Result: &resultView{
			ID:      rec.ID,
			Target:  target.String(),
			Market:  marketLabel(rec.Market),
			Summary: rec.Summary,
			Generic: rec.Generic,
			Items:   set.Items,
		},
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.ledger.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrHistoryNotFound) {
			http.Error(w, "Report not found.", http.StatusNotFound)
			return
		}
		s.logger.Error("export lookup failed", zap.String("id", id), zap.Error(err))
		http.Error(w, "Could not load the report. Please try again.", http.StatusInternalServerError)
		return
	}

	tmp, err := os.MkdirTemp("", "scanner-report-*")
	if err != nil {
		s.logger.Error("export tempdir failed", zap.Error(err))
		http.Error(w, "Could not generate the report. Please try again.", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmp)

	path := filepath.Join(tmp, "report.docx")
	if err := report.Generate(rec, path); err != nil {
		s.logger.Error("export generation failed", zap.String("id", id), zap.Error(err))
		http.Error(w, "Could not generate the report. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(rec)+`"`)
	http.ServeFile(w, r, path)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, data pageData) {
	day := domain.DayKey(time.Now())
	data.Remaining = s.ledger.Remaining(r.Context(), day)

	history, err := s.ledger.Recent(r.Context(), historyDisplay)
	if err != nil {
		// the page still renders without the history block
		s.logger.Warn("history load failed", zap.Error(err))
	} else {
		data.History = history
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("template render failed", zap.Error(err))
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func targetError(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyTarget):
		return "Please enter a company name."
	case errors.Is(err, domain.ErrTargetTooLong):
		return "The company name is too long."
	default:
		return "Invalid company name."
	}
}

func authError(err error) string {
	switch {
	case errors.Is(err, domain.ErrBadPasscode):
		return "Incorrect passcode."
	case errors.Is(err, domain.ErrQuotaExhausted):
		return "The shared daily quota has been used up. Please try again tomorrow."
	default:
		return "Authorization failed. Please try again."
	}
}

func marketLabel(m domain.MarketStatus) string {
	switch m {
	case domain.MarketListed:
		return "Publicly listed"
	case domain.MarketUnlisted:
		return "Private or unlisted"
	default:
		return "Unknown"
	}
}
