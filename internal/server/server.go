package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gyeh/schedboard/internal/metrics"
	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/normalize"
	"github.com/gyeh/schedboard/internal/render"
	"github.com/gyeh/schedboard/internal/schedule"
	"github.com/gyeh/schedboard/internal/source"
)

const shutdownTimeout = 5 * time.Second

// Server renders the schedule on every request. Each page load is one
// render pass over the (usually cached) source.
type Server struct {
	src      source.Source
	opts     schedule.Options
	rec      *metrics.Recorder
	gatherer prometheus.Gatherer
	log      zerolog.Logger

	Terminal render.TerminalOptions
	PDF      render.PDFOptions

	now func() time.Time
}

// New creates a Server. rec and gatherer may be nil to disable metrics.
func New(src source.Source, opts schedule.Options, rec *metrics.Recorder, gatherer prometheus.Gatherer, log zerolog.Logger) *Server {
	return &Server{
		src:      src,
		opts:     opts,
		rec:      rec,
		gatherer: gatherer,
		log:      log,
		now:      time.Now,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleText)
	mux.HandleFunc("GET /api/schedule", s.handleJSON)
	mux.HandleFunc("GET /schedule.pdf", s.handlePDF)
	mux.HandleFunc("POST /api/reload", s.handleReload)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.gatherer != nil {
		mux.Handle("GET /metrics", metrics.Handler(s.gatherer))
	}
	return mux
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("server shutdown")
		}
		cancel()
	}()
	s.log.Info().Str("addr", addr).Msg("serving schedule")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// build runs one render pass and writes an error response on failure.
func (s *Server) build(w http.ResponseWriter, r *http.Request) (*model.Chart, bool) {
	t, err := s.src.Load(r.Context())
	if err != nil {
		s.observeError("fetch")
		s.log.Error().Err(err).Msg("load sheet")
		http.Error(w, fmt.Sprintf("load sheet: %v", err), http.StatusBadGateway)
		return nil, false
	}

	chart, err := schedule.Build(t, s.opts, s.now(), s.log)
	if err != nil {
		status := http.StatusInternalServerError
		outcome := "error"
		if errors.Is(err, schedule.ErrMissingColumn) {
			status = http.StatusUnprocessableEntity
			outcome = "columns"
		}
		s.observeError(outcome)
		s.log.Error().Err(err).Msg("build chart")
		http.Error(w, err.Error(), status)
		return nil, false
	}

	if s.rec != nil {
		s.rec.ObserveRender(chart.Summary)
	}
	return chart, true
}

func (s *Server) observeError(outcome string) {
	if s.rec != nil {
		s.rec.ObserveRenderError(outcome)
	}
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	chart, ok := s.build(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.Terminal(&buf, chart, s.Terminal); err != nil {
		s.renderFailed(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	chart, ok := s.build(w, r)
	if !ok {
		return
	}

	etag, err := chartETag(chart)
	if err != nil {
		s.renderFailed(w, err)
		return
	}
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var buf bytes.Buffer
	if err := render.JSON(&buf, chart); err != nil {
		s.renderFailed(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	chart, ok := s.build(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.PDF(&buf, chart, s.PDF); err != nil {
		s.renderFailed(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="schedule.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

// invalidator is implemented by sources that cache, e.g. source.CachedSource.
type invalidator interface {
	Invalidate()
}

// handleReload drops the cached sheet so the next page load fetches it again.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	c, ok := s.src.(invalidator)
	if !ok {
		http.Error(w, "source is not cached", http.StatusConflict)
		return
	}
	c.Invalidate()
	s.log.Info().Msg("sheet cache invalidated")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) renderFailed(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("render")
	http.Error(w, "render failed", http.StatusInternalServerError)
}

// etagMatches implements If-None-Match weak comparison: the header may list
// several tags, any of them weak, or be "*".
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// chartETag hashes the chart content that changes with the sheet. The run ID
// is left out so identical sheets share a tag.
func chartETag(chart *model.Chart) (string, error) {
	data, err := json.Marshal(struct {
		Tasks       []model.GanttTask
		Annotations []model.Annotation
		Details     model.DetailTable
	}{chart.Tasks, chart.Annotations, chart.Details})
	if err != nil {
		return "", err
	}
	return `"` + normalize.ContentHash(data)[:16] + `"`, nil
}
