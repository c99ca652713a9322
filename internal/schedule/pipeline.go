package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/schedboard/internal/config"
	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/normalize"
)

// ErrMissingColumn is reported when a required column cannot be located.
var ErrMissingColumn = errors.New("required column not found")

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Options controls column discovery and date derivation.
type Options struct {
	NameKeywords    []string
	EndDateKeywords []string
	ManagerKeywords []string
	DisplayColumns  []string
	Lookahead       time.Duration
	Resolver        *normalize.Resolver
}

// OptionsFromConfig builds Options from runtime configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		NameKeywords:    cfg.NameKeywords,
		EndDateKeywords: cfg.EndDateKeywords,
		ManagerKeywords: cfg.ManagerKeywords,
		DisplayColumns:  cfg.DisplayColumns,
		Lookahead:       cfg.Lookahead(),
		Resolver:        normalize.NewResolver(cfg.Sentinels...),
	}
}

// DefaultOptions uses the built-in keywords and a 14-day lookahead.
func DefaultOptions() Options {
	cfg := config.Defaults()
	return OptionsFromConfig(&cfg)
}

// Build runs one render pass: columns → rows → project. The table is only
// read; every derived value lives in the returned Chart.
func Build(t *model.Table, opts Options, now time.Time, log zerolog.Logger) (*model.Chart, error) {
	totalStart := time.Now()
	runID := uuid.New().String()
	log = log.With().Str("run_id", runID).Logger()

	if opts.Resolver == nil {
		opts.Resolver = normalize.NewResolver()
	}
	if opts.Lookahead <= 0 {
		opts.Lookahead = config.DefaultLookaheadDays * 24 * time.Hour
	}

	// Phase 1: columns
	cols, err := ResolveColumns(t, opts)
	if err != nil {
		return nil, &PipelineError{Phase: "columns", Err: err}
	}
	log.Debug().
		Str("name_column", cols.NameHeader).
		Str("end_date_column", cols.EndDateHeader).
		Str("manager_column", cols.ManagerHeader).
		Msg("columns resolved")

	// Phase 2: rows
	resolveStart := time.Now()
	rows, missing := ReadRows(t, cols, opts.DisplayColumns)
	resolved := make([]model.ResolvedRow, 0, len(rows))
	unresolved := 0
	for _, r := range NormalizeRows(rows, opts.Resolver, opts.Lookahead) {
		if !r.Resolved() {
			unresolved++
			log.Debug().Int("row", r.Index).Str("raw", r.RawEndDate).Msg("end date unresolved, row dropped")
			continue
		}
		resolved = append(resolved, r)
	}
	resolveDur := time.Since(resolveStart)

	// Phase 3: project
	chart := Project(resolved, now)
	chart.RunID = runID
	chart.Details = Details(t, cols, opts.DisplayColumns, resolved)
	chart.Summary = model.RenderSummary{
		RunID:           runID,
		NameColumn:      cols.NameHeader,
		EndDateColumn:   cols.EndDateHeader,
		ManagerColumn:   cols.ManagerHeader,
		RowsRead:        len(t.Rows),
		RowsMissing:     missing,
		RowsUnresolved:  unresolved,
		RowsRendered:    len(chart.Tasks),
		Categories:      len(chart.Categories),
		DurationResolve: resolveDur,
		DurationTotal:   time.Since(totalStart),
	}

	log.Info().
		Int("rows_read", chart.Summary.RowsRead).
		Int("rows_missing", missing).
		Int("rows_unresolved", unresolved).
		Int("rows_rendered", chart.Summary.RowsRendered).
		Int("categories", chart.Summary.Categories).
		Str("total_duration", chart.Summary.DurationTotal.String()).
		Msg("render pass complete")

	return chart, nil
}
