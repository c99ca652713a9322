package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/schedboard/internal/exitcode"
	"github.com/gyeh/schedboard/internal/logging"
	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/render"
	"github.com/gyeh/schedboard/internal/schedule"
)

var (
	renderPDFPath   string
	renderJSON      bool
	renderNoDetails bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the schedule as a terminal chart, PDF or JSON",
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderPDFPath, "pdf", "", "Write a PDF chart to this path instead of the terminal")
	f.BoolVar(&renderJSON, "json", false, "Print the task list and annotations as JSON")
	f.BoolVar(&renderNoDetails, "no-details", false, "Omit the detail table below the chart")
	f.IntVar(&cfg.ChartWidth, "width", cfg.ChartWidth, "Bar area width in terminal cells")
	f.StringVar(&cfg.PDFFontPath, "font", "", "TTF font with Hangul glyphs for PDF output")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateWithSource(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.ConfigError)
	}

	chart := loadChart(cmd.Context(), log)

	var err error
	switch {
	case renderPDFPath != "":
		err = writePDF(renderPDFPath, chart)
	case renderJSON:
		err = render.JSON(os.Stdout, chart)
	default:
		err = render.Terminal(os.Stdout, chart, render.TerminalOptions{
			Width:     cfg.ChartWidth,
			NoDetails: renderNoDetails,
		})
	}
	if err != nil {
		log.Error().Err(err).Msg("render failed")
		os.Exit(exitcode.RenderError)
	}
	if renderPDFPath != "" {
		log.Info().Str("path", renderPDFPath).Int("tasks", len(chart.Tasks)).Msg("pdf written")
	}
	return nil
}

// loadChart loads the sheet and runs one render pass, exiting on failure.
func loadChart(ctx context.Context, log zerolog.Logger) *model.Chart {
	src, where := buildSource(log, nil)
	t, err := src.Load(ctx)
	if err != nil {
		log.Error().Err(err).Str("source", where).Msg("failed to load sheet")
		os.Exit(exitcode.FetchError)
	}

	chart, err := schedule.Build(t, schedule.OptionsFromConfig(&cfg), time.Now(), log)
	if err != nil {
		var pe *schedule.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("render pass failed")
		} else {
			log.Error().Err(err).Msg("render pass failed")
		}
		if errors.Is(err, schedule.ErrMissingColumn) {
			os.Exit(exitcode.ColumnError)
		}
		os.Exit(exitcode.RenderError)
	}
	return chart
}

func writePDF(path string, chart *model.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := render.PDF(f, chart, render.PDFOptions{FontPath: cfg.PDFFontPath}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
