package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gyeh/schedboard/internal/exitcode"
	"github.com/gyeh/schedboard/internal/logging"
	"github.com/gyeh/schedboard/internal/metrics"
	"github.com/gyeh/schedboard/internal/render"
	"github.com/gyeh/schedboard/internal/schedule"
	"github.com/gyeh/schedboard/internal/server"
	"github.com/gyeh/schedboard/internal/source"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chart over HTTP, re-rendered on every request",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	f.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "How long a fetched sheet is reused")
	f.IntVar(&cfg.ChartWidth, "width", cfg.ChartWidth, "Bar area width of the text chart")
	f.StringVar(&cfg.PDFFontPath, "font", "", "TTF font with Hangul glyphs for PDF output")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateWithSource(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.ConfigError)
	}

	rec, err := metrics.NewRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		log.Error().Err(err).Msg("failed to register metrics")
		os.Exit(exitcode.ServeError)
	}

	inner, where := buildSource(log, rec.ObserveFetch)
	src := source.NewCachedSource(inner, cfg.CacheTTL, log)
	log.Info().Str("source", where).Dur("cache_ttl", cfg.CacheTTL).Msg("sheet source ready")

	srv := server.New(src, schedule.OptionsFromConfig(&cfg), rec, prometheus.DefaultGatherer, log)
	srv.Terminal = render.TerminalOptions{Width: cfg.ChartWidth}
	srv.PDF = render.PDFOptions{FontPath: cfg.PDFFontPath}

	if err := srv.ListenAndServe(cmd.Context(), cfg.Addr); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(exitcode.ServeError)
	}
	log.Info().Msg("server stopped")
	return nil
}
