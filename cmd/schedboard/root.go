package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/schedboard/internal/config"
)

var cfg = config.Defaults()

var rootCmd = &cobra.Command{
	Use:   "schedboard",
	Short: "Project deadline Gantt board for a shared schedule sheet",
	Long: "Reads the team's project schedule sheet, normalizes its free-form end dates " +
		"and renders a Gantt chart with D-day countdowns to the terminal, PDF, JSON or HTTP.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ConfigPath, "config", "", "YAML config file (or set "+config.EnvConfig+")")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text, json or auto")
	pf.StringVar(&cfg.SheetURL, "sheet-url", "", "CSV export URL of the schedule sheet (or set "+config.EnvSheetURL+")")
	pf.StringVar(&cfg.CSVPath, "csv", "", "Read the sheet from a local CSV export")
	pf.StringVar(&cfg.SnapshotPath, "snapshot", "", "Read the sheet from a Parquet snapshot")
	pf.StringVar(&cfg.HeaderKeyword, "header-keyword", cfg.HeaderKeyword, "Cell text that marks the header row")
	pf.IntVar(&cfg.LookaheadDays, "lookahead-days", cfg.LookaheadDays, "Bar length in days before each deadline")
	pf.StringSliceVar(&cfg.Sentinels, "sentinel", nil, "Extra status label that never resolves to a date (repeatable)")
}

// loadConfig applies .env, the environment and the YAML file. Flags set on
// the command line win over the file.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	if cfg.SheetURL == "" {
		cfg.SheetURL = os.Getenv(config.EnvSheetURL)
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = os.Getenv(config.EnvConfig)
	}
	if cfg.ConfigPath == "" {
		return cfg.Validate()
	}

	flags := cmd.Flags()
	header, lookahead := cfg.HeaderKeyword, cfg.LookaheadDays
	width, addr := cfg.ChartWidth, cfg.Addr
	if err := cfg.LoadFromFile(cfg.ConfigPath); err != nil {
		return err
	}
	if flags.Changed("header-keyword") {
		cfg.HeaderKeyword = header
	}
	if flags.Changed("lookahead-days") {
		cfg.LookaheadDays = lookahead
	}
	if flags.Lookup("width") != nil && flags.Changed("width") {
		cfg.ChartWidth = width
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Addr = addr
	}
	return cfg.Validate()
}
