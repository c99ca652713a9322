package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gyeh/schedboard/internal/exitcode"
	"github.com/gyeh/schedboard/internal/logging"
	"github.com/gyeh/schedboard/internal/normalize"
	"github.com/gyeh/schedboard/internal/snapshot"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Archive the current sheet as a Parquet snapshot",
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "", "Output Parquet path (required)")
	_ = snapshotCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateWithSource(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.ConfigError)
	}
	if cfg.SnapshotPath != "" && cfg.SnapshotPath == snapshotOut {
		log.Error().Msg("--out must differ from --snapshot")
		os.Exit(exitcode.UsageError)
	}

	src, where := buildSource(log, nil)
	t, err := src.Load(cmd.Context())
	if err != nil {
		log.Error().Err(err).Str("source", where).Msg("failed to load sheet")
		os.Exit(exitcode.FetchError)
	}

	cells, err := snapshot.Write(snapshotOut, t)
	if err != nil {
		log.Error().Err(err).Msg("failed to write snapshot")
		os.Exit(exitcode.RenderError)
	}

	sha, err := normalize.FileHash(snapshotOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash snapshot")
		os.Exit(exitcode.RenderError)
	}
	stat, err := os.Stat(snapshotOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat snapshot")
		os.Exit(exitcode.RenderError)
	}

	log.Info().
		Str("path", snapshotOut).
		Str("sha256", sha).
		Int("cells", cells).
		Msg("snapshot written")
	fmt.Printf("Snapshot: %s (%d rows, %d cells, %s)\n",
		snapshotOut, len(t.Rows), cells, humanize.Bytes(uint64(stat.Size())))
	return nil
}
