package main

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/schedboard/internal/snapshot"
	"github.com/gyeh/schedboard/internal/source"
)

// buildSource picks the table source: snapshot, then CSV file, then the
// sheet URL. onFetch observes HTTP downloads and may be nil.
func buildSource(log zerolog.Logger, onFetch func(time.Duration, error)) (source.Source, string) {
	switch {
	case cfg.SnapshotPath != "":
		return &snapshot.Source{Path: cfg.SnapshotPath, Log: log}, cfg.SnapshotPath
	case cfg.CSVPath != "":
		return &source.FileSource{Path: cfg.CSVPath, HeaderKeyword: cfg.HeaderKeyword, Log: log}, cfg.CSVPath
	default:
		src := source.NewHTTPSource(cfg.SheetURL, cfg.HeaderKeyword, cfg.FetchTimeout, log)
		src.OnFetch = onFetch
		return src, cfg.SheetURL
	}
}
