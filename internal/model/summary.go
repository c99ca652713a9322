package model

import "time"

// RenderSummary captures counts from a single render pass.
type RenderSummary struct {
	RunID           string
	NameColumn      string
	EndDateColumn   string
	ManagerColumn   string
	RowsRead        int
	RowsMissing     int // blank name or blank end date
	RowsUnresolved  int // end date present but not a concrete date
	RowsRendered    int
	Categories      int
	DurationResolve time.Duration
	DurationTotal   time.Duration
}
