package model

import "time"

// ScheduleRow is one business entry as read from the sheet.
type ScheduleRow struct {
	// Index is the zero-based row position in the source table.
	Index      int
	Name       string
	RawEndDate string
	// Manager defaults to UnknownManager when the cell is empty.
	Manager string
	// Extra holds passthrough display cells keyed by column name, verbatim.
	Extra map[string]*string
}

// ResolvedRow is a ScheduleRow with its derived timeline. Rows where either
// date is nil never reach the chart.
type ResolvedRow struct {
	ScheduleRow
	Start *time.Time
	End   *time.Time
}

// Resolved reports whether both dates are known.
func (r *ResolvedRow) Resolved() bool {
	return r.Start != nil && r.End != nil
}
