package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/normalize"
)

// Columns holds the located column positions; Manager is -1 when absent.
type Columns struct {
	Name    int
	EndDate int
	Manager int

	NameHeader    string
	EndDateHeader string
	ManagerHeader string
}

// ResolveColumns locates the name, end-date and manager columns by keyword.
// A role marked Required that cannot be found fails the pass; by default a
// sheet without a manager column renders every row under model.UnknownManager.
func ResolveColumns(t *model.Table, opts Options) (*Columns, error) {
	c := &Columns{}

	var missing []string
	locate := func(role model.ColumnRole, keywords []string, pos *int, header *string) {
		if *pos = normalize.ColumnIndex(t.Columns, keywords...); *pos >= 0 {
			*header = t.Columns[*pos]
		} else if role.Required {
			missing = append(missing, fmt.Sprintf("%s %v", role.Name, keywords))
		}
	}
	locate(model.NameRole, opts.NameKeywords, &c.Name, &c.NameHeader)
	locate(model.EndDateRole, opts.EndDateKeywords, &c.EndDate, &c.EndDateHeader)
	locate(model.ManagerRole, opts.ManagerKeywords, &c.Manager, &c.ManagerHeader)

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return c, nil
}

// ReadRows extracts ScheduleRows, skipping rows whose name or end-date cell
// is blank. It returns the rows and the number skipped.
func ReadRows(t *model.Table, cols *Columns, display []string) ([]model.ScheduleRow, int) {
	rows := make([]model.ScheduleRow, 0, len(t.Rows))
	missing := 0
	for i := range t.Rows {
		name := t.Cell(i, cols.Name)
		end := t.Cell(i, cols.EndDate)
		if isBlank(name) || isBlank(end) {
			missing++
			continue
		}

		row := model.ScheduleRow{
			Index:      i,
			Name:       *name,
			RawEndDate: *end,
			Manager:    normalize.NormalizeLabel(t.Cell(i, cols.Manager), model.UnknownManager),
		}
		for _, col := range display {
			if pos := t.ColumnPosition(col); pos >= 0 {
				if row.Extra == nil {
					row.Extra = make(map[string]*string, len(display))
				}
				row.Extra[col] = t.Cell(i, pos)
			}
		}
		rows = append(rows, row)
	}
	return rows, missing
}

// NormalizeRow resolves the end date and derives the start date. Either date
// stays nil when the raw cell does not resolve.
func NormalizeRow(row model.ScheduleRow, r *normalize.Resolver, lookahead time.Duration) model.ResolvedRow {
	out := model.ResolvedRow{ScheduleRow: row}
	end := r.Resolve(row.RawEndDate)
	if end == nil {
		return out
	}
	start := end.Add(-lookahead)
	out.Start = &start
	out.End = end
	return out
}

// NormalizeRows maps NormalizeRow over rows. Rows are independent.
func NormalizeRows(rows []model.ScheduleRow, r *normalize.Resolver, lookahead time.Duration) []model.ResolvedRow {
	out := make([]model.ResolvedRow, len(rows))
	for i, row := range rows {
		out[i] = NormalizeRow(row, r, lookahead)
	}
	return out
}

func isBlank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}
