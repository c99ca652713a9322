package schedule

import (
	"strings"
	"time"

	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/normalize"
)

// StartHeader labels the derived start-date column.
const StartHeader = "시작일"

// Details builds the table shown under the chart: name, the display columns
// present in the sheet, manager, start and end.
func Details(t *model.Table, cols *Columns, display []string, rows []model.ResolvedRow) model.DetailTable {
	present := make([]string, 0, len(display))
	for _, col := range display {
		if t.ColumnPosition(col) >= 0 {
			present = append(present, col)
		}
	}

	managerHeader := cols.ManagerHeader
	if managerHeader == "" {
		managerHeader = model.ManagerRole.Name
	}

	headers := make([]string, 0, len(present)+4)
	headers = append(headers, cols.NameHeader)
	headers = append(headers, present...)
	headers = append(headers, managerHeader, StartHeader, cols.EndDateHeader)

	out := model.DetailTable{Headers: headers, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		line := make([]string, 0, len(headers))
		line = append(line, r.Name)
		for _, col := range present {
			v := r.Extra[col]
			if strings.Contains(col, model.AmountKeyword) {
				line = append(line, normalize.FormatAmount(v))
			} else if v != nil {
				line = append(line, *v)
			} else {
				line = append(line, "")
			}
		}
		line = append(line, r.Manager, formatStamp(r.Start), formatStamp(r.End))
		out.Rows = append(out.Rows, line)
	}
	return out
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(model.DateLayout)
	}
	return t.Format("2006-01-02 15:04")
}
