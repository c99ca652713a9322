package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/normalize"
)

// Project turns resolved rows into chart records. Rows must all be resolved.
func Project(rows []model.ResolvedRow, now time.Time) *model.Chart {
	chart := &model.Chart{
		Now:         now,
		Tasks:       make([]model.GanttTask, 0, len(rows)),
		Annotations: make([]model.Annotation, 0, len(rows)),
		Rows:        rows,
	}

	seen := make(map[string]bool)
	for i, r := range rows {
		finish := r.End.Format(model.DateLayout)
		chart.Tasks = append(chart.Tasks, model.GanttTask{
			Label:    r.Name,
			Start:    r.Start.Format(model.DateLayout),
			Finish:   finish,
			Category: r.Manager,
		})

		days := DDay(*r.End, now)
		chart.Annotations = append(chart.Annotations, model.Annotation{
			X:    finish,
			Y:    float64(i) + 0.5,
			Text: DDayText(days),
			Days: days,
		})

		if !seen[r.Manager] {
			seen[r.Manager] = true
			chart.Categories = append(chart.Categories, r.Manager)
		}
	}

	colors := normalize.AssignColors(len(chart.Categories))
	chart.Colors = make(map[string]normalize.Color, len(colors))
	for i, c := range chart.Categories {
		chart.Colors[c] = colors[i]
	}
	return chart
}

// DDay returns the whole days from now until end, rounded toward negative
// infinity. Both are compared as wall-clock times.
func DDay(end, now time.Time) int {
	d := end.Sub(wallClock(now))
	return int(math.Floor(float64(d) / float64(24*time.Hour)))
}

// DDayText renders "D-n" for today and later, "D+n" for past deadlines.
func DDayText(days int) string {
	if days >= 0 {
		return fmt.Sprintf("D-%d", days)
	}
	return fmt.Sprintf("D+%d", -days)
}

// wallClock drops the zone so now compares against naive sheet timestamps.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
