package render

import (
	"time"

	"github.com/gyeh/schedboard/internal/model"
)

// timeline maps calendar days onto a horizontal axis. Both ends are whole
// days; to is inclusive.
type timeline struct {
	from  time.Time
	to    time.Time
	today time.Time
}

func newTimeline(chart *model.Chart) timeline {
	today := day(chart.Now)
	tl := timeline{from: today, to: today, today: today}
	for _, r := range chart.Rows {
		if r.Start != nil && day(*r.Start).Before(tl.from) {
			tl.from = day(*r.Start)
		}
		if r.End != nil && day(*r.End).After(tl.to) {
			tl.to = day(*r.End)
		}
	}
	return tl
}

// days is the number of calendar days covered, at least one.
func (tl timeline) days() int {
	return int(tl.to.Sub(tl.from).Hours()/24) + 1
}

// column returns the cell for t on an axis of width cells.
func (tl timeline) column(t time.Time, width int) int {
	n := tl.days()
	if n <= 1 || width <= 1 {
		return 0
	}
	d := int(day(t).Sub(tl.from).Hours() / 24)
	c := d * (width - 1) / (n - 1)
	switch {
	case c < 0:
		return 0
	case c >= width:
		return width - 1
	}
	return c
}

// fraction returns the position of t in [0, 1] along the axis.
func (tl timeline) fraction(t time.Time) float64 {
	n := tl.days()
	if n <= 1 {
		return 0
	}
	return day(t).Sub(tl.from).Hours() / 24 / float64(n-1)
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
