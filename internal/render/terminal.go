package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gyeh/schedboard/internal/model"
)

const (
	barBlock    = "█"
	trackBlock  = "·"
	todayMarker = "│"
)

// TerminalOptions controls the text chart layout.
type TerminalOptions struct {
	Width      int // bar area in cells
	LabelWidth int
	NoDetails  bool
}

// Terminal writes a Gantt chart, a legend and the detail table to w.
func Terminal(w io.Writer, chart *model.Chart, opts TerminalOptions) error {
	if opts.Width < 10 {
		opts.Width = 60
	}
	if opts.LabelWidth <= 0 {
		opts.LabelWidth = 24
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render("프로젝트 일정"))
	b.WriteString("\n")

	if len(chart.Tasks) == 0 {
		b.WriteString(styleDim.Render("no dated rows to chart"))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	tl := newTimeline(chart)
	label := lipgloss.NewStyle().Width(opts.LabelWidth).MaxWidth(opts.LabelWidth).MaxHeight(1)

	axis := fmt.Sprintf("%s%s", tl.from.Format("Jan 02"), strings.Repeat(" ", max(opts.Width-12, 1)))
	axis += tl.to.Format("Jan 02")
	b.WriteString(label.Render(""))
	b.WriteString(" ")
	b.WriteString(styleDim.Render(axis))
	b.WriteString("\n")

	todayCol := tl.column(tl.today, opts.Width)
	for i, task := range chart.Tasks {
		row := chart.Rows[i]
		from := tl.column(*row.Start, opts.Width)
		to := tl.column(*row.End, opts.Width)

		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Colors[task.Category].Hex()))
		b.WriteString(label.Render(task.Label))
		b.WriteString(" ")
		b.WriteString(barLine(opts.Width, from, to, todayCol, bar))
		b.WriteString(" ")
		ann := chart.Annotations[i]
		b.WriteString(ddayStyle(ann.Days).Render(ann.Text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Legend(chart))
	b.WriteString("\n")

	if !opts.NoDetails {
		b.WriteString("\n")
		b.WriteString(styleHeader.Render("프로젝트 상세 정보"))
		b.WriteString("\n")
		b.WriteString(RenderTable(chart.Details.Headers, chart.Details.Rows))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// barLine draws one bar of width cells covering [from, to] with the today
// marker overlaid outside the bar.
func barLine(width, from, to, today int, bar lipgloss.Style) string {
	var b strings.Builder
	run := func(style lipgloss.Style, glyph string, n int) {
		if n > 0 {
			b.WriteString(style.Render(strings.Repeat(glyph, n)))
		}
	}

	c := 0
	for c < width {
		switch {
		case c >= from && c <= to:
			run(bar, barBlock, to-c+1)
			c = to + 1
		case c == today:
			run(styleRed, todayMarker, 1)
			c++
		default:
			end := width
			if c < from && from < end {
				end = from
			}
			if c < today && today < end {
				end = today
			}
			run(styleDim, trackBlock, end-c)
			c = end
		}
	}
	return b.String()
}

// Legend lists each category with its color swatch.
func Legend(chart *model.Chart) string {
	parts := make([]string, 0, len(chart.Categories))
	for _, cat := range chart.Categories {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Colors[cat].Hex())).Render("■")
		parts = append(parts, swatch+" "+cat)
	}
	return strings.Join(parts, "  ")
}
