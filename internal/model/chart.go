package model

import (
	"time"

	"github.com/gyeh/schedboard/internal/normalize"
)

// DateLayout is the day format handed to renderers.
const DateLayout = "2006-01-02"

// GanttTask is the presentation record for one chart bar.
type GanttTask struct {
	Label    string `json:"Task"`
	Start    string `json:"Start"`
	Finish   string `json:"Finish"`
	Category string `json:"Resource"`
}

// Annotation is the D-day label drawn at the end of a bar.
type Annotation struct {
	X    string  `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
	Days int     `json:"days"`
}

// Chart is everything a renderer needs for one render pass.
type Chart struct {
	RunID       string
	Now         time.Time
	Tasks       []GanttTask
	Annotations []Annotation
	// Categories are managers in order of first appearance.
	Categories []string
	Colors     map[string]normalize.Color
	// Rows backs the detail table, parallel to Tasks.
	Rows    []ResolvedRow
	Details DetailTable
	Summary RenderSummary
}

// DetailTable is the tabular view shown under the chart.
type DetailTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}
