package render

import (
	"encoding/json"
	"io"

	"github.com/gyeh/schedboard/internal/model"
)

type jsonCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type jsonChart struct {
	RunID       string             `json:"run_id"`
	GeneratedAt string             `json:"generated_at"`
	Tasks       []model.GanttTask  `json:"tasks"`
	Annotations []model.Annotation `json:"annotations"`
	Categories  []jsonCategory     `json:"categories"`
	Details     model.DetailTable  `json:"details"`
	Summary     jsonSummary        `json:"summary"`
}

type jsonSummary struct {
	RowsRead       int `json:"rows_read"`
	RowsMissing    int `json:"rows_missing"`
	RowsUnresolved int `json:"rows_unresolved"`
	RowsRendered   int `json:"rows_rendered"`
}

// JSON writes the chart records in the shape a plotting front end expects.
func JSON(w io.Writer, chart *model.Chart) error {
	out := jsonChart{
		RunID:       chart.RunID,
		GeneratedAt: chart.Now.Format("2006-01-02T15:04:05"),
		Tasks:       chart.Tasks,
		Annotations: chart.Annotations,
		Categories:  make([]jsonCategory, 0, len(chart.Categories)),
		Details:     chart.Details,
		Summary: jsonSummary{
			RowsRead:       chart.Summary.RowsRead,
			RowsMissing:    chart.Summary.RowsMissing,
			RowsUnresolved: chart.Summary.RowsUnresolved,
			RowsRendered:   chart.Summary.RowsRendered,
		},
	}
	if out.Tasks == nil {
		out.Tasks = []model.GanttTask{}
	}
	if out.Annotations == nil {
		out.Annotations = []model.Annotation{}
	}
	for _, c := range chart.Categories {
		out.Categories = append(out.Categories, jsonCategory{Name: c, Color: chart.Colors[c].String()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
