package snapshot

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/schedboard/internal/model"
)

// Cells flattens a table into long-form snapshot cells, header first.
// Missing cells are omitted.
func Cells(t *model.Table) []model.SnapshotCell {
	cells := make([]model.SnapshotCell, 0, len(t.Columns)*(len(t.Rows)+1))
	for pos, col := range t.Columns {
		name := col
		cells = append(cells, model.SnapshotCell{Row: -1, Position: int32(pos), Column: col, Value: &name})
	}
	for i := range t.Rows {
		for pos, col := range t.Columns {
			v := t.Cell(i, pos)
			if v == nil {
				continue
			}
			cells = append(cells, model.SnapshotCell{Row: int64(i), Position: int32(pos), Column: col, Value: v})
		}
	}
	return cells
}

// Write archives t to a Parquet file at path and returns the number of cells written.
func Write(path string, t *model.Table) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[model.SnapshotCell](f)
	n, err := w.Write(Cells(t))
	if err != nil {
		return n, fmt.Errorf("write snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return n, fmt.Errorf("close snapshot writer: %w", err)
	}
	return n, f.Close()
}
