package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/schedboard/internal/model"
)

// Reader wraps a parquet GenericReader for streaming SnapshotCell records.
type Reader struct {
	file   *os.File
	reader *parquet.GenericReader[model.SnapshotCell]
}

// Open opens a snapshot file and returns a streaming Reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat snapshot file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewGenericReader[model.SnapshotCell](pf)
	return &Reader{file: f, reader: r}, nil
}

// NumRows returns the number of cells stored in the snapshot.
func (r *Reader) NumRows() int64 {
	return r.reader.NumRows()
}

// Read reads up to len(cells) records into the provided slice.
// Returns the number of cells read and io.EOF when done.
func (r *Reader) Read(cells []model.SnapshotCell) (int, error) {
	n, err := r.reader.Read(cells)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read snapshot cells: %w", err)
	}
	return n, err
}

// Schema returns the Parquet schema for validation.
func (r *Reader) Schema() *parquet.Schema {
	return r.reader.Schema()
}

// Close releases all resources.
func (r *Reader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

const readBatchSize = 1024

// ReadTable loads the whole snapshot back into a Table.
func (r *Reader) ReadTable() (*model.Table, error) {
	var header []model.SnapshotCell
	var cells []model.SnapshotCell
	numRows := 0

	buf := make([]model.SnapshotCell, readBatchSize)
	for {
		n, readErr := r.Read(buf)
		for i := 0; i < n; i++ {
			c := buf[i]
			if c.Position < 0 {
				return nil, fmt.Errorf("cell at row %d has negative position %d", c.Row, c.Position)
			}
			if c.Row < 0 {
				header = append(header, c)
				continue
			}
			if int(c.Row)+1 > numRows {
				numRows = int(c.Row) + 1
			}
			cells = append(cells, c)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
	}

	width := 0
	for _, c := range header {
		if int(c.Position)+1 > width {
			width = int(c.Position) + 1
		}
	}
	t := &model.Table{Columns: make([]string, width), Rows: make([][]*string, numRows)}
	for _, c := range header {
		t.Columns[c.Position] = c.Column
	}
	for i := range t.Rows {
		t.Rows[i] = make([]*string, width)
	}
	for _, c := range cells {
		if int(c.Position) >= width {
			return nil, fmt.Errorf("cell at row %d position %d has no header", c.Row, c.Position)
		}
		t.Rows[c.Row][c.Position] = c.Value
	}
	return t, nil
}
