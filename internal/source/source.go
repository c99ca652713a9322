package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gyeh/schedboard/internal/model"
)

// ErrHeaderNotFound is returned when no row contains the header keyword.
var ErrHeaderNotFound = errors.New("header row not found")

// Source loads the schedule table. Implementations own any I/O and caching;
// the rest of the program only ever sees a complete Table.
type Source interface {
	Load(ctx context.Context) (*model.Table, error)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV decodes a CSV export and promotes the first row that mentions
// headerKeyword to the column header. Rows above it are discarded; empty
// cells become nil.
func ParseCSV(data []byte, headerKeyword string) (*model.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		records = append(records, rec)
	}

	header := -1
	for i, rec := range records {
		if rowMentions(rec, headerKeyword) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, fmt.Errorf("%w: no row contains %q", ErrHeaderNotFound, headerKeyword)
	}

	columns := make([]string, len(records[header]))
	copy(columns, records[header])

	rows := make([][]*string, 0, len(records)-header-1)
	for _, rec := range records[header+1:] {
		row := make([]*string, len(columns))
		for i := 0; i < len(columns) && i < len(rec); i++ {
			if rec[i] == "" {
				continue
			}
			v := rec[i]
			row[i] = &v
		}
		rows = append(rows, row)
	}

	return &model.Table{Columns: columns, Rows: rows}, nil
}

func rowMentions(rec []string, keyword string) bool {
	for _, cell := range rec {
		if strings.Contains(cell, keyword) {
			return true
		}
	}
	return false
}
