package source

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/normalize"
)

// FileSource reads a CSV export from disk.
type FileSource struct {
	Path          string
	HeaderKeyword string
	Log           zerolog.Logger
}

// Load reads and parses the file on every call.
func (s *FileSource) Load(ctx context.Context) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read csv file: %w", err)
	}
	t, err := ParseCSV(data, s.HeaderKeyword)
	if err != nil {
		return nil, err
	}
	s.Log.Debug().
		Str("file", s.Path).
		Str("sha256", normalize.ContentHash(data)).
		Int("rows", len(t.Rows)).
		Msg("csv file loaded")
	return t, nil
}
