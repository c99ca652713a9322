package snapshot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gyeh/schedboard/internal/model"
)

// Source serves a table from a snapshot file.
type Source struct {
	Path string
	Log  zerolog.Logger
}

// Load opens, validates and reads the snapshot.
func (s *Source) Load(ctx context.Context) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := ValidateSchema(r.Schema()); err != nil {
		return nil, err
	}
	t, err := r.ReadTable()
	if err != nil {
		return nil, err
	}
	s.Log.Debug().
		Str("snapshot", s.Path).
		Int64("cells", r.NumRows()).
		Int("rows", len(t.Rows)).
		Msg("snapshot loaded")
	return t, nil
}
