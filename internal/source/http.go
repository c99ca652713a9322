package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/normalize"
)

// maxExportBytes caps the size of a downloaded export.
const maxExportBytes = 32 << 20

// HTTPSource downloads a published spreadsheet CSV export.
type HTTPSource struct {
	url           string
	headerKeyword string
	httpClient    *http.Client
	log           zerolog.Logger

	// OnFetch, when set, observes each download's duration and error.
	OnFetch func(d time.Duration, err error)
}

// NewHTTPSource creates a source for the export at url.
func NewHTTPSource(url, headerKeyword string, timeout time.Duration, log zerolog.Logger) *HTTPSource {
	return &HTTPSource{
		url:           url,
		headerKeyword: headerKeyword,
		httpClient:    &http.Client{Timeout: timeout},
		log:           log,
	}
}

// Load fetches and parses the export.
func (s *HTTPSource) Load(ctx context.Context) (*model.Table, error) {
	start := time.Now()
	data, err := s.fetch(ctx)
	if s.OnFetch != nil {
		s.OnFetch(time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	t, err := ParseCSV(data, s.headerKeyword)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("sha256", normalize.ContentHash(data)).
		Int("bytes", len(data)).
		Int("rows", len(t.Rows)).
		Dur("duration", time.Since(start)).
		Msg("sheet export fetched")
	return t, nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch export: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExportBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read export body: %w", err)
	}
	if len(data) > maxExportBytes {
		return nil, fmt.Errorf("export exceeds %d bytes", maxExportBytes)
	}
	return data, nil
}
