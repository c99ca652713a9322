package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/schedboard/internal/metrics"
	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/schedule"
	"github.com/gyeh/schedboard/internal/source"
)

type stubSource struct {
	table *model.Table
	err   error
}

func (s stubSource) Load(ctx context.Context) (*model.Table, error) {
	return s.table, s.err
}

type countingSource struct {
	table *model.Table
	calls atomic.Int32
}

func (s *countingSource) Load(ctx context.Context) (*model.Table, error) {
	s.calls.Add(1)
	return s.table, nil
}

func str(v string) *string { return &v }

func sheet() *model.Table {
	return &model.Table{
		Columns: []string{"사업명", "담당자", "제출일"},
		Rows: [][]*string{
			{str("교육 운영"), str("김철수"), str("2024.03.01")},
			{str("캠프 기획"), str("이영희"), str("실행중")},
		},
	}
}

func newTestServer(t *testing.T, src stubSource) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	s := New(src, schedule.DefaultOptions(), rec, reg, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC) }
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, reg
}

func get(t *testing.T, url string, header ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServer_JSON(t *testing.T) {
	ts, _ := newTestServer(t, stubSource{table: sheet()})

	resp, body := get(t, ts.URL+"/api/schedule")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, `"Task":"교육 운영"`)
	assert.Contains(t, body, `"Start":"2024-02-16"`)
	assert.Contains(t, body, "D+5")
	assert.NotContains(t, body, "캠프 기획")

	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	resp, _ = get(t, ts.URL+"/api/schedule", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/api/schedule", "If-None-Match", `"other", W/`+etag)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/api/schedule", "If-None-Match", `"other"`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestETagMatches(t *testing.T) {
	const tag = `"abc"`
	cases := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{`"x",W/"abc"`, true},
		{"*", true},
		{`"abcd"`, false},
		{`"x", "y"`, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, etagMatches(tc.header, tag), "header %q", tc.header)
	}
}

func TestServer_Reload(t *testing.T) {
	inner := &countingSource{table: sheet()}
	cached := source.NewCachedSource(inner, time.Hour, zerolog.Nop())
	s := New(cached, schedule.DefaultOptions(), nil, nil, zerolog.Nop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	get(t, ts.URL+"/api/schedule")
	get(t, ts.URL+"/api/schedule")
	assert.EqualValues(t, 1, inner.calls.Load())

	resp, err := http.Post(ts.URL+"/api/reload", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	get(t, ts.URL+"/api/schedule")
	assert.EqualValues(t, 2, inner.calls.Load())
}

func TestServer_ReloadUncached(t *testing.T) {
	ts, _ := newTestServer(t, stubSource{table: sheet()})
	resp, err := http.Post(ts.URL+"/api/reload", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestServer_Text(t *testing.T) {
	ts, _ := newTestServer(t, stubSource{table: sheet()})
	resp, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "교육 운영")
	assert.Contains(t, body, "D+5")

	resp, _ = get(t, ts.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_PDF(t *testing.T) {
	ts, _ := newTestServer(t, stubSource{table: sheet()})
	resp, body := get(t, ts.URL+"/schedule.pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "%PDF-"))
}

func TestServer_MissingColumn(t *testing.T) {
	tbl := &model.Table{Columns: []string{"사업명"}, Rows: [][]*string{{str("x")}}}
	ts, _ := newTestServer(t, stubSource{table: tbl})
	resp, body := get(t, ts.URL+"/api/schedule")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "required column not found")
}

func TestServer_SourceError(t *testing.T) {
	ts, _ := newTestServer(t, stubSource{err: errors.New("connection refused")})
	resp, body := get(t, ts.URL+"/api/schedule")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "connection refused")
}

func TestServer_HealthAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t, stubSource{table: sheet()})

	resp, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", body)

	get(t, ts.URL+"/api/schedule")
	resp, body = get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `schedboard_renders_total{outcome="ok"} 1`)
	assert.Contains(t, body, `schedboard_rows_total{outcome="unresolved"} 1`)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s := New(stubSource{table: sheet()}, schedule.DefaultOptions(), nil, nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
