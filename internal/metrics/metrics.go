package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyeh/schedboard/internal/model"
)

// Recorder tracks render passes and sheet fetches in Prometheus metrics.
type Recorder struct {
	renders *prometheus.CounterVec
	rows    *prometheus.CounterVec
	fetch   *prometheus.HistogramVec
}

// NewRecorder registers schedboard metrics on the provided registerer.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedboard_renders_total",
		Help: "Render passes by outcome",
	}, []string{"outcome"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedboard_rows_total",
		Help: "Sheet rows seen by render passes, by outcome",
	}, []string{"outcome"})
	fetch := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedboard_fetch_duration_seconds",
		Help:    "Time spent downloading the sheet export",
		Buckets: prometheus.DefBuckets,
	}, []string{"success"})

	var err error
	if renders, err = register(reg, renders); err != nil {
		return nil, err
	}
	if rows, err = register(reg, rows); err != nil {
		return nil, err
	}
	if fetch, err = register(reg, fetch); err != nil {
		return nil, err
	}
	return &Recorder{renders: renders, rows: rows, fetch: fetch}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRender records a successful render pass.
func (r *Recorder) ObserveRender(sum model.RenderSummary) {
	r.renders.WithLabelValues("ok").Inc()
	r.rows.WithLabelValues("rendered").Add(float64(sum.RowsRendered))
	r.rows.WithLabelValues("unresolved").Add(float64(sum.RowsUnresolved))
	r.rows.WithLabelValues("missing").Add(float64(sum.RowsMissing))
}

// ObserveRenderError records a failed render pass; outcome names the failure.
func (r *Recorder) ObserveRenderError(outcome string) {
	r.renders.WithLabelValues(outcome).Inc()
}

// ObserveFetch records one sheet download.
func (r *Recorder) ObserveFetch(d time.Duration, err error) {
	success := "true"
	if err != nil {
		success = "false"
	}
	r.fetch.WithLabelValues(success).Observe(d.Seconds())
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
