// Package metrics holds the prometheus collectors for the pager and table.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "simpledb"

type Metrics struct {
	Registry *prometheus.Registry

	PageHits      prometheus.Counter
	PageLoads     prometheus.Counter
	PageAllocs    prometheus.Counter
	PageFlushes   prometheus.Counter
	ResidentPages prometheus.Gauge
	RowsInserted  prometheus.Counter
	InsertErrors  *prometheus.CounterVec
}

// New builds a fresh registry so tests and multiple tables never collide on
// the global default registerer.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
		reg.MustRegister(c)
		return c
	}

	m := &Metrics{
		Registry:     reg,
		PageHits:     factory("pager_cache_hits_total", "Page requests served from the resident cache."),
		PageLoads:    factory("pager_page_loads_total", "Pages read from the backing file."),
		PageAllocs:   factory("pager_page_allocs_total", "Pages materialised zero-filled beyond the end of the file."),
		PageFlushes:  factory("pager_page_flushes_total", "Pages written back to the backing file."),
		RowsInserted: factory("table_rows_inserted_total", "Rows successfully inserted."),
		ResidentPages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pager_resident_pages",
			Help:      "Pages currently held in memory.",
		}),
		InsertErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_insert_errors_total",
			Help:      "Rejected inserts by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.ResidentPages, m.InsertErrors)

	return m
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
