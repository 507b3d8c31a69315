// Package metrics exposes the engine's Prometheus counters. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry          *prometheus.Registry
	trackedSaves      prometheus.Counter
	wordsTracked      prometheus.Counter
	populatedRecords  prometheus.Counter
	reconcileRuns     *prometheus.CounterVec
	archivedGoals     prometheus.Counter
	persistenceErrors *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		trackedSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_tracked_saves_total",
			Help: "Document saves attributed to goal progress.",
		}),
		wordsTracked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_words_tracked_total",
			Help: "Word deltas recorded in the daily ledger.",
		}),
		populatedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_populated_records_total",
			Help: "Progress rows created by historical population.",
		}),
		reconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inkwell_reconcile_runs_total",
			Help: "Nightly reconcile runs by result.",
		}, []string{"result"}),
		archivedGoals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_archived_goals_total",
			Help: "Goals archived by the auto-archive sweep.",
		}),
		persistenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inkwell_persistence_errors_total",
			Help: "Best-effort storage writes that failed.",
		}, []string{"key"}),
	}
	m.registry.MustRegister(
		m.trackedSaves,
		m.wordsTracked,
		m.populatedRecords,
		m.reconcileRuns,
		m.archivedGoals,
		m.persistenceErrors,
	)
	return m
}

func (m *Metrics) TrackedSave(words int) {
	if m == nil {
		return
	}
	m.trackedSaves.Inc()
	if words > 0 {
		m.wordsTracked.Add(float64(words))
	}
}

func (m *Metrics) Populated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.populatedRecords.Add(float64(n))
}

func (m *Metrics) Reconciled(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reconcileRuns.WithLabelValues(result).Inc()
}

func (m *Metrics) Archived(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.archivedGoals.Add(float64(n))
}

func (m *Metrics) PersistenceFailed(key string) {
	if m == nil {
		return
	}
	m.persistenceErrors.WithLabelValues(key).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve blocks until ctx is cancelled, then shuts the listener down.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
