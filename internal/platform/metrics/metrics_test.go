package metrics_test

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/platform/metrics"
)

func TestCountersAccumulate(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	m.TrackedSave(120)
	m.TrackedSave(0)
	m.Populated(3)
	m.Reconciled(nil)
	m.Reconciled(errors.New("boom"))
	m.PersistenceFailed("goal-progress")

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "inkwell_tracked_saves_total 2"), body)
	assert.True(t, strings.Contains(body, "inkwell_words_tracked_total 120"), body)
	assert.True(t, strings.Contains(body, `inkwell_reconcile_runs_total{result="error"} 1`), body)
	assert.True(t, strings.Contains(body, `inkwell_persistence_errors_total{key="goal-progress"} 1`), body)
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()
	var m *metrics.Metrics
	m.TrackedSave(10)
	m.Populated(1)
	m.Reconciled(nil)
	m.Archived(2)
	m.PersistenceFailed("goal-settings")
}
