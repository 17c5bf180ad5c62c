// ABOUTME: Tests for rerun metrics collectors
// ABOUTME: Reads counter values back through prometheus testutil

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRerun(t *testing.T) {
	m := New()

	m.ObserveRerun("widgets", 5*time.Millisecond, nil)
	m.ObserveRerun("widgets", 5*time.Millisecond, errors.New("boom"))
	m.ObserveRerun("dashboard", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reruns.WithLabelValues("widgets")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rerunErrors.WithLabelValues("widgets")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reruns.WithLabelValues("dashboard")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRerun("x", time.Second, nil)
		m.UploadReceived()
		m.SessionCreated()
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.UploadReceived()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "widgetdash_uploads_total 1")
}
