package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTransition(t *testing.T) {
	m := New()
	m.ObserveTransition("registered", "lost", "ok")
	m.ObserveTransition("registered", "lost", "ok")
	m.ObserveTransition("registered", "reunited", "validation")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("registered", "lost", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("registered", "reunited", "validation")))
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/pets", "200", 0.1)
		m.ObserveTransition("lost", "reunited", "ok")
		m.ObserveResolution("approve", "ok")
		m.ObserveMirror("record", "hit")
		m.ObserveNotification("request_opened", "sent")
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveResolution("approve", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "reunion_request_resolutions_total"))
}
