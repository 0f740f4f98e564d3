package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	require.Equal(t, uint64(3), snap.count)

	var buf bytes.Buffer
	writeHistogram(&buf, "x", "help", snap)

	text := buf.String()
	assert.Contains(t, text, `x_bucket{le="10"} 1`)
	assert.Contains(t, text, `x_bucket{le="100"} 2`)
	assert.Contains(t, text, `x_bucket{le="+Inf"} 3`)
	assert.Contains(t, text, "x_sum 555")
	assert.Contains(t, text, "x_count 3")
}

func TestHandlerExposesCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncAnalysisStarted()
	IncLLMCalls()
	IncLLMParseFailures()
	ObserveAnalysisDurationMs(-5)

	router := gin.New()
	router.GET("/metrics", Handler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	body := rec.Body.String()
	for _, name := range []string{
		"analysis_started_total",
		"analysis_completed_total",
		"analysis_failed_total",
		"analysis_rejected_total",
		"llm_calls_total",
		"llm_parse_failures_total",
		"analysis_duration_ms_count",
	} {
		assert.Contains(t, body, name)
	}
}

func TestSnapshotTracksCounters(t *testing.T) {
	before := Snapshot()
	IncAnalysisCompleted()
	IncAnalysisFailed()
	IncAnalysisRejected()

	after := Snapshot()
	assert.Equal(t, before.Completed+1, after.Completed)
	assert.Equal(t, before.Failed+1, after.Failed)
	assert.Equal(t, before.Rejected+1, after.Rejected)
}
