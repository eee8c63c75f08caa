package monitoring

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// NewMetrics registers against the default Prometheus registry, so the
// whole package shares one instance.
func TestMetricsRecording(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	t.Run("middleware counts requests by status", func(t *testing.T) {
		router := gin.New()
		router.Use(Middleware(m))
		router.GET("/apps", func(c *gin.Context) { c.Status(200) })

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/apps", nil))
		}

		got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/apps", "200"))
		if got != 3 {
			t.Errorf("Expected 3 recorded requests, got %v", got)
		}
	})

	t.Run("lifecycle counters split by result", func(t *testing.T) {
		m.RecordLaunch("success")
		m.RecordLaunch("failure")
		m.RecordStop("success")

		if got := testutil.ToFloat64(m.LaunchesTotal.WithLabelValues("success")); got != 1 {
			t.Errorf("Expected 1 successful launch, got %v", got)
		}
		if got := testutil.ToFloat64(m.LaunchesTotal.WithLabelValues("failure")); got != 1 {
			t.Errorf("Expected 1 failed launch, got %v", got)
		}
		if got := testutil.ToFloat64(m.StopsTotal.WithLabelValues("success")); got != 1 {
			t.Errorf("Expected 1 successful stop, got %v", got)
		}
	})

	t.Run("registry gauges track current sizes", func(t *testing.T) {
		m.SetDefinitions(4)
		m.SetTrackedProcesses(2)

		if got := testutil.ToFloat64(m.Definitions); got != 4 {
			t.Errorf("Expected 4 definitions, got %v", got)
		}
		if got := testutil.ToFloat64(m.TrackedProcesses); got != 2 {
			t.Errorf("Expected 2 tracked processes, got %v", got)
		}
	})
}
