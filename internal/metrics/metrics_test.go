package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/pkg/detect"
	"github.com/joshuapare/propkit/propstore"
)

func setupTestMetrics(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(reg, "test"), reg
}

func TestCollectorObservesStructuredParse(t *testing.T) {
	c, _ := setupTestMetrics(t)

	opts := propstore.DefaultOptions()
	opts.Observer = c
	raw := format.NewBuilder().Add("ro.product.model", "Pixel7").Add("ro.build.id", "X").Build()
	_, err := propstore.OpenBytes(raw, opts)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.strategyAttempts.WithLabelValues("structured")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.strategyAttempts.WithLabelValues("targeted_search")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.strategySuccess.WithLabelValues("structured")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.propertiesExtracted.WithLabelValues("structured")))
}

func TestCollectorObservesFailure(t *testing.T) {
	c, _ := setupTestMetrics(t)

	opts := propstore.DefaultOptions()
	opts.Observer = c
	_, err := propstore.OpenBytes([]byte("no properties here"), opts)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.parseFailures.WithLabelValues("format")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.strategyAttempts.WithLabelValues("generic_scan")))

	c.ParseFinished(propstore.StrategyNone, errors.New("plain"))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.parseFailures.WithLabelValues("unknown")))
}

func TestCollectorDetections(t *testing.T) {
	c, _ := setupTestMetrics(t)

	c.CheckFinished(detect.Finding{Check: "frida_port", Detected: true})
	c.CheckFinished(detect.Finding{Check: "frida_port"})
	c.CheckFinished(detect.Finding{Check: "frida_maps", Err: errors.New("denied")})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.detections.WithLabelValues("frida_port", "detected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.detections.WithLabelValues("frida_port", "clean")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.detections.WithLabelValues("frida_maps", "error")))

	c.RecordVerdict(detect.Verdict{Compromised: true})
	assert.Equal(t, 1.0, testutil.ToFloat64(c.tamperSignal))
	c.RecordVerdict(detect.Verdict{})
	assert.Equal(t, 0.0, testutil.ToFloat64(c.tamperSignal))
}

func TestHTTPMiddleware(t *testing.T) {
	c, reg := setupTestMetrics(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(c.HTTPMiddleware())
	router.GET("/v1/properties/:key", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.Param("key"))
	})

	for _, path := range []string{"/v1/properties/a", "/v1/properties/b", "/nope"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/v1/properties/:key", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	n, err := testutil.GatherAndCount(reg, "test_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
