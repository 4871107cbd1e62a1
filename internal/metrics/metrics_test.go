package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	m := Init(true)
	require.NotNil(t, m)

	metrics, ok := m.(*Metrics)
	require.True(t, ok, "Init(true) should return *Metrics")
	assert.NotNil(t, metrics.CallbacksTotal)
	assert.NotNil(t, metrics.StageFailuresTotal)
	assert.NotNil(t, metrics.ProviderCallsTotal)
	assert.NotNil(t, metrics.HTTPRequestsTotal)

	// registered once, same instance on every call
	assert.Same(t, metrics, Init(true))
}

func TestInitNoop(t *testing.T) {
	m := Init(false)
	assert.NotNil(t, m)

	_, ok := m.(*NoopMetrics)
	assert.True(t, ok, "Init(false) should return *NoopMetrics")

	// must not panic
	m.RecordCallback("facebook", "success", time.Second)
	m.RecordStageFailure("zalo", core.StateReceived, core.KindMissingAuthorizationCode)
	m.RecordDiagnosticsDropped()
}

func TestRecordCallback(t *testing.T) {
	m := Init(true).(*Metrics)

	before := testutil.ToFloat64(m.CallbacksTotal.WithLabelValues("facebook", "success"))
	m.RecordCallback("facebook", "success", 250*time.Millisecond)
	after := testutil.ToFloat64(m.CallbacksTotal.WithLabelValues("facebook", "success"))

	assert.Equal(t, before+1, after)
}

func TestRecordStageFailure(t *testing.T) {
	m := Init(true).(*Metrics)

	counter := m.StageFailuresTotal.WithLabelValues(
		"zalo", string(core.StateReceived), string(core.KindMissingAuthorizationCode),
	)
	before := testutil.ToFloat64(counter)
	m.RecordStageFailure("zalo", core.StateReceived, core.KindMissingAuthorizationCode)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordChannelsPersisted(t *testing.T) {
	m := Init(true).(*Metrics)

	before := testutil.ToFloat64(m.ChannelsPersistedTotal.WithLabelValues("facebook"))
	m.RecordChannelsPersisted("facebook", 3)
	assert.Equal(t, before+3, testutil.ToFloat64(m.ChannelsPersistedTotal.WithLabelValues("facebook")))
}

func TestRecordProviderCall(t *testing.T) {
	m := Init(true).(*Metrics)

	ok := m.ProviderCallsTotal.WithLabelValues("zalo", "token_exchange", resultSuccess)
	failed := m.ProviderCallsTotal.WithLabelValues("zalo", "token_exchange", resultError)
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	m.RecordProviderCall("zalo", "token_exchange", true, 40*time.Millisecond)
	m.RecordProviderCall("zalo", "token_exchange", false, 90*time.Millisecond)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestRecordMiscellaneous(t *testing.T) {
	m := Init(true).(*Metrics)

	dropped := testutil.ToFloat64(m.DiagnosticsDroppedTotal)
	m.RecordDiagnosticsDropped()
	assert.Equal(t, dropped+1, testutil.ToFloat64(m.DiagnosticsDroppedTotal))

	queryErrors := testutil.ToFloat64(m.DatabaseQueryErrorsTotal.WithLabelValues("upsert_channel"))
	m.RecordDatabaseQueryError("upsert_channel")
	assert.Equal(t, queryErrors+1,
		testutil.ToFloat64(m.DatabaseQueryErrorsTotal.WithLabelValues("upsert_channel")))

	m.RecordAuthorizationRedirect("facebook", true)
	m.RecordAuthorizationRedirect("facebook", false)

	m.SetLinkedChannels("Zalo", 4)
	assert.Equal(t, float64(4), testutil.ToFloat64(m.LinkedChannels.WithLabelValues("Zalo")))
	m.SetLinkedChannels("Zalo", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.LinkedChannels.WithLabelValues("Zalo")))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := Init(true).(*Metrics)

	r := gin.New()
	r.Use(HTTPMetricsMiddleware(m))
	r.GET("/api/:provider/auth", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "https://provider.example.com")
	})
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/:provider/auth", "302")
	before := testutil.ToFloat64(counter)

	for _, p := range []string{"/api/facebook/auth", "/api/zalo/auth"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusFound, w.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	metricsCounter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics", "200")
	metricsBefore := testutil.ToFloat64(metricsCounter)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, metricsBefore, testutil.ToFloat64(metricsCounter))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
}

func TestHTTPMetricsMiddlewareNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(HTTPMetricsMiddleware(Init(false)))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "unknown", normalizePath(""))
	assert.Equal(t, "/api/:provider/auth/callback", normalizePath("/api/:provider/auth/callback"))
}
