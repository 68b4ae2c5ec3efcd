package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := NewHTTPMetrics(reg)
	require.NoError(t, err)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()
	server.Use(m.Handler())
	server.GET("/reserves", func(gctx *gin.Context) { gctx.Status(http.StatusOK) })

	for _, path := range []string{"/reserves", "/reserves", "/missing"} {
		req, err := http.NewRequest(http.MethodGet, path, nil)
		require.NoError(t, err)

		server.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("/reserves", http.MethodGet, "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("unmatched", http.MethodGet, "404")))

	_, err = NewHTTPMetrics(reg)
	require.Error(t, err)
}
