package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/sessions/:id", func(c *gin.Context) {
		c.Status(http.StatusTeapot)
	})

	for _, path := range []string{"/sessions/a", "/sessions/b", "/nowhere"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var routes []string
	for _, mf := range families {
		if mf.GetName() != "activat_http_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" {
					routes = append(routes, l.GetValue())
				}
			}
		}
	}
	assert.Contains(t, routes, "/sessions/:id")
	assert.Contains(t, routes, "unmatched")
	assert.NotContains(t, routes, "/sessions/a")

	count, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "activat_http_request_duration_seconds")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 2)
}
