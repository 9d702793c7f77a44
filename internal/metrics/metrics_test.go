package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware)
	e.GET("/api/recipes/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/api/missing", func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound) })

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/api/recipes/:id", "200"))
	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/api/recipes/:id", "200"))
	require.Equal(t, before+2, after)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/missing", nil))
	require.Equal(t, float64(1), testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/api/missing", "404")))
}

func TestHandlerExposesCounters(t *testing.T) {
	RecipesCreated.Inc()
	e := echo.New()
	e.GET("/metrics", Handler())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "foodgram_recipes_created_total")
}
