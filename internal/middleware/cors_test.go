package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chefcommunity/client/config"
)

func corsRouter(t *testing.T, origins []string) *gin.Engine {
	t.Helper()
	r := gin.New()
	require.NotPanics(t, func() { r.Use(CORS(origins)) })
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	r := corsRouter(t, []string{"http://chef.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://chef.example.com")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://chef.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyListFallsBackToDevOrigin(t *testing.T) {
	for _, origins := range [][]string{nil, {""}, {"  "}} {
		r := corsRouter(t, origins)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", config.DefaultAllowedOrigin)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, config.DefaultAllowedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		rr = httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	}
}
