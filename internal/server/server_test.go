package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/config"
	"github.com/chefcommunity/client/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) config.MockConfig {
	return config.MockConfig{
		Addr:           "127.0.0.1:0",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		AllowedOrigins: []string{"http://localhost:5173"},
		UploadDir:      t.TempDir(),
	}
}

func TestNew(t *testing.T) {
	server := New(testConfig(t), nil, zap.NewNop())
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodOptions, "/api/recipes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNew_ZeroConfig(t *testing.T) {
	var server *Server
	require.NotPanics(t, func() {
		server = New(config.MockConfig{}, nil, nil)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/health", nil)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSeed(t *testing.T) {
	server := New(testConfig(t), nil, zap.NewNop())
	require.NoError(t, server.Seed(faker.New(), 3, 2))

	recipes := server.Store().ListRecipes(types.RecipeFilter{}, nil, 0)
	assert.Len(t, recipes, 6)
	for _, r := range recipes {
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Author)
	}
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := testConfig(t)
	cfg.Addr = addr
	server := New(cfg, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
