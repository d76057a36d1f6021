// Package server runs the in-memory ChefCommunity backend over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/config"
	"github.com/chefcommunity/client/internal/api"
	"github.com/chefcommunity/client/internal/auth"
	"github.com/chefcommunity/client/internal/middleware"
	"github.com/chefcommunity/client/internal/models"
)

const shutdownTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	store  *models.Store
	tokens *auth.TokenService
	logger *zap.Logger
}

// New creates a server for store. A nil store starts empty.
func New(cfg config.MockConfig, store *models.Store, logger *zap.Logger) *Server {
	if store == nil {
		store = models.NewStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api.RegisterRoutes(router, api.Deps{
		Store:     store,
		Tokens:    tokens,
		UploadDir: cfg.UploadDir,
		Logger:    logger,
	})

	return &Server{
		router: router,
		http:   &http.Server{Addr: cfg.Addr, Handler: router, ReadHeaderTimeout: 10 * time.Second},
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// Handler exposes the router, for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Store() *models.Store {
	return s.store
}

func (s *Server) Tokens() *auth.TokenService {
	return s.tokens
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stub backend listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down stub backend")
	if err := s.Stop(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
