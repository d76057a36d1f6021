// Package api serves the ChefCommunity REST endpoints from an in-memory
// store. It backs local development and the client's integration tests.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/auth"
	"github.com/chefcommunity/client/internal/middleware"
	"github.com/chefcommunity/client/internal/models"
)

// Deps are the collaborators shared by every handler.
type Deps struct {
	Store     *models.Store
	Tokens    *auth.TokenService
	UploadDir string
	Logger    *zap.Logger
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "ChefCommunity API is running",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)
	if deps.UploadDir != "" {
		router.Static("/static/uploads", deps.UploadDir)
	}

	api := router.Group("/api")
	NewAuthHandler(deps).RegisterRoutes(api)
	NewRecipeHandler(deps).RegisterRoutes(api)
	NewUserHandler(deps).RegisterRoutes(api)
}

// respondError maps store errors onto the backend's status codes and
// {"error": ...} bodies. notFound is the message used for 404s.
func respondError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "No autorizado"})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Usuario o email ya existe"})
	case errors.Is(err, models.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No puedes seguirte a ti mismo"})
	case errors.Is(err, models.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// pathID parses an integer path parameter, answering 404 when it is not
// one, the way an <int:...> route would.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
		return 0, false
	}
	return id, true
}

func currentUser(c *gin.Context) int64 {
	return middleware.UserID(c)
}
