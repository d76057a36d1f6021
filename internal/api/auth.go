package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/auth"
	"github.com/chefcommunity/client/internal/middleware"
	"github.com/chefcommunity/client/internal/models"
	"github.com/chefcommunity/client/internal/types"
)

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Rol       string `json:"rol"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

type AuthHandler struct {
	store  *models.Store
	tokens *auth.TokenService
	logger *zap.Logger
}

func NewAuthHandler(deps Deps) *AuthHandler {
	return &AuthHandler{store: deps.Store, tokens: deps.Tokens, logger: deps.Logger}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.GET("/me", middleware.RequireAuth(h.tokens), h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan datos requeridos"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan datos requeridos"})
		return
	}

	rol := types.RoleAprendiz
	if req.Rol != "" {
		rol = types.Role(req.Rol).Normalize()
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	user, err := h.store.CreateUser(req.Username, req.Email, hash, rol, req.Bio, req.AvatarURL)
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}
	token, err := h.tokens.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("rol", string(user.Rol)))
	c.JSON(http.StatusCreated, types.AuthResponse{
		Message: "Usuario creado exitosamente",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan credenciales"})
		return
	}

	account, ok := h.store.UserByEmail(req.Email)
	if !ok || auth.CheckPassword(account.PasswordHash, req.Password) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}
	user, err := h.store.UserDetail(account.ID)
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}
	token, err := h.tokens.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, types.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.store.UserDetail(currentUser(c))
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}
	c.JSON(http.StatusOK, user)
}
