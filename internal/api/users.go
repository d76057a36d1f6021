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

type UserHandler struct {
	store  *models.Store
	tokens *auth.TokenService
	logger *zap.Logger
}

func NewUserHandler(deps Deps) *UserHandler {
	return &UserHandler{store: deps.Store, tokens: deps.Tokens, logger: deps.Logger}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.GET("/:id", middleware.OptionalAuth(h.tokens), h.GetProfile)

	authed := users.Group("")
	authed.Use(middleware.RequireAuth(h.tokens))
	{
		authed.POST("/:id/follow", h.ToggleFollow)

		authed.GET("/me/likes", h.Favorites)

		authed.GET("/me/meal-plan", h.ListMealPlan)
		authed.POST("/me/meal-plan", h.AddMealPlan)
		authed.DELETE("/me/meal-plan/:id", h.RemoveMealPlan)
		authed.POST("/me/shopping-list/generate", h.GenerateShoppingList)

		authed.GET("/me/collections", h.ListCollections)
		authed.POST("/me/collections", h.CreateCollection)
		authed.POST("/me/collections/:id/add/:recipeId", h.AddToCollection)
		authed.DELETE("/me/collections/:id/recipes/:recipeId", h.RemoveFromCollection)
	}
}

// GetProfile returns the public profile aggregate. is_following is only
// true for an identified caller.
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := h.store.Profile(id, currentUser(c))
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) ToggleFollow(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.store.ToggleFollow(currentUser(c), id)
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": res.Action, "user_id": res.UserID})
}

func (h *UserHandler) Favorites(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Favorites(currentUser(c)))
}

func (h *UserHandler) ListMealPlan(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.MealPlan(currentUser(c)))
}

func (h *UserHandler) AddMealPlan(c *gin.Context) {
	var req types.MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RecipeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id, plan_date y meal_time son requeridos"})
		return
	}
	entry, err := h.store.AddMealPlan(currentUser(c), req)
	if err != nil {
		respondError(c, err, recipeNotFound)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *UserHandler) RemoveMealPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.RemoveMealPlan(currentUser(c), id); err != nil {
		respondError(c, err, "Plan no encontrado")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan eliminada"})
}

// GenerateShoppingList aggregates the ingredients of every planned recipe.
func (h *UserHandler) GenerateShoppingList(c *gin.Context) {
	items := h.store.ShoppingList(currentUser(c))
	if items == nil {
		items = []types.ShoppingListItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *UserHandler) ListCollections(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Collections(currentUser(c)))
}

func (h *UserHandler) CreateCollection(c *gin.Context) {
	var req types.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es requerido"})
		return
	}
	col, err := h.store.CreateCollection(currentUser(c), strings.TrimSpace(req.Name), req.Description)
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}
	c.JSON(http.StatusCreated, col)
}

func (h *UserHandler) AddToCollection(c *gin.Context) {
	collectionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipeId")
	if !ok {
		return
	}
	col, err := h.store.AddToCollection(currentUser(c), collectionID, recipeID)
	if err != nil {
		respondError(c, err, "Colección o receta no encontrada")
		return
	}
	c.JSON(http.StatusOK, col)
}

func (h *UserHandler) RemoveFromCollection(c *gin.Context) {
	collectionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipeId")
	if !ok {
		return
	}
	col, err := h.store.RemoveFromCollection(currentUser(c), collectionID, recipeID)
	if err != nil {
		respondError(c, err, "Colección o receta no encontrada")
		return
	}
	c.JSON(http.StatusOK, col)
}
