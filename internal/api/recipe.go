package api

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/auth"
	"github.com/chefcommunity/client/internal/middleware"
	"github.com/chefcommunity/client/internal/models"
	"github.com/chefcommunity/client/internal/types"
)

const recipeNotFound = "Receta no encontrada"

type RecipeHandler struct {
	store     *models.Store
	tokens    *auth.TokenService
	uploadDir string
	logger    *zap.Logger
	now       func() time.Time
}

func NewRecipeHandler(deps Deps) *RecipeHandler {
	return &RecipeHandler{
		store:     deps.Store,
		tokens:    deps.Tokens,
		uploadDir: deps.UploadDir,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	optional := middleware.OptionalAuth(h.tokens)
	required := middleware.RequireAuth(h.tokens)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/", optional, h.ListRecipes)
		recipes.POST("", required, h.CreateRecipe)
		recipes.POST("/", required, h.CreateRecipe)
		recipes.GET("/:id", optional, h.GetRecipe)
		recipes.PUT("/:id", required, h.UpdateRecipe)
		recipes.DELETE("/:id", required, h.DeleteRecipe)
		recipes.POST("/:id/like", required, h.ToggleLike)
	}
}

// ListRecipes serves the feed. sort=following narrows to followed authors
// only when the caller is identified.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := types.RecipeFilter{
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		Difficulty: types.Difficulty(c.Query("difficulty")),
		Sort:       c.DefaultQuery("sort", types.SortNewest),
	}
	if raw := c.Query("author_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "author_id inválido"})
			return
		}
		filter.AuthorID = id
	}

	var ingredients []string
	if raw := c.Query("ingredients"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				ingredients = append(ingredients, name)
			}
		}
	}

	c.JSON(http.StatusOK, h.store.ListRecipes(filter, ingredients, currentUser(c)))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.store.GetRecipe(id, currentUser(c))
	if err != nil {
		respondError(c, err, recipeNotFound)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe accepts multipart form data, with optional main_image and
// video files, or a plain JSON body.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID := currentUser(c)

	var (
		in  types.RecipeInput
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in, err = h.recipeFromForm(c, userID)
	} else {
		in, err = recipeFromJSON(c)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Instructions) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Título e instrucciones son requeridos"})
		return
	}
	if in.Difficulty == "" {
		in.Difficulty = types.DefaultDifficulty
	}

	recipe, err := h.store.CreateRecipe(userID, in)
	if err != nil {
		respondError(c, err, "Usuario no encontrado")
		return
	}
	h.logger.Info("recipe created", zap.Int64("recipe_id", recipe.ID), zap.Int64("author_id", userID))
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) recipeFromForm(c *gin.Context, userID int64) (types.RecipeInput, error) {
	in := types.RecipeInput{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Instructions: c.PostForm("instructions"),
		Category:     c.PostForm("category"),
		Difficulty:   types.Difficulty(c.PostForm("difficulty")),
		PrepTime:     atoi(c.PostForm("prep_time")),
		Calories:     atoi(c.PostForm("calories")),
		MainImageURL: c.PostForm("main_image_url"),
		VideoURL:     c.PostForm("video_url"),
	}

	if raw := c.PostForm("ingredients"); raw != "" {
		ingredients, err := parseIngredients(json.RawMessage(raw))
		if err != nil {
			// A malformed list does not fail the recipe.
			h.logger.Warn("ignoring unparseable ingredients", zap.Error(err))
		} else {
			in.Ingredients = ingredients
		}
	}

	stamp := h.now().Unix()
	if url, err := h.saveUpload(c, "main_image", fmt.Sprintf("%d_%d_", userID, stamp)); err != nil {
		return in, err
	} else if url != "" {
		in.MainImageURL = url
	}
	if url, err := h.saveUpload(c, "video", fmt.Sprintf("vid_%d_%d_", userID, stamp)); err != nil {
		return in, err
	} else if url != "" {
		in.VideoURL = url
	}
	return in, nil
}

// saveUpload stores the form file under field, if any, and returns its
// public URL.
func (h *RecipeHandler) saveUpload(c *gin.Context, field, prefix string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil || file.Filename == "" {
		return "", nil
	}
	if h.uploadDir == "" {
		return "", fmt.Errorf("uploads are disabled")
	}
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	name := prefix + safeFilename(file)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", field, err)
	}
	return "/static/uploads/" + name, nil
}

func safeFilename(file *multipart.FileHeader) string {
	name := filepath.Base(strings.ReplaceAll(file.Filename, "\\", "/"))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}

func recipeFromJSON(c *gin.Context) (types.RecipeInput, error) {
	var body struct {
		types.RecipeInput
		Ingredients json.RawMessage `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return types.RecipeInput{}, fmt.Errorf("cuerpo inválido: %w", err)
	}
	in := body.RecipeInput
	if len(body.Ingredients) > 0 {
		ingredients, err := parseIngredients(body.Ingredients)
		if err != nil {
			return in, err
		}
		in.Ingredients = ingredients
	}
	return in, nil
}

type recipeUpdate struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Instructions *string           `json:"instructions"`
	Category     *string           `json:"category"`
	VideoURL     *string           `json:"video_url"`
	MainImageURL *string           `json:"main_image_url"`
	Difficulty   *types.Difficulty `json:"difficulty"`
	PrepTime     *int              `json:"prep_time"`
	Calories     *int              `json:"calories"`
	Ingredients  json.RawMessage   `json:"ingredients"`
}

// UpdateRecipe applies the fields present in the JSON body. Only the author
// or an admin may update.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body recipeUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo inválido"})
		return
	}

	patch := models.RecipePatch{
		Title:        body.Title,
		Description:  body.Description,
		Instructions: body.Instructions,
		Category:     body.Category,
		VideoURL:     body.VideoURL,
		MainImageURL: body.MainImageURL,
		Difficulty:   body.Difficulty,
		PrepTime:     body.PrepTime,
		Calories:     body.Calories,
	}
	if len(body.Ingredients) > 0 && string(body.Ingredients) != "null" {
		ingredients, err := parseIngredients(body.Ingredients)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch.Ingredients = &ingredients
	}

	recipe, err := h.store.UpdateRecipe(id, currentUser(c), patch)
	if err != nil {
		respondError(c, err, recipeNotFound)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteRecipe(id, currentUser(c)); err != nil {
		respondError(c, err, recipeNotFound)
		return
	}
	h.logger.Info("recipe deleted", zap.Int64("recipe_id", id), zap.Int64("user_id", currentUser(c)))
	c.JSON(http.StatusOK, gin.H{"message": "Receta eliminada"})
}

func (h *RecipeHandler) ToggleLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.store.ToggleLike(currentUser(c), id)
	if err != nil {
		respondError(c, err, recipeNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": res.Action, "likes_count": res.LikesCount})
}

// parseIngredients accepts a JSON list of {name, quantity} objects, or the
// same list encoded as a JSON string. Quantities may be strings or numbers.
func parseIngredients(raw json.RawMessage) ([]types.IngredientInput, error) {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) > 0 && raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("ingredientes inválidos: %w", err)
		}
		raw = json.RawMessage(encoded)
	}

	var items []struct {
		Name     string         `json:"name"`
		Quantity types.Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("ingredientes inválidos: %w", err)
	}
	out := make([]types.IngredientInput, 0, len(items))
	for _, it := range items {
		out = append(out, types.IngredientInput{Name: it.Name, Quantity: string(it.Quantity)})
	}
	return out, nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
