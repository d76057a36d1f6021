package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/types"
)

// RecipeFields are the editable values of the recipe form.
type RecipeFields struct {
	Title        string
	Description  string
	Instructions string
	Category     string
	PrepTime     int
	Difficulty   types.Difficulty
	Calories     int
	Ingredients  []types.IngredientInput
	MainImage    *types.Attachment
	Video        *types.Attachment
}

// RecipeForm creates a recipe, or updates one when built from an existing
// recipe.
type RecipeForm struct {
	api      IRecipeAPI
	existing *types.Recipe

	mu         sync.Mutex
	fields     RecipeFields
	err        string
	submitting bool
}

// NewRecipeForm prefills the form from existing, or with defaults when
// existing is nil.
func NewRecipeForm(api IRecipeAPI, existing *types.Recipe) *RecipeForm {
	f := &RecipeForm{
		api: api,
		fields: RecipeFields{
			Category:    types.DefaultCategory,
			Difficulty:  types.DefaultDifficulty,
			Ingredients: []types.IngredientInput{},
		},
	}
	if existing == nil {
		return f
	}

	cp := *existing
	f.existing = &cp
	f.fields.Title = existing.Title
	f.fields.Description = existing.Description
	f.fields.Instructions = existing.Instructions
	if existing.Category != "" {
		f.fields.Category = existing.Category
	}
	if existing.Difficulty != "" {
		f.fields.Difficulty = existing.Difficulty
	}
	f.fields.PrepTime = existing.PrepTime
	f.fields.Calories = existing.Calories
	for _, ing := range existing.Ingredients {
		f.fields.Ingredients = append(f.fields.Ingredients, types.IngredientInput{
			Name:     ing.Name,
			Quantity: ing.Display(),
		})
	}
	return f
}

// IsEdit reports whether Submit updates an existing recipe.
func (f *RecipeForm) IsEdit() bool {
	return f.existing != nil
}

// Fields returns a copy of the current values.
func (f *RecipeForm) Fields() RecipeFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := f.fields
	cp.Ingredients = append([]types.IngredientInput(nil), f.fields.Ingredients...)
	return cp
}

// Update edits the values under the form's lock.
func (f *RecipeForm) Update(fn func(*RecipeFields)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.fields)
}

// AddIngredient appends a line when both trimmed values are non-empty.
func (f *RecipeForm) AddIngredient(name, quantity string) bool {
	name = strings.TrimSpace(name)
	quantity = strings.TrimSpace(quantity)
	if name == "" || quantity == "" {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Ingredients = append(f.fields.Ingredients, types.IngredientInput{Name: name, Quantity: quantity})
	return true
}

// RemoveIngredient drops the line at i. Out of range is a no-op.
func (f *RecipeForm) RemoveIngredient(i int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.fields.Ingredients) {
		return false
	}
	f.fields.Ingredients = append(f.fields.Ingredients[:i:i], f.fields.Ingredients[i+1:]...)
	return true
}

func (f *RecipeForm) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *RecipeForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit sends the form: multipart create for a new recipe, JSON update
// for an existing one. The returned recipe is the server's.
func (f *RecipeForm) Submit(ctx context.Context, token string) (*types.Recipe, error) {
	f.mu.Lock()
	if token == "" {
		f.err = MsgAuthLost
		f.mu.Unlock()
		return nil, client.ErrMissingToken
	}
	fields := f.fields
	fields.Ingredients = append([]types.IngredientInput(nil), f.fields.Ingredients...)
	f.err = ""
	f.submitting = true
	f.mu.Unlock()

	in := types.RecipeInput{
		Title:        fields.Title,
		Description:  fields.Description,
		Instructions: fields.Instructions,
		Category:     fields.Category,
		PrepTime:     fields.PrepTime,
		Difficulty:   fields.Difficulty,
		Calories:     fields.Calories,
		Ingredients:  fields.Ingredients,
	}
	if in.Ingredients == nil {
		in.Ingredients = []types.IngredientInput{}
	}

	var (
		saved *types.Recipe
		err   error
	)
	if f.existing != nil {
		in.MainImageURL = f.existing.MainImageURL
		in.VideoURL = f.existing.VideoURL
		saved, err = f.api.UpdateRecipe(ctx, token, f.existing.ID, in)
	} else {
		saved, err = f.api.CreateRecipe(ctx, token, in, fields.MainImage, fields.Video)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.err = inlineMessage(err, "")
		return nil, err
	}
	return saved, nil
}

// ReadAttachment loads the media file at path for upload. An empty path
// means no file.
func ReadAttachment(path string) (*types.Attachment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer %s: %w", path, err)
	}
	return &types.Attachment{Filename: filepath.Base(path), Body: bytes.NewReader(data)}, nil
}
