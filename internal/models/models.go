// Package models holds the records of the in-memory stub backend and the
// gorm model used for SQL session storage.
package models

import (
	"time"

	"github.com/chefcommunity/client/internal/types"
)

// User is an account registered with the stub backend.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Rol          types.Role
	Bio          string
	AvatarURL    string
	CreatedAt    time.Time
}

// Ingredient is the master record shared by every recipe using a name.
type Ingredient struct {
	ID   int64
	Name string
	Unit string
}

// RecipeIngredient links a recipe to an ingredient with a numeric amount.
type RecipeIngredient struct {
	IngredientID int64
	Quantity     float64
}

type Recipe struct {
	ID           int64
	Title        string
	Description  string
	Instructions string
	Category     string
	PrepTime     int
	Calories     int
	Difficulty   types.Difficulty
	MainImageURL string
	VideoURL     string
	AuthorID     int64
	Ingredients  []RecipeIngredient
	CreatedAt    time.Time
}

type Collection struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	RecipeIDs   []int64
}

type MealPlan struct {
	ID       int64
	UserID   int64
	RecipeID int64
	PlanDate time.Time
	MealTime types.MealTime
}

// RecipePatch carries the fields of a recipe update; nil fields are left
// untouched.
type RecipePatch struct {
	Title        *string
	Description  *string
	Instructions *string
	Category     *string
	VideoURL     *string
	MainImageURL *string
	Difficulty   *types.Difficulty
	PrepTime     *int
	Calories     *int
	Ingredients  *[]types.IngredientInput
}

const isoLayout = "2006-01-02T15:04:05.000000"
