package types

import (
	"sort"
	"time"
)

// DateLayout is the wire format of plan dates.
const DateLayout = "2006-01-02"

// MealTime is the slot of the day a recipe is planned for.
type MealTime string

const (
	MealBreakfast MealTime = "Desayuno"
	MealLunch     MealTime = "Comida"
	MealDinner    MealTime = "Cena"
)

// MealTimes lists the slots in display order.
var MealTimes = []MealTime{MealBreakfast, MealLunch, MealDinner}

const DefaultMealTime = MealLunch

// Valid reports whether m is one of the three slots.
func (m MealTime) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// MealPlanEntry is a recipe scheduled on a date.
type MealPlanEntry struct {
	ID       int64    `json:"id"`
	UserID   int64    `json:"user_id"`
	RecipeID int64    `json:"recipe_id"`
	PlanDate string   `json:"plan_date"`
	MealTime MealTime `json:"meal_time"`
	Recipe   *Recipe  `json:"recipe,omitempty"`
}

// MealPlanRequest is the body of POST /api/users/me/meal-plan.
type MealPlanRequest struct {
	RecipeID int64    `json:"recipe_id"`
	PlanDate string   `json:"plan_date"`
	MealTime MealTime `json:"meal_time"`
}

// DayGroup holds the entries planned for one calendar date.
type DayGroup struct {
	Date    string          `json:"date"`
	Entries []MealPlanEntry `json:"entries"`
}

// GroupMealPlan groups entries by date. Parseable dates come first in
// ascending order; anything else keeps its first-seen order at the end.
// Entries keep their input order within a day.
func GroupMealPlan(entries []MealPlanEntry) []DayGroup {
	index := make(map[string]int)
	var groups []DayGroup
	for _, e := range entries {
		i, ok := index[e.PlanDate]
		if !ok {
			i = len(groups)
			index[e.PlanDate] = i
			groups = append(groups, DayGroup{Date: e.PlanDate})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		ta, errA := time.Parse(DateLayout, groups[a].Date)
		tb, errB := time.Parse(DateLayout, groups[b].Date)
		switch {
		case errA == nil && errB == nil:
			return ta.Before(tb)
		case errA == nil:
			return true
		default:
			return false
		}
	})
	return groups
}

// ShoppingListItem is one aggregated ingredient to buy.
type ShoppingListItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Status   string `json:"status"`
}

// Collection is a named, user-owned set of recipes.
type Collection struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RecipeCount int      `json:"recipe_count"`
	Recipes     []Recipe `json:"recipes,omitempty"`
}

// CollectionRequest is the body of POST /api/users/me/collections.
type CollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
