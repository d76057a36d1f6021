package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/chefcommunity/client/internal/types"
)

// --- collections ---

func (s *Store) Collections(userID int64) []types.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectionsOf(userID)
}

func (s *Store) collectionsOf(userID int64) []types.Collection {
	var own []*Collection
	for _, c := range s.collections {
		if c.UserID == userID {
			own = append(own, c)
		}
	}
	sort.Slice(own, func(i, j int) bool { return own[i].ID < own[j].ID })

	out := make([]types.Collection, 0, len(own))
	for _, c := range own {
		out = append(out, s.collectionDTO(c))
	}
	return out
}

func (s *Store) CreateCollection(userID int64, name, description string) (types.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return types.Collection{}, ErrNotFound
	}
	c := &Collection{ID: s.nextID("collection"), UserID: userID, Name: name, Description: description}
	s.collections[c.ID] = c
	return s.collectionDTO(c), nil
}

// AddToCollection is idempotent: adding a member twice keeps one copy.
func (s *Store) AddToCollection(userID, collectionID, recipeID int64) (types.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionID]
	if !ok || c.UserID != userID {
		return types.Collection{}, ErrNotFound
	}
	if _, ok := s.recipes[recipeID]; !ok {
		return types.Collection{}, ErrNotFound
	}
	for _, id := range c.RecipeIDs {
		if id == recipeID {
			return s.collectionDTO(c), nil
		}
	}
	c.RecipeIDs = append(c.RecipeIDs, recipeID)
	return s.collectionDTO(c), nil
}

func (s *Store) RemoveFromCollection(userID, collectionID, recipeID int64) (types.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionID]
	if !ok || c.UserID != userID {
		return types.Collection{}, ErrNotFound
	}
	if _, ok := s.recipes[recipeID]; !ok {
		return types.Collection{}, ErrNotFound
	}
	c.RecipeIDs = without(c.RecipeIDs, recipeID)
	return s.collectionDTO(c), nil
}

func (s *Store) collectionDTO(c *Collection) types.Collection {
	dto := types.Collection{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Recipes:     []types.Recipe{},
	}
	for _, id := range c.RecipeIDs {
		if r, ok := s.recipes[id]; ok {
			dto.Recipes = append(dto.Recipes, s.recipeDTO(r, true))
		}
	}
	dto.RecipeCount = len(dto.Recipes)
	return dto
}

// --- meal plan ---

// MealPlan lists userID's entries by date.
func (s *Store) MealPlan(userID int64) []types.MealPlanEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := s.plansOf(userID)
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].PlanDate.Before(plans[j].PlanDate)
	})

	out := make([]types.MealPlanEntry, 0, len(plans))
	for _, p := range plans {
		out = append(out, s.mealPlanDTO(p))
	}
	return out
}

// plansOf returns userID's entries in insertion order.
func (s *Store) plansOf(userID int64) []*MealPlan {
	var plans []*MealPlan
	for _, p := range s.mealPlans {
		if p.UserID == userID {
			plans = append(plans, p)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	return plans
}

func (s *Store) AddMealPlan(userID int64, req types.MealPlanRequest) (types.MealPlanEntry, error) {
	date, err := time.Parse(types.DateLayout, req.PlanDate)
	if err != nil {
		return types.MealPlanEntry{}, fmt.Errorf("%w: plan_date %q", ErrInvalid, req.PlanDate)
	}
	if !req.MealTime.Valid() {
		return types.MealPlanEntry{}, fmt.Errorf("%w: meal_time %q", ErrInvalid, req.MealTime)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[req.RecipeID]; !ok {
		return types.MealPlanEntry{}, ErrNotFound
	}
	p := &MealPlan{
		ID:       s.nextID("meal_plan"),
		UserID:   userID,
		RecipeID: req.RecipeID,
		PlanDate: date,
		MealTime: req.MealTime,
	}
	s.mealPlans[p.ID] = p
	return s.mealPlanDTO(p), nil
}

func (s *Store) RemoveMealPlan(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.mealPlans[id]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	delete(s.mealPlans, id)
	return nil
}

func (s *Store) mealPlanDTO(p *MealPlan) types.MealPlanEntry {
	dto := types.MealPlanEntry{
		ID:       p.ID,
		UserID:   p.UserID,
		RecipeID: p.RecipeID,
		PlanDate: p.PlanDate.Format(types.DateLayout),
		MealTime: p.MealTime,
	}
	if r, ok := s.recipes[p.RecipeID]; ok {
		recipe := s.recipeDTO(r, false)
		dto.Recipe = &recipe
	}
	return dto
}

// --- shopping list ---

// ShoppingList sums the ingredients of every planned recipe, once per
// planned entry, and converts units for display.
func (s *Store) ShoppingList(userID int64) []types.ShoppingListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type need struct {
		name string
		qty  float64
		unit string
	}
	var order []int64
	needed := make(map[int64]*need)

	for _, p := range s.plansOf(userID) {
		r, ok := s.recipes[p.RecipeID]
		if !ok {
			continue
		}
		for _, ri := range r.Ingredients {
			if n, ok := needed[ri.IngredientID]; ok {
				n.qty += ri.Quantity
				continue
			}
			ing := s.ingByID[ri.IngredientID]
			if ing == nil {
				continue
			}
			needed[ri.IngredientID] = &need{name: ing.Name, qty: ri.Quantity, unit: ing.Unit}
			order = append(order, ri.IngredientID)
		}
	}

	items := []types.ShoppingListItem{}
	for _, id := range order {
		n := needed[id]
		if n.qty <= 0 {
			continue
		}
		qty, unit := ConvertUnit(n.qty, n.unit)
		items = append(items, types.ShoppingListItem{
			Name:     n.name,
			Quantity: FormatQuantity(qty) + " " + unit,
			Status:   "needed",
		})
	}
	return items
}
