package client

import (
	"context"
	"fmt"

	"github.com/chefcommunity/client/internal/types"
)

func (c *Client) ListMealPlan(ctx context.Context, token string) ([]types.MealPlanEntry, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var entries []types.MealPlanEntry
	if err := c.get(ctx, "/api/users/me/meal-plan", token, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) AddMealPlan(ctx context.Context, token string, req types.MealPlanRequest) (*types.MealPlanEntry, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var entry types.MealPlanEntry
	if err := c.post(ctx, "/api/users/me/meal-plan", token, req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) RemoveMealPlan(ctx context.Context, token string, id int64) error {
	if err := requireToken(token); err != nil {
		return err
	}
	return c.delete(ctx, fmt.Sprintf("/api/users/me/meal-plan/%d", id), token, nil)
}

// GenerateShoppingList aggregates the ingredients of every planned recipe.
func (c *Client) GenerateShoppingList(ctx context.Context, token string) ([]types.ShoppingListItem, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var items []types.ShoppingListItem
	if err := c.post(ctx, "/api/users/me/shopping-list/generate", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
