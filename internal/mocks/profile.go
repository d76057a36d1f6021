package mocks

import (
	"context"

	"github.com/chefcommunity/client/internal/types"
)

// GetProfile mocks the GetProfile method
func (m *MockAPI) GetProfile(ctx context.Context, token string, userID int64) (*types.ProfileAggregate, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProfileAggregate), args.Error(1)
}

// ToggleFollow mocks the ToggleFollow method
func (m *MockAPI) ToggleFollow(ctx context.Context, token string, userID int64) (*types.ToggleResult, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ToggleResult), args.Error(1)
}

// ListFavorites mocks the ListFavorites method
func (m *MockAPI) ListFavorites(ctx context.Context, token string) ([]types.Recipe, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// ListMealPlan mocks the ListMealPlan method
func (m *MockAPI) ListMealPlan(ctx context.Context, token string) ([]types.MealPlanEntry, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.MealPlanEntry), args.Error(1)
}

// AddMealPlan mocks the AddMealPlan method
func (m *MockAPI) AddMealPlan(ctx context.Context, token string, req types.MealPlanRequest) (*types.MealPlanEntry, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MealPlanEntry), args.Error(1)
}

// RemoveMealPlan mocks the RemoveMealPlan method
func (m *MockAPI) RemoveMealPlan(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

// GenerateShoppingList mocks the GenerateShoppingList method
func (m *MockAPI) GenerateShoppingList(ctx context.Context, token string) ([]types.ShoppingListItem, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ShoppingListItem), args.Error(1)
}

// ListCollections mocks the ListCollections method
func (m *MockAPI) ListCollections(ctx context.Context, token string) ([]types.Collection, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Collection), args.Error(1)
}

// CreateCollection mocks the CreateCollection method
func (m *MockAPI) CreateCollection(ctx context.Context, token string, req types.CollectionRequest) (*types.Collection, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Collection), args.Error(1)
}

// AddToCollection mocks the AddToCollection method
func (m *MockAPI) AddToCollection(ctx context.Context, token string, collectionID, recipeID int64) (*types.Collection, error) {
	args := m.Called(ctx, token, collectionID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Collection), args.Error(1)
}

// RemoveFromCollection mocks the RemoveFromCollection method
func (m *MockAPI) RemoveFromCollection(ctx context.Context, token string, collectionID, recipeID int64) (*types.Collection, error) {
	args := m.Called(ctx, token, collectionID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Collection), args.Error(1)
}
