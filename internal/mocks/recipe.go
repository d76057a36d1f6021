package mocks

import (
	"context"

	"github.com/chefcommunity/client/internal/types"
)

// ListRecipes mocks the ListRecipes method
func (m *MockAPI) ListRecipes(ctx context.Context, token string, filter types.RecipeFilter) ([]types.Recipe, error) {
	args := m.Called(ctx, token, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockAPI) GetRecipe(ctx context.Context, token string, id int64) (*types.Recipe, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockAPI) CreateRecipe(ctx context.Context, token string, in types.RecipeInput, mainImage, video *types.Attachment) (*types.Recipe, error) {
	args := m.Called(ctx, token, in, mainImage, video)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockAPI) UpdateRecipe(ctx context.Context, token string, id int64, in types.RecipeInput) (*types.Recipe, error) {
	args := m.Called(ctx, token, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockAPI) DeleteRecipe(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

// ToggleLike mocks the ToggleLike method
func (m *MockAPI) ToggleLike(ctx context.Context, token string, id int64) (*types.ToggleResult, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ToggleResult), args.Error(1)
}
