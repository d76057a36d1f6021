// Package service holds the view-state components of the client: the feed,
// the recipe form, the recipe detail, the profile aggregate and the modal
// dialogs. Components fetch through the API interfaces below, keep their
// own state behind a mutex, and never hold that lock across a request.
package service

import (
	"context"

	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/session"
	"github.com/chefcommunity/client/internal/types"
)

// IAuthAPI defines the authentication endpoints.
type IAuthAPI interface {
	Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error)
	Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error)
}

// IRecipeAPI defines the recipe endpoints.
type IRecipeAPI interface {
	ListRecipes(ctx context.Context, token string, filter types.RecipeFilter) ([]types.Recipe, error)
	GetRecipe(ctx context.Context, token string, id int64) (*types.Recipe, error)
	CreateRecipe(ctx context.Context, token string, in types.RecipeInput, mainImage, video *types.Attachment) (*types.Recipe, error)
	UpdateRecipe(ctx context.Context, token string, id int64, in types.RecipeInput) (*types.Recipe, error)
	DeleteRecipe(ctx context.Context, token string, id int64) error
	ToggleLike(ctx context.Context, token string, id int64) (*types.ToggleResult, error)
}

// IUserAPI defines the profile and follow endpoints.
type IUserAPI interface {
	GetProfile(ctx context.Context, token string, userID int64) (*types.ProfileAggregate, error)
	ToggleFollow(ctx context.Context, token string, userID int64) (*types.ToggleResult, error)
	ListFavorites(ctx context.Context, token string) ([]types.Recipe, error)
}

// IPlannerAPI defines the meal plan and shopping list endpoints.
type IPlannerAPI interface {
	ListMealPlan(ctx context.Context, token string) ([]types.MealPlanEntry, error)
	AddMealPlan(ctx context.Context, token string, req types.MealPlanRequest) (*types.MealPlanEntry, error)
	RemoveMealPlan(ctx context.Context, token string, id int64) error
	GenerateShoppingList(ctx context.Context, token string) ([]types.ShoppingListItem, error)
}

// ICollectionAPI defines the collection endpoints.
type ICollectionAPI interface {
	ListCollections(ctx context.Context, token string) ([]types.Collection, error)
	CreateCollection(ctx context.Context, token string, req types.CollectionRequest) (*types.Collection, error)
	AddToCollection(ctx context.Context, token string, collectionID, recipeID int64) (*types.Collection, error)
	RemoveFromCollection(ctx context.Context, token string, collectionID, recipeID int64) (*types.Collection, error)
}

// IDetailAPI is what the recipe detail view calls.
type IDetailAPI interface {
	IRecipeAPI
	IPlannerAPI
}

// IProfileAPI is what the profile view calls.
type IProfileAPI interface {
	IUserAPI
	IRecipeAPI
	IPlannerAPI
	ICollectionAPI
}

// IAPI is the whole REST surface.
type IAPI interface {
	IAuthAPI
	IProfileAPI
}

// Ensure the REST client implements IAPI
var _ IAPI = (*client.Client)(nil)

// SessionSource is the read side of the session store.
type SessionSource interface {
	Current() *types.Session
	Subscribe(fn session.Listener) func()
}

// Authenticator receives a freshly signed-in session. The view router
// implements it.
type Authenticator interface {
	Authenticated(ctx context.Context, s types.Session) error
}

// Lease tells a component whether the view it was mounted for is still
// showing. router.Lease implements it.
type Lease interface {
	Alive() bool
}

type alwaysAlive struct{}

func (alwaysAlive) Alive() bool { return true }

func leaseOrAlive(l Lease) Lease {
	if l == nil {
		return alwaysAlive{}
	}
	return l
}
