package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/mocks"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/types"
)

var (
	owner    = types.UserSummary{ID: 1, Username: "ana", Rol: types.RoleChef}
	stranger = types.UserSummary{ID: 2, Username: "luis"}
)

func aggregate(followers int, following bool, collections ...types.Collection) *types.ProfileAggregate {
	return &types.ProfileAggregate{
		User:        types.UserDetail{ID: 1, Username: "ana", FollowersCount: followers},
		IsFollowing: following,
		Recipes:     []types.Recipe{{ID: 3, Title: "Porridge"}},
		Collections: collections,
	}
}

func loadedProfile(t *testing.T, api *mocks.MockAPI, viewer *types.Session, tab router.Tab) *Profile {
	t.Helper()
	p := NewProfile(api, ProfileParams{UserID: 1, Session: viewer, InitialTab: tab})
	require.NoError(t, p.Load(context.Background()))
	require.Equal(t, ProfileReady, p.Status())
	return p
}

func TestProfile_LoadErrorAndRetry(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "", int64(1)).
		Return(nil, &client.Error{StatusCode: 404, ServerError: "Usuario no encontrado"}).Once()
	api.On("GetProfile", mock.Anything, "", int64(1)).Return(aggregate(0, false), nil).Once()

	p := NewProfile(api, ProfileParams{UserID: 1})
	assert.Equal(t, ProfileLoading, p.Status())

	require.Error(t, p.Load(context.Background()))
	assert.Equal(t, ProfileError, p.Status())
	assert.Equal(t, "Usuario no encontrado", p.LoadErr())

	require.NoError(t, p.Retry(context.Background()))
	assert.Equal(t, ProfileReady, p.Status())
	assert.Equal(t, router.TabRecipes, p.Tab())
	api.AssertExpectations(t)
}

func TestProfile_StaleLoadDropped(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "", int64(1)).Return(aggregate(0, false), nil)

	p := NewProfile(api, ProfileParams{UserID: 1, Lease: &fakeLease{alive: false}})
	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, ProfileLoading, p.Status())
}

func TestProfile_OwnerTabs(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil)
	api.On("ListMealPlan", mock.Anything, "tok").Return([]types.MealPlanEntry{
		{ID: 8, PlanDate: "2026-10-21", MealTime: types.MealDinner},
		{ID: 7, PlanDate: "2026-10-20", MealTime: types.MealBreakfast},
	}, nil)
	api.On("ListFavorites", mock.Anything, "tok").Return([]types.Recipe{{ID: 3}, {ID: 7}}, nil)

	p := loadedProfile(t, api, sessionFor(owner), router.TabMealPlan)
	assert.Equal(t, []router.Tab{router.TabRecipes, router.TabCollections, router.TabMealPlan, router.TabFavorites}, p.Tabs())
	assert.Equal(t, router.TabMealPlan, p.Tab())

	days := p.MealPlan()
	require.Len(t, days, 2)
	assert.Equal(t, "2026-10-20", days[0].Date)

	require.NoError(t, p.SelectTab(context.Background(), router.TabFavorites))
	require.NoError(t, p.SelectTab(context.Background(), router.TabMealPlan))
	require.NoError(t, p.SelectTab(context.Background(), router.TabRecipes))
	assert.Len(t, p.Favorites(), 2)

	// the aggregate is fetched once; tab data each time the tab opens
	api.AssertNumberOfCalls(t, "GetProfile", 1)
	api.AssertNumberOfCalls(t, "ListMealPlan", 2)
	api.AssertNumberOfCalls(t, "ListFavorites", 1)
}

func TestProfile_VisitorTabs(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil)

	p := loadedProfile(t, api, sessionFor(stranger), router.TabFavorites)
	assert.Equal(t, router.TabRecipes, p.Tab())
	assert.Equal(t, []router.Tab{router.TabRecipes, router.TabCollections}, p.Tabs())
	assert.ErrorIs(t, p.SelectTab(context.Background(), router.TabMealPlan), ErrTabUnavailable)
	api.AssertNotCalled(t, "ListMealPlan", mock.Anything, mock.Anything)
}

func TestProfile_SelectTabClosesCollection(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "", int64(1)).Return(aggregate(0, false, types.Collection{ID: 4, Name: "Cenas"}), nil)

	p := loadedProfile(t, api, nil, "")
	require.NoError(t, p.SelectTab(context.Background(), router.TabCollections))
	p.OpenCollection(p.Collections()[0])
	require.NotNil(t, p.OpenedCollection())

	require.NoError(t, p.SelectTab(context.Background(), router.TabCollections))
	assert.Nil(t, p.OpenedCollection())
}

func TestProfile_FollowRoundTrip(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(4, false), nil)
	api.On("ToggleFollow", mock.Anything, "tok", int64(1)).
		Return(&types.ToggleResult{Action: types.ActionFollowed, UserID: 1}, nil).Once()
	api.On("ToggleFollow", mock.Anything, "tok", int64(1)).
		Return(&types.ToggleResult{Action: types.ActionUnfollowed, UserID: 1}, nil).Once()

	p := loadedProfile(t, api, sessionFor(stranger), "")

	require.NoError(t, p.ToggleFollow(context.Background()))
	assert.True(t, p.Data().IsFollowing)
	assert.Equal(t, 5, p.Data().User.FollowersCount)

	require.NoError(t, p.ToggleFollow(context.Background()))
	assert.False(t, p.Data().IsFollowing)
	assert.Equal(t, 4, p.Data().User.FollowersCount)
	api.AssertExpectations(t)
}

func TestProfile_FollowPreconditions(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, mock.Anything, int64(1)).Return(aggregate(0, false), nil)

	anon := loadedProfile(t, api, nil, "")
	assert.ErrorIs(t, anon.ToggleFollow(context.Background()), client.ErrMissingToken)
	assert.Equal(t, MsgLoginToFollow, anon.Err())

	self := loadedProfile(t, api, sessionFor(owner), "")
	assert.ErrorIs(t, self.ToggleFollow(context.Background()), ErrOwnProfile)

	api.AssertNotCalled(t, "ToggleFollow", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfile_UnlikeFavorite(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil)
	api.On("ListFavorites", mock.Anything, "tok").Return([]types.Recipe{{ID: 3}, {ID: 7}}, nil)
	api.On("ToggleLike", mock.Anything, "tok", int64(3)).Return(&types.ToggleResult{Action: types.ActionUnliked}, nil)

	p := loadedProfile(t, api, sessionFor(owner), router.TabFavorites)
	require.NoError(t, p.UnlikeFavorite(context.Background(), 3))
	assert.Equal(t, []types.Recipe{{ID: 7}}, p.Favorites())
}

func TestProfile_RemoveMealPlanEntry(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil)
	api.On("ListMealPlan", mock.Anything, "tok").Return([]types.MealPlanEntry{
		{ID: 7, PlanDate: "2026-10-20"}, {ID: 8, PlanDate: "2026-10-20"},
	}, nil)
	api.On("RemoveMealPlan", mock.Anything, "tok", int64(7)).Return(nil).Once()

	p := loadedProfile(t, api, sessionFor(owner), router.TabMealPlan)
	dialog, err := p.RequestRemoveMealPlan(7)
	require.NoError(t, err)
	assert.Equal(t, "¿Eliminar Comida?", dialog.Title())
	assert.Equal(t, "Sí, Eliminar", dialog.ConfirmLabel())
	assert.Same(t, dialog, p.Dialog())

	require.NoError(t, dialog.Confirm(context.Background()))
	assert.Nil(t, p.Dialog())
	days := p.MealPlan()
	require.Len(t, days, 1)
	require.Len(t, days[0].Entries, 1)
	assert.Equal(t, int64(8), days[0].Entries[0].ID)
	api.AssertExpectations(t)
}

func TestProfile_ShoppingList(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil)
	api.On("ListMealPlan", mock.Anything, "tok").Return([]types.MealPlanEntry{}, nil).Once()
	api.On("ListMealPlan", mock.Anything, "tok").Return([]types.MealPlanEntry{{ID: 1, PlanDate: "2026-10-20"}}, nil).Once()
	items := []types.ShoppingListItem{{Name: "Harina", Quantity: "250 g", Status: "needed"}}
	api.On("GenerateShoppingList", mock.Anything, "tok").Return(items, nil).Once()

	p := loadedProfile(t, api, sessionFor(owner), router.TabMealPlan)
	assert.False(t, p.CanGenerateShoppingList())
	_, err := p.GenerateShoppingList(context.Background())
	assert.ErrorIs(t, err, ErrEmptyMealPlan)

	require.NoError(t, p.SelectTab(context.Background(), router.TabMealPlan))
	got, err := p.GenerateShoppingList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.Equal(t, items, p.ShoppingList())

	p.CloseShoppingList()
	assert.Nil(t, p.ShoppingList())
	api.AssertExpectations(t)
}

func TestProfile_SelectionMode(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil)
	api.On("ListFavorites", mock.Anything, "tok").Return([]types.Recipe{{ID: 3}, {ID: 7}}, nil)

	var opened []int64
	p := NewProfile(api, ProfileParams{
		UserID: 1, Session: sessionFor(owner), InitialTab: router.TabRecipes,
		OnRecipe: func(r types.Recipe) { opened = append(opened, r.ID) },
	})
	require.NoError(t, p.Load(context.Background()))

	assert.ErrorIs(t, p.ToggleSelectionMode(), ErrSelectionOutside)
	require.NoError(t, p.SelectTab(context.Background(), router.TabFavorites))
	require.NoError(t, p.ToggleSelectionMode())
	assert.True(t, p.Selecting())

	p.ClickRecipe(types.Recipe{ID: 7})
	p.ClickRecipe(types.Recipe{ID: 3})
	p.ClickRecipe(types.Recipe{ID: 9})
	p.ClickRecipe(types.Recipe{ID: 9})
	assert.Equal(t, []int64{7, 3}, p.Selected())
	assert.Empty(t, opened)

	require.NoError(t, p.ToggleSelectionMode())
	assert.Empty(t, p.Selected())
	p.ClickRecipe(types.Recipe{ID: 3})
	assert.Equal(t, []int64{3}, opened)
}

func selectFavorites(t *testing.T, p *Profile, ids ...int64) {
	t.Helper()
	require.NoError(t, p.SelectTab(context.Background(), router.TabFavorites))
	require.NoError(t, p.ToggleSelectionMode())
	for _, id := range ids {
		p.ClickRecipe(types.Recipe{ID: id})
	}
}

func TestProfile_SaveNewCollection(t *testing.T) {
	api := new(mocks.MockAPI)
	desayunos := types.Collection{ID: 12, Name: "Desayunos"}
	withThree := types.Collection{ID: 12, Name: "Desayunos", RecipeCount: 1}
	withBoth := types.Collection{ID: 12, Name: "Desayunos", RecipeCount: 2, Recipes: []types.Recipe{{ID: 3}, {ID: 7}}}

	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil).Once()
	api.On("ListFavorites", mock.Anything, "tok").Return([]types.Recipe{{ID: 3}, {ID: 7}}, nil)
	api.On("CreateCollection", mock.Anything, "tok", types.CollectionRequest{Name: "Desayunos"}).Return(&desayunos, nil).Once()
	addThree := api.On("AddToCollection", mock.Anything, "tok", int64(12), int64(3)).Return(&withThree, nil).Once()
	api.On("AddToCollection", mock.Anything, "tok", int64(12), int64(7)).Return(&withBoth, nil).Once().NotBefore(addThree)
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false, withBoth), nil).Once()

	p := loadedProfile(t, api, sessionFor(owner), "")
	selectFavorites(t, p, 3, 7)

	modal, err := p.OpenCollectionModal()
	require.NoError(t, err)
	assert.Equal(t, []CollectionMode{ModeNew}, modal.Modes())
	assert.ErrorIs(t, modal.SetMode(ModeExisting), ErrModeOffered)

	_, err = p.SaveCollection(context.Background())
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.NotEmpty(t, modal.Err())

	modal.SetName("  Desayunos ")
	saved, err := p.SaveCollection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, saved.RecipeCount)

	assert.Equal(t, router.TabCollections, p.Tab())
	assert.Nil(t, p.Modal())
	assert.False(t, p.Selecting())
	assert.Empty(t, p.Selected())
	require.Len(t, p.Collections(), 1)

	notice := p.Dialog()
	require.NotNil(t, notice)
	assert.Equal(t, "¡Éxito!", notice.Title())
	assert.Equal(t, "Recetas añadidas a \"Desayunos\" correctamente.", notice.Message())
	assert.Equal(t, "Genial", notice.ConfirmLabel())
	assert.False(t, notice.ShowCancel())
	api.AssertExpectations(t)
}

func TestProfile_SaveToExistingCollection(t *testing.T) {
	api := new(mocks.MockAPI)
	cenas := types.Collection{ID: 4, Name: "Cenas"}
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false, cenas), nil)
	api.On("ListFavorites", mock.Anything, "tok").Return([]types.Recipe{{ID: 3}}, nil)
	api.On("AddToCollection", mock.Anything, "tok", int64(4), int64(3)).Return(&cenas, nil).Once()

	p := loadedProfile(t, api, sessionFor(owner), "")
	selectFavorites(t, p, 3)

	modal, err := p.OpenCollectionModal()
	require.NoError(t, err)
	require.NoError(t, modal.SetMode(ModeExisting))

	_, err = p.SaveCollection(context.Background())
	assert.ErrorIs(t, err, ErrNoCollection)
	assert.ErrorIs(t, modal.Choose(99), ErrNoCollection)
	require.NoError(t, modal.Choose(4))

	_, err = p.SaveCollection(context.Background())
	require.NoError(t, err)
	api.AssertNotCalled(t, "CreateCollection", mock.Anything, mock.Anything, mock.Anything)
	api.AssertExpectations(t)
}

func TestProfile_SaveCollectionPartialFailure(t *testing.T) {
	api := new(mocks.MockAPI)
	desayunos := types.Collection{ID: 12, Name: "Desayunos"}
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil).Once()
	api.On("ListFavorites", mock.Anything, "tok").Return([]types.Recipe{{ID: 3}, {ID: 7}, {ID: 9}}, nil)
	api.On("CreateCollection", mock.Anything, "tok", mock.Anything).Return(&desayunos, nil)
	api.On("AddToCollection", mock.Anything, "tok", int64(12), int64(3)).Return(&desayunos, nil)
	api.On("AddToCollection", mock.Anything, "tok", int64(12), int64(7)).
		Return(nil, &client.Error{StatusCode: 404, ServerError: "Receta no encontrada"})

	p := loadedProfile(t, api, sessionFor(owner), "")
	selectFavorites(t, p, 3, 7, 9)
	modal, err := p.OpenCollectionModal()
	require.NoError(t, err)
	modal.SetName("Desayunos")

	_, err = p.SaveCollection(context.Background())
	var perr *PartialAddError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, []int64{3}, perr.Added)
	assert.Equal(t, int64(7), perr.Failed)
	assert.Equal(t, 3, perr.Total)
	assert.Equal(t, "Desayunos", perr.Collection.Name)
	assert.Contains(t, modal.Err(), MsgCollectionFailed)
	assert.Contains(t, modal.Err(), "Receta no encontrada")
	assert.Contains(t, modal.Err(), "se añadieron 1 de 3")

	// the modal now targets the created collection and only the
	// remaining recipes stay selected
	assert.Same(t, modal, p.Modal())
	assert.Equal(t, ModeExisting, modal.Mode())
	assert.Equal(t, int64(12), modal.Chosen())
	assert.Equal(t, []int64{7, 9}, p.Selected())
	api.AssertNotCalled(t, "AddToCollection", mock.Anything, "tok", int64(12), int64(9))
	api.AssertNumberOfCalls(t, "GetProfile", 1)
}

func TestProfile_SaveCollectionRetryResumes(t *testing.T) {
	api := new(mocks.MockAPI)
	desayunos := types.Collection{ID: 12, Name: "Desayunos"}
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil).Once()
	api.On("ListFavorites", mock.Anything, "tok").Return([]types.Recipe{{ID: 3}, {ID: 7}, {ID: 9}}, nil)
	api.On("CreateCollection", mock.Anything, "tok", mock.Anything).Return(&desayunos, nil).Once()
	api.On("AddToCollection", mock.Anything, "tok", int64(12), int64(3)).Return(&desayunos, nil).Once()
	api.On("AddToCollection", mock.Anything, "tok", int64(12), int64(7)).
		Return(nil, &client.Error{StatusCode: 500, ServerError: "boom"}).Once()
	api.On("AddToCollection", mock.Anything, "tok", int64(12), int64(7)).Return(&desayunos, nil).Once()
	api.On("AddToCollection", mock.Anything, "tok", int64(12), int64(9)).Return(&desayunos, nil).Once()

	p := loadedProfile(t, api, sessionFor(owner), "")
	selectFavorites(t, p, 3, 7, 9)
	modal, err := p.OpenCollectionModal()
	require.NoError(t, err)
	modal.SetName("Desayunos")

	_, err = p.SaveCollection(context.Background())
	var perr *PartialAddError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, modal.Err(), "boom")

	withDesayunos := aggregate(0, false, types.Collection{ID: 12, Name: "Desayunos", RecipeCount: 3})
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(withDesayunos, nil).Once()

	saved, err := p.SaveCollection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Desayunos", saved.Name)
	assert.Nil(t, p.Modal())
	assert.Empty(t, p.Selected())
	assert.Equal(t, router.TabCollections, p.Tab())
	assert.Empty(t, p.Err())
	require.NotNil(t, p.Dialog())
	assert.Equal(t, VariantSuccess, p.Dialog().Variant())

	api.AssertNumberOfCalls(t, "CreateCollection", 1)
	api.AssertNumberOfCalls(t, "AddToCollection", 4)
	api.AssertExpectations(t)
}

func TestProfile_SaveCollectionReloadFailure(t *testing.T) {
	api := new(mocks.MockAPI)
	desayunos := types.Collection{ID: 12, Name: "Desayunos", RecipeCount: 1, Recipes: []types.Recipe{{ID: 3}}}
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil).Once()
	api.On("GetProfile", mock.Anything, "tok", int64(1)).
		Return(nil, &client.Error{StatusCode: 500, ServerError: "caído"}).Once()
	api.On("ListFavorites", mock.Anything, "tok").Return([]types.Recipe{{ID: 3}}, nil)
	api.On("CreateCollection", mock.Anything, "tok", mock.Anything).Return(&types.Collection{ID: 12, Name: "Desayunos"}, nil)
	api.On("AddToCollection", mock.Anything, "tok", int64(12), int64(3)).Return(&desayunos, nil)

	p := loadedProfile(t, api, sessionFor(owner), "")
	selectFavorites(t, p, 3)
	modal, err := p.OpenCollectionModal()
	require.NoError(t, err)
	modal.SetName("Desayunos")

	_, err = p.SaveCollection(context.Background())
	require.NoError(t, err)
	assert.Contains(t, p.Err(), MsgReloadFailed)
	assert.Contains(t, p.Err(), "caído")
	assert.Equal(t, router.TabCollections, p.Tab())
	require.Len(t, p.Collections(), 1)
	assert.Equal(t, 1, p.Collections()[0].RecipeCount)
	require.NotNil(t, p.Dialog())
	assert.Equal(t, VariantSuccess, p.Dialog().Variant())
}

func TestProfile_StaleResultsLeaveStateAlone(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false), nil)
	api.On("ListMealPlan", mock.Anything, "tok").Return([]types.MealPlanEntry{
		{ID: 7, PlanDate: "2026-10-20", MealTime: types.MealBreakfast},
	}, nil).Once()
	api.On("ListMealPlan", mock.Anything, "tok").
		Return(nil, &client.Error{StatusCode: 500, ServerError: "boom"}).Once()
	api.On("RemoveMealPlan", mock.Anything, "tok", int64(7)).Return(nil)

	lease := &fakeLease{alive: true}
	p := NewProfile(api, ProfileParams{UserID: 1, Session: sessionFor(owner), InitialTab: router.TabMealPlan, Lease: lease})
	require.NoError(t, p.Load(context.Background()))
	require.Len(t, p.MealPlan(), 1)

	dialog, err := p.RequestRemoveMealPlan(7)
	require.NoError(t, err)

	lease.alive = false
	require.NoError(t, dialog.Confirm(context.Background()))
	assert.Len(t, p.MealPlan(), 1)

	assert.Error(t, p.SelectTab(context.Background(), router.TabMealPlan))
	assert.Empty(t, p.Err())
}

func TestProfile_RemoveFromOpenCollection(t *testing.T) {
	api := new(mocks.MockAPI)
	col := types.Collection{ID: 4, Name: "Cenas", RecipeCount: 2, Recipes: []types.Recipe{{ID: 3}, {ID: 7}}}
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false, col), nil).Once()
	api.On("RemoveFromCollection", mock.Anything, "tok", int64(4), int64(3)).Return(&col, nil).Once()

	p := loadedProfile(t, api, sessionFor(owner), router.TabCollections)
	p.OpenCollection(p.Collections()[0])

	_, err := p.RequestRemoveFromCollection(99)
	assert.ErrorIs(t, err, ErrNotInSelection)

	dialog, err := p.RequestRemoveFromCollection(3)
	require.NoError(t, err)
	assert.Equal(t, "¿Quitar receta de esta colección?", dialog.Message())
	require.NoError(t, dialog.Confirm(context.Background()))

	open := p.OpenedCollection()
	require.NotNil(t, open)
	assert.Equal(t, 1, open.RecipeCount)
	assert.Equal(t, []types.Recipe{{ID: 7}}, open.Recipes)
	assert.Equal(t, 1, p.Collections()[0].RecipeCount)

	p.CloseCollection()
	assert.Nil(t, p.OpenedCollection())
	api.AssertNumberOfCalls(t, "GetProfile", 1)
}

func TestProfile_VisitorCannotManage(t *testing.T) {
	api := new(mocks.MockAPI)
	col := types.Collection{ID: 4, Name: "Cenas", Recipes: []types.Recipe{{ID: 3}}}
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false, col), nil)

	p := loadedProfile(t, api, sessionFor(stranger), "")
	p.OpenCollection(col)

	_, err := p.RequestRemoveFromCollection(3)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = p.RequestRemoveMealPlan(1)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.ErrorIs(t, p.ToggleSelectionMode(), ErrNotOwner)
	_, err = p.OpenCollectionModal()
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestProfile_StaleCollectionRemovalKeepsRecipe(t *testing.T) {
	api := new(mocks.MockAPI)
	col := types.Collection{ID: 4, Name: "Cenas", RecipeCount: 1, Recipes: []types.Recipe{{ID: 3}}}
	api.On("GetProfile", mock.Anything, "tok", int64(1)).Return(aggregate(0, false, col), nil)
	api.On("RemoveFromCollection", mock.Anything, "tok", int64(4), int64(3)).Return(&col, nil)

	lease := &fakeLease{alive: true}
	p := NewProfile(api, ProfileParams{UserID: 1, Session: sessionFor(owner), InitialTab: router.TabCollections, Lease: lease})
	require.NoError(t, p.Load(context.Background()))
	p.OpenCollection(p.Collections()[0])

	dialog, err := p.RequestRemoveFromCollection(3)
	require.NoError(t, err)
	lease.alive = false
	require.NoError(t, dialog.Confirm(context.Background()))

	assert.Equal(t, 1, p.OpenedCollection().RecipeCount)
	assert.Equal(t, 1, p.Collections()[0].RecipeCount)
}
