package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/mocks"
	"github.com/chefcommunity/client/internal/types"
)

type fakeLease struct{ alive bool }

func (l *fakeLease) Alive() bool { return l.alive }

var flan = types.Recipe{
	ID: 5, Title: "Flan", AuthorID: 1, Author: "ana", AuthorAvatar: "/a.png",
	Instructions: "Calentar la leche\r\n\r\n  \nHornear", LikesCount: 2,
}

func sessionFor(u types.UserSummary) *types.Session {
	return &types.Session{User: u, Token: "tok"}
}

func TestRecipeDetail_Steps(t *testing.T) {
	d := NewRecipeDetail(new(mocks.MockAPI), DetailParams{Recipe: flan})
	steps := d.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, types.Step{Number: 2, Title: "Paso 2", Text: "Hornear"}, steps[1])
}

func TestRecipeDetail_ToggleLikeRoundTrip(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("ToggleLike", mock.Anything, "tok", int64(5)).
		Return(&types.ToggleResult{Action: types.ActionLiked, LikesCount: 3}, nil).Once()
	api.On("ToggleLike", mock.Anything, "tok", int64(5)).
		Return(&types.ToggleResult{Action: types.ActionUnliked, LikesCount: 2}, nil).Once()

	d := NewRecipeDetail(api, DetailParams{Recipe: flan, Session: sessionFor(types.UserSummary{ID: 2})})

	require.NoError(t, d.ToggleLike(context.Background()))
	assert.True(t, d.Liked())
	assert.Equal(t, 3, d.LikesCount())

	require.NoError(t, d.ToggleLike(context.Background()))
	assert.False(t, d.Liked())
	assert.Equal(t, 2, d.LikesCount())
	api.AssertExpectations(t)
}

func TestRecipeDetail_ToggleLikeAnonymous(t *testing.T) {
	api := new(mocks.MockAPI)
	d := NewRecipeDetail(api, DetailParams{Recipe: flan})

	assert.ErrorIs(t, d.ToggleLike(context.Background()), client.ErrMissingToken)
	assert.Equal(t, MsgLoginToLike, d.Err())
	api.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeDetail_StaleLikeDropped(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("ToggleLike", mock.Anything, "tok", int64(5)).
		Return(&types.ToggleResult{Action: types.ActionLiked, LikesCount: 3}, nil)

	lease := &fakeLease{alive: false}
	d := NewRecipeDetail(api, DetailParams{Recipe: flan, Session: sessionFor(types.UserSummary{ID: 2}), Lease: lease})

	require.NoError(t, d.ToggleLike(context.Background()))
	assert.False(t, d.Liked())
	assert.Equal(t, 2, d.LikesCount())
}

func TestRecipeDetail_Refresh(t *testing.T) {
	api := new(mocks.MockAPI)
	full := flan
	full.IsLiked = true
	full.Ingredients = []types.Ingredient{{Name: "Leche", Quantity: "500", Unit: "ml"}}
	api.On("GetRecipe", mock.Anything, "tok", int64(5)).Return(&full, nil)

	d := NewRecipeDetail(api, DetailParams{Recipe: flan, Session: sessionFor(types.UserSummary{ID: 2})})
	require.NoError(t, d.Refresh(context.Background()))
	assert.True(t, d.Liked())
	assert.Len(t, d.Recipe().Ingredients, 1)
}

func TestRecipeDetail_CanEditOrDelete(t *testing.T) {
	tests := []struct {
		name    string
		session *types.Session
		want    bool
	}{
		{"anonymous", nil, false},
		{"author", sessionFor(types.UserSummary{ID: 1}), true},
		{"other user", sessionFor(types.UserSummary{ID: 2, Rol: types.RoleChef}), false},
		{"admin", sessionFor(types.UserSummary{ID: 9, Rol: types.RoleAdmin}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewRecipeDetail(new(mocks.MockAPI), DetailParams{Recipe: flan, Session: tt.session})
			assert.Equal(t, tt.want, d.CanEditOrDelete())
			_, err := d.RequestDelete()
			if tt.want {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrNotAuthor)
			}
		})
	}
}

func TestRecipeDetail_DeleteConfirmed(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("DeleteRecipe", mock.Anything, "tok", int64(5)).Return(nil).Once()
	deleted := false

	d := NewRecipeDetail(api, DetailParams{
		Recipe:    flan,
		Session:   sessionFor(types.UserSummary{ID: 1}),
		OnDeleted: func() { deleted = true },
	})
	dialog, err := d.RequestDelete()
	require.NoError(t, err)
	assert.Equal(t, "¿Eliminar Receta?", dialog.Title())
	assert.Equal(t, "Sí, Borrar", dialog.ConfirmLabel())
	assert.False(t, deleted)

	require.NoError(t, dialog.Confirm(context.Background()))
	assert.True(t, deleted)
	assert.False(t, dialog.IsOpen())
	api.AssertExpectations(t)
}

func TestRecipeDetail_DeleteFailureKeepsDialog(t *testing.T) {
	api := new(mocks.MockAPI)
	api.On("DeleteRecipe", mock.Anything, "tok", int64(5)).
		Return(&client.Error{StatusCode: 403, ServerError: "No autorizado"})
	deleted := false

	d := NewRecipeDetail(api, DetailParams{Recipe: flan, Session: sessionFor(types.UserSummary{ID: 1}), OnDeleted: func() { deleted = true }})
	dialog, err := d.RequestDelete()
	require.NoError(t, err)

	require.Error(t, dialog.Confirm(context.Background()))
	assert.True(t, dialog.IsOpen())
	assert.Equal(t, "No autorizado", dialog.Err())
	assert.False(t, deleted)
}

func TestRecipeDetail_PlanDialog(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(types.DateLayout)

	t.Run("anonymous", func(t *testing.T) {
		api := new(mocks.MockAPI)
		d := NewRecipeDetail(api, DetailParams{Recipe: flan})
		dialog := d.OpenPlanDialog()
		require.NoError(t, dialog.SetDate(tomorrow))

		require.Error(t, dialog.Submit(context.Background()))
		assert.Equal(t, MsgLoginToPlan, dialog.Err())
		assert.True(t, dialog.IsOpen())
		api.AssertNotCalled(t, "AddMealPlan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("signed in", func(t *testing.T) {
		api := new(mocks.MockAPI)
		req := types.MealPlanRequest{RecipeID: 5, PlanDate: tomorrow, MealTime: types.MealLunch}
		api.On("AddMealPlan", mock.Anything, "tok", req).Return(&types.MealPlanEntry{ID: 1}, nil).Once()

		d := NewRecipeDetail(api, DetailParams{Recipe: flan, Session: sessionFor(types.UserSummary{ID: 2})})
		dialog := d.OpenPlanDialog()
		require.NoError(t, dialog.SetDate(tomorrow))
		require.NoError(t, dialog.Submit(context.Background()))

		assert.False(t, dialog.IsOpen())
		assert.Equal(t, MsgPlanAdded, d.Notice())
		api.AssertExpectations(t)
	})
}

func TestRecipeDetail_SelectAuthor(t *testing.T) {
	var got types.UserSummary
	d := NewRecipeDetail(new(mocks.MockAPI), DetailParams{Recipe: flan, OnAuthor: func(u types.UserSummary) { got = u }})
	d.SelectAuthor()
	assert.Equal(t, types.UserSummary{ID: 1, Username: "ana", AvatarURL: "/a.png"}, got)
}
