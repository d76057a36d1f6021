package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/mocks"
	"github.com/chefcommunity/client/internal/types"
)

func TestRecipeForm_Defaults(t *testing.T) {
	f := NewRecipeForm(new(mocks.MockAPI), nil)
	fields := f.Fields()
	assert.Equal(t, "Comida", fields.Category)
	assert.Equal(t, types.DifficultyMedium, fields.Difficulty)
	assert.Empty(t, fields.Ingredients)
	assert.False(t, f.IsEdit())
}

func TestRecipeForm_PrefillFromExisting(t *testing.T) {
	existing := &types.Recipe{
		ID: 4, Title: "Tortilla", Category: "Cena", Difficulty: types.DifficultyHard, PrepTime: 30,
		Ingredients: []types.Ingredient{
			{Name: "Huevos", Quantity: "4", Unit: "ud"},
			{Name: "Patatas", Quantity: "500", Unit: "g"},
			{Name: "Sal", Quantity: "1"},
		},
	}
	f := NewRecipeForm(new(mocks.MockAPI), existing)
	fields := f.Fields()

	assert.True(t, f.IsEdit())
	assert.Equal(t, "Cena", fields.Category)
	assert.Equal(t, []types.IngredientInput{
		{Name: "Huevos", Quantity: "4"},
		{Name: "Patatas", Quantity: "500 g"},
		{Name: "Sal", Quantity: "1"},
	}, fields.Ingredients)
}

func TestRecipeForm_IngredientEditing(t *testing.T) {
	f := NewRecipeForm(new(mocks.MockAPI), nil)

	assert.False(t, f.AddIngredient("  ", "2"))
	assert.False(t, f.AddIngredient("Harina", "   "))
	assert.Empty(t, f.Fields().Ingredients)

	assert.True(t, f.AddIngredient(" Harina ", " 200 g "))
	assert.True(t, f.AddIngredient("Leche", "250 ml"))
	assert.Equal(t, types.IngredientInput{Name: "Harina", Quantity: "200 g"}, f.Fields().Ingredients[0])

	assert.False(t, f.RemoveIngredient(5))
	assert.False(t, f.RemoveIngredient(-1))
	assert.Len(t, f.Fields().Ingredients, 2)

	assert.True(t, f.RemoveIngredient(0))
	assert.Equal(t, []types.IngredientInput{{Name: "Leche", Quantity: "250 ml"}}, f.Fields().Ingredients)
}

func TestRecipeForm_SubmitWithoutToken(t *testing.T) {
	api := new(mocks.MockAPI)
	f := NewRecipeForm(api, nil)

	_, err := f.Submit(context.Background(), "")
	assert.ErrorIs(t, err, client.ErrMissingToken)
	assert.Equal(t, MsgAuthLost, f.Err())
	api.AssertNotCalled(t, "CreateRecipe", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeForm_Create(t *testing.T) {
	api := new(mocks.MockAPI)
	f := NewRecipeForm(api, nil)
	image := &types.Attachment{Filename: "tortilla.jpg", Body: strings.NewReader("jpg")}
	f.Update(func(r *RecipeFields) {
		r.Title = "Tortilla"
		r.Instructions = "Batir\nCuajar"
		r.PrepTime = 25
		r.MainImage = image
	})
	f.AddIngredient("Huevos", "4")

	want := types.RecipeInput{
		Title: "Tortilla", Instructions: "Batir\nCuajar", Category: "Comida", PrepTime: 25,
		Difficulty: types.DifficultyMedium, Ingredients: []types.IngredientInput{{Name: "Huevos", Quantity: "4"}},
	}
	saved := &types.Recipe{ID: 11, Title: "Tortilla"}
	api.On("CreateRecipe", mock.Anything, "tok", want, image, (*types.Attachment)(nil)).Return(saved, nil).Once()

	got, err := f.Submit(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	assert.Empty(t, f.Err())
	api.AssertExpectations(t)
}

func TestRecipeForm_UpdateCarriesMediaURLs(t *testing.T) {
	api := new(mocks.MockAPI)
	existing := &types.Recipe{
		ID: 4, Title: "Flan", Instructions: "x", Category: "Postre", Difficulty: types.DifficultyEasy,
		MainImageURL: "/static/uploads/flan.jpg", VideoURL: "/static/uploads/flan.mp4",
	}
	f := NewRecipeForm(api, existing)
	f.Update(func(r *RecipeFields) { r.Title = "Flan casero" })

	api.On("UpdateRecipe", mock.Anything, "tok", int64(4), mock.MatchedBy(func(in types.RecipeInput) bool {
		return in.Title == "Flan casero" &&
			in.MainImageURL == "/static/uploads/flan.jpg" &&
			in.VideoURL == "/static/uploads/flan.mp4" &&
			in.Ingredients != nil
	})).Return(&types.Recipe{ID: 4, Title: "Flan casero"}, nil).Once()

	got, err := f.Submit(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Flan casero", got.Title)
	api.AssertExpectations(t)
}

func TestRecipeForm_SubmitErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &client.Error{StatusCode: 400, ServerError: "Título e instrucciones son requeridos"}, "Título e instrucciones son requeridos"},
		{"status fallback", &client.Error{StatusCode: 502}, "Error 502: Bad Gateway"},
		{"message fallback", &client.Error{StatusCode: 500, Message: "boom"}, "Error 500: boom"},
		{"transport", fmt.Errorf("%w: %w", client.ErrTransport, errors.New("refused")), MsgConnection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(mocks.MockAPI)
			api.On("CreateRecipe", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			f := NewRecipeForm(api, nil)
			_, err := f.Submit(context.Background(), "tok")
			require.Error(t, err)
			assert.Equal(t, tt.want, f.Err())
			assert.False(t, f.Submitting())
		})
	}
}
