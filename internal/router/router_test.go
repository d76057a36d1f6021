package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chefcommunity/client/internal/session"
	"github.com/chefcommunity/client/internal/types"
)

var (
	ana   = types.UserSummary{ID: 1, Username: "ana", Rol: types.RoleChef}
	admin = types.UserSummary{ID: 9, Username: "root", Rol: types.RoleAdmin}
	luis  = types.UserSummary{ID: 2, Username: "luis", Rol: types.RoleAprendiz}
)

func newRouter(t *testing.T) (*Router, *session.Store) {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage(), nil)
	require.NoError(t, store.Init(context.Background()))
	r := New(store, nil)
	t.Cleanup(r.Close)
	return r, store
}

func signIn(t *testing.T, r *Router, u types.UserSummary) {
	t.Helper()
	require.NoError(t, r.Authenticated(context.Background(), types.Session{User: u, Token: "tok"}))
}

func TestNew_StartsHome(t *testing.T) {
	r, _ := newRouter(t)
	st := r.State()
	assert.Equal(t, ViewHome, st.View)
	assert.Nil(t, st.Session)
	assert.Equal(t, TabRecipes, st.InitialTab)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to View
		ok       bool
	}{
		{ViewDetail, ViewHome, true},
		{ViewUpdateRecipe, ViewProfile, true},
		{ViewLogin, ViewCreateRecipe, true},
		{ViewHome, ViewDetail, true},
		{ViewProfile, ViewDetail, true},
		{ViewDetail, ViewDetail, true},
		{ViewUpdateRecipe, ViewDetail, true},
		{ViewLogin, ViewDetail, false},
		{ViewCreateRecipe, ViewDetail, false},
		{ViewDetail, ViewUpdateRecipe, true},
		{ViewHome, ViewUpdateRecipe, false},
		{ViewProfile, ViewUpdateRecipe, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAuthenticated_OpensOwnProfile(t *testing.T) {
	r, store := newRouter(t)
	signIn(t, r, ana)

	st := r.State()
	assert.Equal(t, ViewProfile, st.View)
	require.NotNil(t, st.ViewedProfile)
	assert.Equal(t, ana.ID, st.ViewedProfile.ID)
	assert.Equal(t, TabRecipes, st.InitialTab)
	assert.Equal(t, "tok", st.Token())
	assert.Equal(t, "tok", store.Token())
}

func TestAuthenticated_RejectsHalfSession(t *testing.T) {
	r, _ := newRouter(t)
	err := r.Authenticated(context.Background(), types.Session{User: ana})
	assert.ErrorIs(t, err, session.ErrInvalidSession)
	assert.Equal(t, ViewHome, r.State().View)
}

func TestLogout_ForcesLogin(t *testing.T) {
	r, store := newRouter(t)
	signIn(t, r, ana)
	require.NoError(t, r.GoToProfile(luis, TabCollections))

	require.NoError(t, r.Logout(context.Background()))
	st := r.State()
	assert.Equal(t, ViewLogin, st.View)
	assert.Nil(t, st.Session)
	assert.Nil(t, st.ViewedProfile)
	assert.Nil(t, store.Current())
}

func TestSessionLossElsewhere_ForcesLogin(t *testing.T) {
	r, store := newRouter(t)
	signIn(t, r, ana)
	require.NoError(t, r.ShowHome())

	require.NoError(t, store.Logout(context.Background()))
	assert.Equal(t, ViewLogin, r.State().View)
}

func TestEditRecipe_Gating(t *testing.T) {
	recipe := types.Recipe{ID: 5, Title: "Flan", AuthorID: ana.ID}

	t.Run("anonymous", func(t *testing.T) {
		r, _ := newRouter(t)
		require.NoError(t, r.SelectRecipe(recipe))
		assert.ErrorIs(t, r.EditRecipe(), ErrNotPermitted)
		assert.Equal(t, ViewDetail, r.State().View)
	})
	t.Run("non author", func(t *testing.T) {
		r, _ := newRouter(t)
		signIn(t, r, luis)
		require.NoError(t, r.SelectRecipe(recipe))
		assert.ErrorIs(t, r.EditRecipe(), ErrNotPermitted)
	})
	t.Run("admin", func(t *testing.T) {
		r, _ := newRouter(t)
		signIn(t, r, admin)
		require.NoError(t, r.SelectRecipe(recipe))
		require.NoError(t, r.EditRecipe())
		assert.Equal(t, ViewUpdateRecipe, r.State().View)
	})
	t.Run("author", func(t *testing.T) {
		r, _ := newRouter(t)
		signIn(t, r, ana)
		require.NoError(t, r.SelectRecipe(recipe))
		require.NoError(t, r.EditRecipe())

		updated := recipe
		updated.Title = "Flan casero"
		require.NoError(t, r.FinishEdit(&updated))
		st := r.State()
		assert.Equal(t, ViewDetail, st.View)
		assert.Equal(t, "Flan casero", st.Selected.Title)
	})
}

func TestCancelEdit_KeepsSelection(t *testing.T) {
	r, _ := newRouter(t)
	signIn(t, r, ana)
	require.NoError(t, r.SelectRecipe(types.Recipe{ID: 5, Title: "Flan", AuthorID: ana.ID}))
	require.NoError(t, r.EditRecipe())
	require.NoError(t, r.CancelEdit())

	st := r.State()
	assert.Equal(t, ViewDetail, st.View)
	assert.Equal(t, "Flan", st.Selected.Title)

	assert.ErrorIs(t, r.CancelEdit(), ErrInvalidTransition)
}

func TestUpdateOnlyFromDetail(t *testing.T) {
	r, _ := newRouter(t)
	signIn(t, r, ana)
	assert.ErrorIs(t, r.EditRecipe(), ErrInvalidTransition)
}

func TestCreateFlow(t *testing.T) {
	r, _ := newRouter(t)
	assert.ErrorIs(t, r.StartCreate(), ErrNoSession)

	signIn(t, r, ana)
	require.NoError(t, r.StartCreate())
	assert.Equal(t, ViewCreateRecipe, r.State().View)

	require.NoError(t, r.CancelCreate())
	assert.Equal(t, ViewHome, r.State().View)

	require.NoError(t, r.GoToProfile(luis, ""))
	require.NoError(t, r.StartCreate())
	require.NoError(t, r.FinishCreate())
	st := r.State()
	assert.Equal(t, ViewProfile, st.View)
	assert.Equal(t, ana.ID, st.ViewedProfile.ID)
}

func TestGoToProfile_Tab(t *testing.T) {
	r, _ := newRouter(t)
	signIn(t, r, ana)
	require.NoError(t, r.GoToProfile(luis, TabCollections))

	st := r.State()
	assert.Equal(t, luis.ID, st.ViewedProfile.ID)
	assert.Equal(t, ana.ID, st.Viewer().ID)
	assert.Equal(t, TabCollections, st.InitialTab)

	require.NoError(t, r.GoToProfile(ana, ""))
	assert.Equal(t, TabRecipes, r.State().InitialTab)
}

func TestLease_StaleAfterTransition(t *testing.T) {
	r, _ := newRouter(t)
	lease := r.Lease()
	assert.True(t, lease.Alive())

	require.NoError(t, r.ShowLogin())
	assert.False(t, lease.Alive())
	assert.True(t, r.Lease().Alive())

	assert.True(t, Lease{}.Alive())
}

func TestSubscribe(t *testing.T) {
	r, _ := newRouter(t)
	var views []View
	unsubscribe := r.Subscribe(func(s State) { views = append(views, s.View) })

	require.NoError(t, r.ShowRegister())
	require.NoError(t, r.ShowLogin())
	unsubscribe()
	require.NoError(t, r.ShowHome())

	assert.Equal(t, []View{ViewRegister, ViewLogin}, views)
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabMealPlan, ParseTab("meal-plan"))
	assert.Equal(t, TabFavorites, ParseTab("favorites"))
	assert.Equal(t, TabRecipes, ParseTab("nope"))
	assert.Equal(t, "Plan Semanal", TabMealPlan.Label())
	assert.True(t, TabFavorites.OwnerOnly())
	assert.False(t, TabCollections.OwnerOnly())
}
