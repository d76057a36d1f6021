package tui

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/config"
	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/server"
	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/session"
	"github.com/chefcommunity/client/internal/types"
)

type harness struct {
	t        *testing.T
	ctx      context.Context
	api      *client.Client
	sessions *session.Store
	router   *router.Router
	model    *Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := server.New(config.MockConfig{JWTSecret: "tui-test", TokenTTL: time.Hour}, nil, zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ctx := context.Background()
	sessions := session.NewStore(session.NewMemoryStorage(), nil)
	require.NoError(t, sessions.Init(ctx))
	r := router.New(sessions, nil)
	t.Cleanup(r.Close)

	return &harness{
		t:        t,
		ctx:      ctx,
		api:      client.New(client.WithBaseURL(ts.URL)),
		sessions: sessions,
		router:   r,
	}
}

// start mounts the root model on the router's current view.
func (h *harness) start() {
	h.model = New(h.ctx, Deps{API: h.api, Router: h.router, Styles: render.DefaultStyles()})
	h.exec(h.model.Init())
}

// exec runs cmd synchronously and feeds what it produces back into the
// model until nothing is left.
func (h *harness) exec(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(h.t, steps, 100, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			_, c := h.model.Update(msg)
			queue = append(queue, c)
		}
	}
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	_, cmd := h.model.Update(msg)
	h.exec(cmd)
}

func (h *harness) press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		switch k {
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "tab":
			h.send(tea.KeyMsg{Type: tea.KeyTab})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "right":
			h.send(tea.KeyMsg{Type: tea.KeyRight})
		case "down":
			h.send(tea.KeyMsg{Type: tea.KeyDown})
		case "ctrl+s":
			h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

// typeText sends text as a single paste-free rune burst.
func (h *harness) typeText(s string) {
	h.t.Helper()
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) view() string { return h.model.View() }

// signUp registers a user and signs the session in without touching the
// router's view.
func (h *harness) signUp(username string) types.Session {
	h.t.Helper()
	resp, err := h.api.Register(h.ctx, types.RegisterRequest{
		Username: username, Email: username + "@example.com", Password: "secret",
	})
	require.NoError(h.t, err)
	return resp.Session()
}

func (h *harness) publish(token, title string) *types.Recipe {
	h.t.Helper()
	rec, err := h.api.CreateRecipe(h.ctx, token, types.RecipeInput{
		Title:        title,
		Instructions: "Cortar\nCocinar",
		Difficulty:   types.DifficultyEasy,
		Category:     "Cena",
		Ingredients:  []types.IngredientInput{{Name: "Harina", Quantity: "200 g"}},
	}, nil, nil)
	require.NoError(h.t, err)
	return rec
}

func TestFeed_AnonymousOpensDetail(t *testing.T) {
	h := newHarness(t)
	author := h.signUp("ana")
	h.publish(author.Token, "Tortilla de patatas")

	h.start()
	out := h.view()
	assert.Contains(t, out, "CINTAS FRESCAS")
	assert.Contains(t, out, "Tortilla de patatas")
	assert.Contains(t, out, "anónimo")

	h.press("enter")
	assert.Equal(t, router.ViewDetail, h.router.State().View)
	out = h.view()
	assert.Contains(t, out, "Paso 2")
	assert.Contains(t, out, "Harina")
	assert.NotContains(t, out, "d borrar")

	h.press("l")
	assert.Contains(t, h.view(), service.MsgLoginToLike)
}

func TestFeed_EmptyState(t *testing.T) {
	h := newHarness(t)
	h.start()
	assert.Contains(t, h.view(), service.MsgEmptyFeed)
}

func TestNavigate_CreateNeedsSession(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.press("N")
	assert.Equal(t, router.ViewHome, h.router.State().View)
	assert.Contains(t, h.view(), "Inicia sesión para publicar")
}

func TestLogin_OpensOwnProfile(t *testing.T) {
	h := newHarness(t)
	h.signUp("bea")

	h.start()
	h.press("L")
	require.Equal(t, router.ViewLogin, h.router.State().View)
	assert.Contains(t, h.view(), "INICIAR SESIÓN")

	h.typeText("bea@example.com")
	h.press("tab")
	h.typeText("wrong")
	h.press("enter")
	assert.Equal(t, router.ViewLogin, h.router.State().View)
	assert.Contains(t, h.view(), "Credenciales inválidas")

	for i := 0; i < len("wrong"); i++ {
		h.send(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	h.typeText("secret")
	h.press("enter")

	st := h.router.State()
	require.Equal(t, router.ViewProfile, st.View)
	require.NotNil(t, st.Session)
	out := h.view()
	assert.Contains(t, out, "@bea")
	assert.Contains(t, out, "Plan Semanal")
	assert.Contains(t, out, render.EmptyRecipes)
}

func TestRegister_PicksRole(t *testing.T) {
	h := newHarness(t)
	h.start()
	h.press("R")
	require.Equal(t, router.ViewRegister, h.router.State().View)

	h.typeText("carla")
	h.press("tab")
	h.typeText("carla@example.com")
	h.press("tab")
	h.typeText("secret")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlRight})
	h.press("enter")

	st := h.router.State()
	require.Equal(t, router.ViewProfile, st.View)
	assert.Equal(t, types.RoleChef, st.Session.User.Rol)
}

func TestDetail_PlanThenShoppingList(t *testing.T) {
	h := newHarness(t)
	me := h.signUp("dani")
	rec := h.publish(me.Token, "Bizcocho")
	require.NoError(t, h.router.Authenticated(h.ctx, me))
	require.NoError(t, h.router.SelectRecipe(*rec))

	h.start()
	assert.Contains(t, h.view(), "d borrar")

	h.press("p")
	assert.Contains(t, h.view(), "Planificar Comida")
	h.press("enter")
	assert.Contains(t, h.view(), service.MsgPickDate)

	h.typeText(time.Now().AddDate(0, 0, 1).Format(types.DateLayout))
	h.press("tab")
	h.press("enter")
	assert.Contains(t, h.view(), service.MsgPlanAdded)

	h.press("P")
	require.Equal(t, router.ViewProfile, h.router.State().View)
	h.press("right", "right")
	out := h.view()
	assert.Contains(t, out, "Bizcocho")
	assert.Contains(t, out, string(types.MealDinner))

	h.press("g")
	out = h.view()
	assert.Contains(t, out, "Lista de Compra")
	assert.Contains(t, out, "Harina")

	h.press("esc")
	assert.NotContains(t, h.view(), "Lista de Compra")
}

func TestDetail_DeleteReturnsHome(t *testing.T) {
	h := newHarness(t)
	me := h.signUp("eva")
	rec := h.publish(me.Token, "Sopa")
	require.NoError(t, h.router.Authenticated(h.ctx, me))
	require.NoError(t, h.router.SelectRecipe(*rec))

	h.start()
	h.press("d")
	assert.Contains(t, h.view(), "¿Eliminar Receta?")
	h.press("n")
	assert.Equal(t, router.ViewDetail, h.router.State().View)

	h.press("d", "y")
	assert.Equal(t, router.ViewHome, h.router.State().View)
	assert.NotContains(t, h.view(), "Sopa")
}

func TestCreateRecipe_FinishesOnProfile(t *testing.T) {
	h := newHarness(t)
	me := h.signUp("fran")
	require.NoError(t, h.router.Authenticated(h.ctx, me))

	h.start()
	h.press("N")
	require.Equal(t, router.ViewCreateRecipe, h.router.State().View)
	assert.Contains(t, h.view(), render.EmptyIngredients)

	h.typeText("Gazpacho")
	h.press("tab", "tab")
	h.typeText("Triturar todo")
	for i := 0; i < 5; i++ {
		h.press("tab")
	}
	h.typeText("Tomate")
	h.press("tab")
	h.typeText("500 g")
	h.press("enter")
	assert.NotContains(t, h.view(), render.EmptyIngredients)

	h.press("ctrl+s")
	st := h.router.State()
	require.Equal(t, router.ViewProfile, st.View)
	assert.Equal(t, me.User.ID, st.ViewedProfile.ID)
	assert.Contains(t, h.view(), "Gazpacho")
}

func TestFavorites_SaveSelectionToCollection(t *testing.T) {
	h := newHarness(t)
	author := h.signUp("gil")
	rec := h.publish(author.Token, "Paella")
	me := h.signUp("hugo")
	_, err := h.api.ToggleLike(h.ctx, me.Token, rec.ID)
	require.NoError(t, err)

	require.NoError(t, h.router.Authenticated(h.ctx, me))
	require.NoError(t, h.router.GoToProfile(me.User, router.TabFavorites))

	h.start()
	assert.Contains(t, h.view(), "Paella")

	h.press("s", "enter", "c")
	assert.Contains(t, h.view(), "Guardar en Colección")
	h.typeText("Domingos")
	h.press("enter")

	out := h.view()
	assert.Contains(t, out, "¡Éxito!")
	h.press("y")
	out = h.view()
	assert.Contains(t, out, "Domingos (1)")
}

func TestModel_DropsStaleResults(t *testing.T) {
	h := newHarness(t)
	h.start()
	before := h.model.page
	h.send(resultMsg{mount: uuid.New()})
	assert.Same(t, before, h.model.page)
}
