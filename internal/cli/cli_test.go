package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/config"
	"github.com/chefcommunity/client/internal/server"
	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/types"
)

type cliEnv struct {
	t   *testing.T
	url string
}

// newEnv starts a stub backend and points HOME at a temp dir, so each test
// gets its own session file.
func newEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("SECRETS_DIR", filepath.Join(dir, "secrets"))
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("CHEF_LOG_LEVEL", "error")

	gin.SetMode(gin.TestMode)
	srv := server.New(config.MockConfig{JWTSecret: "cli-test", TokenTTL: time.Hour}, nil, zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &cliEnv{t: t, url: ts.URL}
}

func (e *cliEnv) runWithInput(stdin string, args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url", e.url}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runWithInput("", args...)
	require.NoError(e.t, err, out)
	return out
}

func (e *cliEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	out := e.run(append(args, "-o", "json")...)
	require.NoError(e.t, json.Unmarshal([]byte(out), v), out)
}

func (e *cliEnv) register(username string) types.UserSummary {
	e.t.Helper()
	var u types.UserSummary
	e.runJSON(&u, "register", "--username", username, "--email", username+"@example.com", "--password", "secret")
	return u
}

func (e *cliEnv) publish(title string, extra ...string) types.Recipe {
	e.t.Helper()
	var r types.Recipe
	args := append([]string{"recipe", "create", "--title", title, "--instructions", `Triturar\nEnfriar`}, extra...)
	e.runJSON(&r, args...)
	return r
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

func TestFeed_AnonymousEmpty(t *testing.T) {
	e := newEnv(t)

	out := e.run("feed")
	assert.Contains(t, out, service.MsgEmptyFeed)
}

func TestUnknownOutputFormat(t *testing.T) {
	e := newEnv(t)

	_, err := e.runWithInput("", "feed", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRegisterWhoamiLogout(t *testing.T) {
	e := newEnv(t)

	out := e.run("register", "--username", "ana", "--email", "ana@example.com", "--password", "secret", "--rol", "chef")
	assert.Contains(t, out, "@ana")

	var me whoami
	e.runJSON(&me, "whoami", "--remote")
	assert.Equal(t, "ana", me.User.Username)
	assert.Equal(t, types.RoleChef, me.User.Rol)
	require.NotNil(t, me.ExpiresAt)
	assert.True(t, me.ExpiresAt.After(time.Now()))
	require.NotNil(t, me.Profile)
	assert.Equal(t, "ana@example.com", me.Profile.Email)

	assert.Contains(t, e.run("logout"), "Sesión cerrada")

	_, err := e.runWithInput("", "whoami")
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	e := newEnv(t)

	_, err := e.runWithInput("", "register", "--username", "eva", "--email", "eva@example.com", "--password", "x", "--rol", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no disponible")
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	e.register("ana")
	e.run("logout")

	_, err := e.runWithInput("", "login", "--email", "ana@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Credenciales inválidas", err.Error())

	out, err := e.runWithInput("secret\n", "login", "--email", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Sesión iniciada como @ana")
}

func TestRecipeCreate_RequiresSession(t *testing.T) {
	e := newEnv(t)

	_, err := e.runWithInput("", "recipe", "create", "--title", "Flan", "--instructions", "Hornear")
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestRecipeLifecycle(t *testing.T) {
	e := newEnv(t)
	e.register("ana")

	r := e.publish("Gazpacho", "--ingredient", "Tomate=1 kg", "--ingredient", "Pepino=1", "--category", "Cena")
	require.NotZero(t, r.ID)
	assert.Equal(t, "Cena", r.Category)

	out := e.run("recipe", "show", id(r.ID))
	assert.Contains(t, out, "Gazpacho")
	assert.Contains(t, out, "Paso 2")
	assert.Contains(t, out, "Tomate")

	var updated types.Recipe
	e.runJSON(&updated, "recipe", "update", id(r.ID), "--title", "Gazpacho andaluz")
	assert.Equal(t, "Gazpacho andaluz", updated.Title)
	assert.Len(t, updated.Ingredients, 2)

	var like likeResult
	e.runJSON(&like, "recipe", "like", id(r.ID))
	assert.True(t, like.Liked)
	assert.Equal(t, 1, like.LikesCount)

	tomorrow := time.Now().AddDate(0, 0, 1).Format(types.DateLayout)
	out = e.run("recipe", "plan", id(r.ID), "--date", tomorrow, "--meal", "cena")
	assert.Contains(t, out, service.MsgPlanAdded)

	var groups []types.DayGroup
	e.runJSON(&groups, "mealplan", "list")
	require.Len(t, groups, 1)
	assert.Equal(t, tomorrow, groups[0].Date)
	require.Len(t, groups[0].Entries, 1)
	assert.Equal(t, types.MealDinner, groups[0].Entries[0].MealTime)

	assert.Contains(t, e.run("shopping-list"), "Tomate")

	out, err := e.runWithInput("n\n", "recipe", "delete", id(r.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelado")

	assert.Contains(t, e.run("recipe", "delete", id(r.ID), "-f"), "Receta eliminada")

	_, err = e.runWithInput("", "recipe", "show", id(r.ID))
	assert.Error(t, err)
}

func TestRecipePlan_Validation(t *testing.T) {
	e := newEnv(t)
	e.register("ana")
	r := e.publish("Flan")

	_, err := e.runWithInput("", "recipe", "plan", id(r.ID))
	require.Error(t, err)
	assert.Equal(t, service.MsgPickDate, err.Error())

	_, err = e.runWithInput("", "recipe", "plan", id(r.ID), "--date", "2000-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "o posterior")

	_, err = e.runWithInput("", "recipe", "plan", id(r.ID), "--date", "2099-01-01", "--meal", "merienda")
	require.Error(t, err)
}

func TestRecipeDelete_NotAuthor(t *testing.T) {
	e := newEnv(t)
	e.register("ana")
	r := e.publish("Flan")
	e.register("beto")

	_, err := e.runWithInput("", "recipe", "delete", id(r.ID), "-f")
	assert.ErrorIs(t, err, service.ErrNotAuthor)

	_, err = e.runWithInput("", "recipe", "update", id(r.ID), "--title", "Mío")
	assert.ErrorIs(t, err, service.ErrNotAuthor)
}

func TestRecipeLike_Anonymous(t *testing.T) {
	e := newEnv(t)
	e.register("ana")
	r := e.publish("Flan")
	e.run("logout")

	_, err := e.runWithInput("", "recipe", "like", id(r.ID))
	require.Error(t, err)
	assert.Equal(t, service.MsgLoginToLike, err.Error())
}

func TestFollowAndProfile(t *testing.T) {
	e := newEnv(t)
	ana := e.register("ana")
	e.publish("Flan")
	e.register("beto")

	out := e.run("follow", id(ana.ID))
	assert.Contains(t, out, "Ahora sigues a @ana")

	var view profileView
	e.runJSON(&view, "profile", id(ana.ID))
	assert.True(t, view.IsFollowing)
	assert.False(t, view.IsOwner)
	assert.Equal(t, 1, view.User.FollowersCount)
	require.Len(t, view.Recipes, 1)

	// owner-only tabs fall back to recipes on someone else's profile
	e.runJSON(&view, "profile", id(ana.ID), "--tab", "mealplan")
	assert.Equal(t, "recipes", string(view.Tab))

	var feed []types.Recipe
	e.runJSON(&feed, "feed")
	require.Len(t, feed, 1)
	assert.Equal(t, "Flan", feed[0].Title)
}

func TestFavoritesAndCollections(t *testing.T) {
	e := newEnv(t)
	e.register("ana")
	flan := e.publish("Flan")
	tarta := e.publish("Tarta")
	e.run("recipe", "like", id(flan.ID))
	e.run("recipe", "like", id(tarta.ID))

	var favs []types.Recipe
	e.runJSON(&favs, "favorites")
	assert.Len(t, favs, 2)

	out := e.run("collections", "create", "Domingos", "--description", "Para la familia", "--recipe", id(flan.ID))
	assert.Contains(t, out, `Recetas añadidas a "Domingos" correctamente.`)

	var cols []types.Collection
	e.runJSON(&cols, "collections")
	require.Len(t, cols, 1)
	assert.Equal(t, 1, cols[0].RecipeCount)
	cid := id(cols[0].ID)

	e.run("collections", "add", cid, id(tarta.ID))
	out = e.run("collections", "show", cid)
	assert.Contains(t, out, "Flan")
	assert.Contains(t, out, "Tarta")

	assert.Contains(t, e.run("collections", "remove", cid, id(flan.ID), "-f"), "Receta quitada")
	var col types.Collection
	e.runJSON(&col, "collections", "show", cid)
	require.Len(t, col.Recipes, 1)
	assert.Equal(t, "Tarta", col.Recipes[0].Title)

	e.run("favorites", "unlike", id(flan.ID))
	e.runJSON(&favs, "favorites")
	require.Len(t, favs, 1)

	_, err := e.runWithInput("", "collections", "add", cid, id(flan.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no está en tus favoritos")
}

func TestShoppingList_EmptyPlan(t *testing.T) {
	e := newEnv(t)
	e.register("ana")

	_, err := e.runWithInput("", "shopping-list")
	require.Error(t, err)
}
