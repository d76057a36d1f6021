package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/types"
)

// ErrNotAuthor is returned when the viewer may not edit or delete a recipe.
var ErrNotAuthor = errors.New("only the author or an admin can change this recipe")

// DetailParams wires a RecipeDetail into its surroundings.
type DetailParams struct {
	Recipe  types.Recipe
	Session *types.Session
	Lease   Lease
	Logger  *zap.Logger
	// OnDeleted runs after the server confirmed a delete.
	OnDeleted func()
	// OnAuthor receives the author stub when the byline is selected.
	OnAuthor func(types.UserSummary)
}

// RecipeDetail is the single-recipe view.
type RecipeDetail struct {
	api       IDetailAPI
	viewer    *types.UserSummary
	token     string
	lease     Lease
	logger    *zap.Logger
	onDeleted func()
	onAuthor  func(types.UserSummary)

	mu     sync.Mutex
	recipe types.Recipe
	liked  bool
	likes  int
	err    string
	notice string
}

func NewRecipeDetail(api IDetailAPI, p DetailParams) *RecipeDetail {
	d := &RecipeDetail{
		api:       api,
		lease:     leaseOrAlive(p.Lease),
		logger:    p.Logger,
		onDeleted: p.OnDeleted,
		onAuthor:  p.OnAuthor,
		recipe:    p.Recipe,
		liked:     p.Recipe.IsLiked,
		likes:     p.Recipe.LikesCount,
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if p.Session != nil {
		u := p.Session.User
		d.viewer = &u
		d.token = p.Session.Token
	}
	return d
}

// Refresh fetches the full recipe, including ingredients and the viewer's
// like.
func (d *RecipeDetail) Refresh(ctx context.Context) error {
	id := d.Recipe().ID
	full, err := d.api.GetRecipe(ctx, d.token, id)
	if err != nil {
		d.logger.Warn("recipe refresh failed", zap.Int64("recipe_id", id), zap.Error(err))
		d.setErr(inlineMessage(err, ""))
		return err
	}
	if !d.lease.Alive() {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recipe = *full
	d.liked = full.IsLiked
	d.likes = full.LikesCount
	return nil
}

func (d *RecipeDetail) Recipe() types.Recipe {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.recipe
}

func (d *RecipeDetail) Steps() []types.Step {
	return types.DeriveSteps(d.Recipe().Instructions)
}

func (d *RecipeDetail) Liked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.liked
}

func (d *RecipeDetail) LikesCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.likes
}

func (d *RecipeDetail) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Notice is the last success message, e.g. after planning the recipe.
func (d *RecipeDetail) Notice() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notice
}

func (d *RecipeDetail) setErr(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = msg
}

// ToggleLike likes or unlikes the recipe. The liked flag follows the
// server's action once the response arrives.
func (d *RecipeDetail) ToggleLike(ctx context.Context) error {
	if d.token == "" {
		d.setErr(MsgLoginToLike)
		return client.ErrMissingToken
	}
	id := d.Recipe().ID
	res, err := d.api.ToggleLike(ctx, d.token, id)
	if err != nil {
		d.logger.Warn("like toggle failed", zap.Int64("recipe_id", id), zap.Error(err))
		d.setErr(inlineMessage(err, ""))
		return err
	}
	if !d.lease.Alive() {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = ""
	d.liked = res.Action == types.ActionLiked
	d.likes = res.LikesCount
	d.recipe.IsLiked = d.liked
	d.recipe.LikesCount = d.likes
	return nil
}

// OpenPlanDialog returns a dialog that adds the recipe to the viewer's
// meal plan.
func (d *RecipeDetail) OpenPlanDialog() *MealPlanDialog {
	return NewMealPlanDialog(d.Recipe().ID, func(ctx context.Context, req types.MealPlanRequest) error {
		if d.token == "" {
			return errors.New(MsgLoginToPlan)
		}
		if _, err := d.api.AddMealPlan(ctx, d.token, req); err != nil {
			return err
		}
		d.mu.Lock()
		d.notice = MsgPlanAdded
		d.mu.Unlock()
		return nil
	})
}

// CanEditOrDelete reports whether the viewer is the author or an admin.
func (d *RecipeDetail) CanEditOrDelete() bool {
	return d.Recipe().CanBeEditedBy(d.viewer)
}

// RequestDelete returns the confirmation that deletes the recipe.
func (d *RecipeDetail) RequestDelete() (*ConfirmDialog, error) {
	if !d.CanEditOrDelete() {
		return nil, ErrNotAuthor
	}
	id := d.Recipe().ID
	return NewConfirmDialog(ConfirmOptions{
		Title:        "¿Eliminar Receta?",
		Message:      "Esta cinta se borrará para siempre. Esta acción no se puede deshacer.",
		ConfirmLabel: "Sí, Borrar",
		Variant:      VariantDanger,
		OnConfirm: func(ctx context.Context) error {
			if err := d.api.DeleteRecipe(ctx, d.token, id); err != nil {
				d.logger.Warn("recipe delete failed", zap.Int64("recipe_id", id), zap.Error(err))
				return err
			}
			if d.onDeleted != nil {
				d.onDeleted()
			}
			return nil
		},
	}), nil
}

// AuthorStub is the partial profile used to open the author's page.
func (d *RecipeDetail) AuthorStub() types.UserSummary {
	return d.Recipe().AuthorSummary()
}

func (d *RecipeDetail) SelectAuthor() {
	if d.onAuthor != nil {
		d.onAuthor(d.AuthorStub())
	}
}
