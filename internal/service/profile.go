package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/types"
)

var (
	ErrNotOwner         = errors.New("only the profile owner can do this")
	ErrOwnProfile       = errors.New("cannot follow yourself")
	ErrTabUnavailable   = errors.New("tab not available on this profile")
	ErrNotReady         = errors.New("profile is not loaded")
	ErrEmptyMealPlan    = errors.New("meal plan is empty")
	ErrNothingSelected  = errors.New("no recipes selected")
	ErrSelectionOutside = errors.New("selection mode is only available from favorites")
)

// ProfileStatus is the load state of a mounted profile.
type ProfileStatus string

const (
	ProfileLoading ProfileStatus = "loading"
	ProfileReady   ProfileStatus = "ready"
	ProfileError   ProfileStatus = "error"
)

// ProfileParams wires a Profile into its surroundings.
type ProfileParams struct {
	UserID     int64
	Session    *types.Session
	InitialTab router.Tab
	Lease      Lease
	Logger     *zap.Logger
	// OnRecipe receives a card click outside selection mode.
	OnRecipe func(types.Recipe)
}

// Profile is the profile view: the aggregate plus the state of its tabs,
// dialogs and selection mode.
type Profile struct {
	api      IProfileAPI
	userID   int64
	viewer   *types.UserSummary
	token    string
	lease    Lease
	logger   *zap.Logger
	onRecipe func(types.Recipe)

	mu         sync.Mutex
	status     ProfileStatus
	loadErr    string
	actionErr  string
	data       types.ProfileAggregate
	initialTab router.Tab
	tab        router.Tab

	mealPlan  []types.MealPlanEntry
	favorites []types.Recipe

	openCollection *types.Collection
	shopping       []types.ShoppingListItem
	shoppingOpen   bool

	selecting bool
	selected  []int64

	dialog *ConfirmDialog
	modal  *CollectionModal
}

func NewProfile(api IProfileAPI, p ProfileParams) *Profile {
	pr := &Profile{
		api:        api,
		userID:     p.UserID,
		lease:      leaseOrAlive(p.Lease),
		logger:     p.Logger,
		onRecipe:   p.OnRecipe,
		status:     ProfileLoading,
		initialTab: p.InitialTab,
		tab:        router.TabRecipes,
	}
	if pr.logger == nil {
		pr.logger = zap.NewNop()
	}
	if pr.initialTab == "" {
		pr.initialTab = router.TabRecipes
	}
	if p.Session != nil {
		u := p.Session.User
		pr.viewer = &u
		pr.token = p.Session.Token
	}
	return pr
}

// IsOwner reports whether the viewer is looking at their own profile.
func (p *Profile) IsOwner() bool {
	return p.viewer != nil && p.viewer.ID == p.userID
}

// Load fetches the aggregate and then opens the initial tab.
func (p *Profile) Load(ctx context.Context) error {
	p.mu.Lock()
	p.status = ProfileLoading
	p.loadErr = ""
	p.mu.Unlock()

	agg, err := p.api.GetProfile(ctx, p.token, p.userID)
	if !p.lease.Alive() {
		return nil
	}
	if err != nil {
		p.logger.Warn("profile load failed", zap.Int64("user_id", p.userID), zap.Error(err))
		p.mu.Lock()
		p.status = ProfileError
		p.loadErr = inlineMessage(err, "")
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.data = *agg
	p.status = ProfileReady
	tab := p.initialTab
	p.mu.Unlock()

	if !p.tabAvailable(tab) {
		tab = router.TabRecipes
	}
	// tab fetch failures surface through Err
	_ = p.SelectTab(ctx, tab)
	return nil
}

// Retry reloads after a failed load.
func (p *Profile) Retry(ctx context.Context) error {
	return p.Load(ctx)
}

func (p *Profile) Status() ProfileStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// LoadErr is the message shown in the error state.
func (p *Profile) LoadErr() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// Err is the inline message of the last failed action.
func (p *Profile) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.actionErr
}

// setErr records an inline message unless the view was left meanwhile.
func (p *Profile) setErr(err error, fallback string) {
	if !p.lease.Alive() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actionErr = inlineMessage(err, fallback)
}

// Data returns the aggregate as last loaded and locally patched.
func (p *Profile) Data() types.ProfileAggregate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data
}

// Tabs lists the tabs the viewer may open.
func (p *Profile) Tabs() []router.Tab {
	tabs := []router.Tab{router.TabRecipes, router.TabCollections}
	if p.IsOwner() {
		tabs = append(tabs, router.TabMealPlan, router.TabFavorites)
	}
	return tabs
}

func (p *Profile) tabAvailable(t router.Tab) bool {
	for _, tab := range p.Tabs() {
		if tab == t {
			return true
		}
	}
	return false
}

func (p *Profile) Tab() router.Tab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tab
}

// SelectTab switches tab without refetching the aggregate. The meal plan
// and favorites are fetched every time their tab becomes active. Any open
// collection detail closes.
func (p *Profile) SelectTab(ctx context.Context, t router.Tab) error {
	if !p.tabAvailable(t) {
		return ErrTabUnavailable
	}
	p.mu.Lock()
	if p.status != ProfileReady {
		p.mu.Unlock()
		return ErrNotReady
	}
	p.tab = t
	p.openCollection = nil
	if t != router.TabFavorites {
		p.selecting = false
		p.selected = nil
	}
	p.mu.Unlock()

	switch t {
	case router.TabMealPlan:
		return p.loadMealPlan(ctx)
	case router.TabFavorites:
		return p.loadFavorites(ctx)
	}
	return nil
}

func (p *Profile) loadMealPlan(ctx context.Context) error {
	if !p.IsOwner() || p.token == "" {
		return nil
	}
	entries, err := p.api.ListMealPlan(ctx, p.token)
	if err != nil {
		p.logger.Warn("meal plan load failed", zap.Error(err))
		p.setErr(err, "")
		return err
	}
	if !p.lease.Alive() {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mealPlan = entries
	return nil
}

func (p *Profile) loadFavorites(ctx context.Context) error {
	if !p.IsOwner() || p.token == "" {
		return nil
	}
	recipes, err := p.api.ListFavorites(ctx, p.token)
	if err != nil {
		p.logger.Warn("favorites load failed", zap.Error(err))
		p.setErr(err, "")
		return err
	}
	if !p.lease.Alive() {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.favorites = recipes
	return nil
}

// MealPlan returns the entries grouped by day.
func (p *Profile) MealPlan() []types.DayGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	return types.GroupMealPlan(p.mealPlan)
}

func (p *Profile) Favorites() []types.Recipe {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.Recipe(nil), p.favorites...)
}

// ToggleFollow follows or unfollows the viewed user and adjusts the
// follower count once the server answered.
func (p *Profile) ToggleFollow(ctx context.Context) error {
	if p.token == "" {
		p.mu.Lock()
		p.actionErr = MsgLoginToFollow
		p.mu.Unlock()
		return client.ErrMissingToken
	}
	if p.IsOwner() {
		return ErrOwnProfile
	}
	res, err := p.api.ToggleFollow(ctx, p.token, p.userID)
	if err != nil {
		p.logger.Warn("follow toggle failed", zap.Int64("user_id", p.userID), zap.Error(err))
		p.setErr(err, "")
		return err
	}
	if !p.lease.Alive() {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.actionErr = ""
	following := res.Action == types.ActionFollowed
	switch {
	case following && !p.data.IsFollowing:
		p.data.User.FollowersCount++
	case !following && p.data.IsFollowing && p.data.User.FollowersCount > 0:
		p.data.User.FollowersCount--
	}
	p.data.IsFollowing = following
	return nil
}

// UnlikeFavorite removes a like and drops the recipe from favorites.
func (p *Profile) UnlikeFavorite(ctx context.Context, recipeID int64) error {
	if !p.IsOwner() {
		return ErrNotOwner
	}
	if _, err := p.api.ToggleLike(ctx, p.token, recipeID); err != nil {
		p.logger.Warn("unlike failed", zap.Int64("recipe_id", recipeID), zap.Error(err))
		p.setErr(err, "")
		return err
	}
	if !p.lease.Alive() {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.favorites[:0:0]
	for _, r := range p.favorites {
		if r.ID != recipeID {
			kept = append(kept, r)
		}
	}
	p.favorites = kept
	p.removeSelected(recipeID)
	return nil
}

// RequestRemoveMealPlan returns the confirmation that deletes a planned
// meal.
func (p *Profile) RequestRemoveMealPlan(entryID int64) (*ConfirmDialog, error) {
	if !p.IsOwner() {
		return nil, ErrNotOwner
	}
	d := NewConfirmDialog(ConfirmOptions{
		Title:        "¿Eliminar Comida?",
		Message:      "Esta comida se quitará de tu Plan Semanal.",
		ConfirmLabel: "Sí, Eliminar",
		Variant:      VariantDanger,
		OnConfirm: func(ctx context.Context) error {
			if err := p.api.RemoveMealPlan(ctx, p.token, entryID); err != nil {
				return err
			}
			if !p.lease.Alive() {
				return nil
			}
			p.mu.Lock()
			defer p.mu.Unlock()
			kept := p.mealPlan[:0:0]
			for _, e := range p.mealPlan {
				if e.ID != entryID {
					kept = append(kept, e)
				}
			}
			p.mealPlan = kept
			return nil
		},
	})
	p.setDialog(d)
	return d, nil
}

// CanGenerateShoppingList is false while the meal plan is empty.
func (p *Profile) CanGenerateShoppingList() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.IsOwner() && len(p.mealPlan) > 0
}

// GenerateShoppingList asks the server for the aggregated list and opens
// it.
func (p *Profile) GenerateShoppingList(ctx context.Context) ([]types.ShoppingListItem, error) {
	if !p.IsOwner() {
		return nil, ErrNotOwner
	}
	if !p.CanGenerateShoppingList() {
		return nil, ErrEmptyMealPlan
	}
	items, err := p.api.GenerateShoppingList(ctx, p.token)
	if err != nil {
		p.logger.Warn("shopping list failed", zap.Error(err))
		p.setErr(err, "")
		return nil, err
	}
	if !p.lease.Alive() {
		return items, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shopping = items
	p.shoppingOpen = true
	return items, nil
}

// ShoppingList returns the open list, or nil when closed.
func (p *Profile) ShoppingList() []types.ShoppingListItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.shoppingOpen {
		return nil
	}
	return append([]types.ShoppingListItem(nil), p.shopping...)
}

func (p *Profile) CloseShoppingList() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shoppingOpen = false
	p.shopping = nil
}

// Dialog returns the open confirmation, if any.
func (p *Profile) Dialog() *ConfirmDialog {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dialog != nil && !p.dialog.IsOpen() {
		p.dialog = nil
	}
	return p.dialog
}

func (p *Profile) setDialog(d *ConfirmDialog) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialog = d
}

// --- selection mode ---

// ToggleSelectionMode enters or leaves selection mode. Either way the
// selection starts empty.
func (p *Profile) ToggleSelectionMode() error {
	if !p.IsOwner() {
		return ErrNotOwner
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.selecting && p.tab != router.TabFavorites {
		return ErrSelectionOutside
	}
	p.selecting = !p.selecting
	p.selected = nil
	return nil
}

func (p *Profile) Selecting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selecting
}

// Selected returns the selected recipe ids in the order they were picked.
func (p *Profile) Selected() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int64(nil), p.selected...)
}

func (p *Profile) IsSelected(id int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.selected {
		if s == id {
			return true
		}
	}
	return false
}

// ClickRecipe toggles membership in selection mode and opens the recipe
// otherwise.
func (p *Profile) ClickRecipe(r types.Recipe) {
	p.mu.Lock()
	if p.selecting {
		if !p.removeSelected(r.ID) {
			p.selected = append(p.selected, r.ID)
		}
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	if p.onRecipe != nil {
		p.onRecipe(r)
	}
}

// removeSelected must be called with p.mu held.
func (p *Profile) removeSelected(id int64) bool {
	for i, s := range p.selected {
		if s == id {
			p.selected = append(p.selected[:i:i], p.selected[i+1:]...)
			return true
		}
	}
	return false
}
