// Package router holds the top-level navigation state of the client: the
// current view, the selected recipe, the viewed profile and the tab a
// profile opens on. There is no history stack; every move goes through an
// explicit transition table.
package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/session"
	"github.com/chefcommunity/client/internal/types"
)

type View string

const (
	ViewHome         View = "home"
	ViewDetail       View = "detail"
	ViewLogin        View = "login"
	ViewRegister     View = "register"
	ViewProfile      View = "profile"
	ViewCreateRecipe View = "create-recipe"
	ViewUpdateRecipe View = "update-recipe"
)

// Tab is a section of the profile view.
type Tab string

const (
	TabRecipes     Tab = "recipes"
	TabCollections Tab = "collections"
	TabMealPlan    Tab = "mealplan"
	TabFavorites   Tab = "favorites"
)

var tabLabels = map[Tab]string{
	TabRecipes:     "Recetas",
	TabCollections: "Colecciones",
	TabMealPlan:    "Plan Semanal",
	TabFavorites:   "Favoritos",
}

func (t Tab) Label() string {
	if l, ok := tabLabels[t]; ok {
		return l
	}
	return string(t)
}

// OwnerOnly reports whether the tab is shown only on the viewer's own
// profile.
func (t Tab) OwnerOnly() bool {
	return t == TabMealPlan || t == TabFavorites
}

// ParseTab maps a flag value to a Tab, defaulting to recipes.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabCollections, TabMealPlan, TabFavorites:
		return Tab(s)
	case "meal-plan", "plan":
		return TabMealPlan
	}
	return TabRecipes
}

var (
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrNotPermitted      = errors.New("not permitted to edit this recipe")
	ErrNoSession         = errors.New("sign in required")
	ErrNoRecipe          = errors.New("no recipe selected")
)

// anywhere marks views reachable from the header of every view.
const anywhere = "*"

// enteredFrom lists, per target view, the views it may be entered from.
var enteredFrom = map[View][]View{
	ViewHome:         {anywhere},
	ViewLogin:        {anywhere},
	ViewRegister:     {anywhere},
	ViewProfile:      {anywhere},
	ViewCreateRecipe: {anywhere},
	ViewDetail:       {ViewHome, ViewProfile, ViewDetail, ViewUpdateRecipe},
	ViewUpdateRecipe: {ViewDetail},
}

// CanTransition reports whether the table allows moving from one view to
// another.
func CanTransition(from, to View) bool {
	for _, v := range enteredFrom[to] {
		if v == anywhere || v == from {
			return true
		}
	}
	return false
}

// State is a snapshot of the router.
type State struct {
	View          View
	Session       *types.Session
	Selected      *types.Recipe
	ViewedProfile *types.UserSummary
	InitialTab    Tab
	Mount         uuid.UUID
}

// Viewer returns the signed-in identity, or nil.
func (s State) Viewer() *types.UserSummary {
	if s.Session == nil {
		return nil
	}
	u := s.Session.User
	return &u
}

// Token returns the bearer token, or "".
func (s State) Token() string {
	if s.Session == nil {
		return ""
	}
	return s.Session.Token
}

// SessionStore is the part of session.Store the router drives.
type SessionStore interface {
	Current() *types.Session
	Login(ctx context.Context, s types.Session) error
	Logout(ctx context.Context) error
	Subscribe(fn session.Listener) func()
}

// Router is safe for concurrent use. Listeners run outside the lock.
type Router struct {
	sessions SessionStore
	logger   *zap.Logger

	mu          sync.RWMutex
	state       State
	listeners   map[int]func(State)
	nextID      int
	unsubscribe func()
}

// New starts on the home view with whatever session the store holds and
// follows the store from then on.
func New(sessions SessionStore, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		sessions:  sessions,
		logger:    logger,
		listeners: make(map[int]func(State)),
		state: State{
			View:       ViewHome,
			Session:    sessions.Current(),
			InitialTab: TabRecipes,
			Mount:      uuid.New(),
		},
	}
	r.unsubscribe = sessions.Subscribe(r.onSession)
	return r
}

// Close stops following the session store.
func (r *Router) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

// onSession keeps the router's copy of the session current. Losing a
// session forces the login view.
func (r *Router) onSession(s *types.Session) {
	r.mu.Lock()
	hadSession := r.state.Session != nil
	r.state.Session = s
	if s == nil && hadSession {
		r.state.View = ViewLogin
		r.state.ViewedProfile = nil
		r.state.Selected = nil
		r.state.InitialTab = TabRecipes
		r.state.Mount = uuid.New()
	}
	snap := r.state
	r.mu.Unlock()
	r.publish(snap)
}

// State returns a snapshot.
func (r *Router) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Subscribe registers fn for every state change.
func (r *Router) Subscribe(fn func(State)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *Router) publish(s State) {
	r.mu.RLock()
	fns := make([]func(State), 0, len(r.listeners))
	for i := 0; i < r.nextID; i++ {
		if fn, ok := r.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	r.mu.RUnlock()
	for _, fn := range fns {
		fn(s)
	}
}

// move applies mutate and switches to view `to`, starting a new mount.
// check runs under the lock before anything changes.
func (r *Router) move(to View, check func(*State) error, mutate func(*State)) error {
	r.mu.Lock()
	from := r.state.View
	if !CanTransition(from, to) {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if check != nil {
		if err := check(&r.state); err != nil {
			r.mu.Unlock()
			return err
		}
	}
	if mutate != nil {
		mutate(&r.state)
	}
	r.state.View = to
	r.state.Mount = uuid.New()
	snap := r.state
	r.mu.Unlock()

	r.logger.Debug("view changed", zap.String("from", string(from)), zap.String("to", string(to)))
	r.publish(snap)
	return nil
}

// SelectRecipe opens the detail view of rec.
func (r *Router) SelectRecipe(rec types.Recipe) error {
	return r.move(ViewDetail, nil, func(s *State) { s.Selected = &rec })
}

// EditRecipe opens the update form for the selected recipe when the viewer
// is its author or an admin.
func (r *Router) EditRecipe() error {
	return r.move(ViewUpdateRecipe, func(s *State) error {
		if s.Selected == nil {
			return ErrNoRecipe
		}
		if !s.Selected.CanBeEditedBy(s.Viewer()) {
			return ErrNotPermitted
		}
		return nil
	}, nil)
}

// FinishEdit returns to the detail view, showing updated when the server
// returned it.
func (r *Router) FinishEdit(updated *types.Recipe) error {
	return r.fromUpdate(func(s *State) {
		if updated != nil {
			cp := *updated
			s.Selected = &cp
		}
	})
}

func (r *Router) CancelEdit() error {
	return r.fromUpdate(nil)
}

func (r *Router) fromUpdate(mutate func(*State)) error {
	return r.move(ViewDetail, func(s *State) error {
		if s.View != ViewUpdateRecipe {
			return fmt.Errorf("%w: not editing", ErrInvalidTransition)
		}
		return nil
	}, mutate)
}

// StartCreate opens the recipe form. It requires a session.
func (r *Router) StartCreate() error {
	return r.move(ViewCreateRecipe, func(s *State) error {
		if s.Session == nil {
			return ErrNoSession
		}
		return nil
	}, func(s *State) { s.Selected = nil })
}

func (r *Router) CancelCreate() error {
	return r.ShowHome()
}

// FinishCreate shows the author's own profile on the recipes tab.
func (r *Router) FinishCreate() error {
	return r.move(ViewProfile, func(s *State) error {
		if s.Session == nil {
			return ErrNoSession
		}
		return nil
	}, func(s *State) {
		u := s.Session.User
		s.ViewedProfile = &u
		s.InitialTab = TabRecipes
	})
}

func (r *Router) ShowHome() error {
	return r.move(ViewHome, nil, func(s *State) { s.Selected = nil })
}

func (r *Router) ShowLogin() error {
	return r.move(ViewLogin, nil, nil)
}

func (r *Router) ShowRegister() error {
	return r.move(ViewRegister, nil, nil)
}

// Authenticated signs sess in and opens the user's own profile.
func (r *Router) Authenticated(ctx context.Context, sess types.Session) error {
	if err := r.sessions.Login(ctx, sess); err != nil {
		return err
	}
	return r.move(ViewProfile, nil, func(s *State) {
		u := sess.User
		s.ViewedProfile = &u
		s.InitialTab = TabRecipes
	})
}

// Logout signs out and shows the login view.
func (r *Router) Logout(ctx context.Context) error {
	err := r.sessions.Logout(ctx)
	if r.State().View != ViewLogin {
		if moveErr := r.ShowLogin(); moveErr != nil && err == nil {
			err = moveErr
		}
	}
	r.mu.Lock()
	r.state.ViewedProfile = nil
	r.mu.Unlock()
	return err
}

// GoToProfile opens user's profile on tab, or on recipes when tab is empty.
func (r *Router) GoToProfile(user types.UserSummary, tab Tab) error {
	if tab == "" {
		tab = TabRecipes
	}
	return r.move(ViewProfile, nil, func(s *State) {
		s.ViewedProfile = &user
		s.InitialTab = tab
	})
}

// Lease binds a component to the current mount. Results that arrive after
// the next transition are stale.
type Lease struct {
	router *Router
	mount  uuid.UUID
}

func (r *Router) Lease() Lease {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Lease{router: r, mount: r.state.Mount}
}

// Alive reports whether the mount the lease was taken on is still current.
// The zero Lease is always alive.
func (l Lease) Alive() bool {
	if l.router == nil {
		return true
	}
	l.router.mu.RLock()
	defer l.router.mu.RUnlock()
	return l.router.state.Mount == l.mount
}

func (l Lease) Mount() uuid.UUID {
	return l.mount
}
