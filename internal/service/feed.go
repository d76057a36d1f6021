package service

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/types"
)

// FeedStatus distinguishes a pending fetch from a settled feed.
type FeedStatus string

const (
	FeedLoading FeedStatus = "loading"
	FeedReady   FeedStatus = "ready"
)

// Feed is the home view's recipe list. It reloads once per session change
// and swallows failures into an empty feed.
type Feed struct {
	api    IRecipeAPI
	logger *zap.Logger

	mu            sync.Mutex
	status        FeedStatus
	recipes       []types.Recipe
	authenticated bool
	seq           int
	lastKey       string
}

func NewFeed(api IRecipeAPI, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{api: api, logger: logger, status: FeedLoading}
}

func sessionKey(s *types.Session) string {
	if s == nil {
		return ""
	}
	return strconv.FormatInt(s.User.ID, 10) + ":" + s.Token
}

// Watch loads for the current session and again on every identity or
// token change until the returned stop function is called.
func (f *Feed) Watch(ctx context.Context, sessions SessionSource) (stop func()) {
	onChange := func(s *types.Session) {
		f.mu.Lock()
		key := sessionKey(s)
		same := key == f.lastKey && f.seq > 0
		f.mu.Unlock()
		if !same {
			f.Load(ctx, s)
		}
	}
	stop = sessions.Subscribe(onChange)
	onChange(sessions.Current())
	return stop
}

// Load issues one fetch: the following feed when authenticated, the public
// feed otherwise. A reply overtaken by a newer Load is dropped.
func (f *Feed) Load(ctx context.Context, s *types.Session) []types.Recipe {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.lastKey = sessionKey(s)
	f.status = FeedLoading
	f.authenticated = s != nil
	f.mu.Unlock()

	token := ""
	filter := types.RecipeFilter{}
	if s != nil {
		token = s.Token
		filter.Sort = types.SortFollowing
	}

	recipes, err := f.api.ListRecipes(ctx, token, filter)
	if err != nil {
		f.logger.Warn("feed load failed", zap.Bool("authenticated", s != nil), zap.Error(err))
		recipes = nil
	}
	if recipes == nil {
		recipes = []types.Recipe{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		return f.recipes
	}
	f.recipes = recipes
	f.status = FeedReady
	return recipes
}

// Reload refetches for s, e.g. after a recipe was deleted.
func (f *Feed) Reload(ctx context.Context, s *types.Session) []types.Recipe {
	return f.Load(ctx, s)
}

func (f *Feed) Status() FeedStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Recipes returns a copy of the current list.
func (f *Feed) Recipes() []types.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.Recipe, len(f.recipes))
	copy(out, f.recipes)
	return out
}

func (f *Feed) Title() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authenticated {
		return "Tu Feed"
	}
	return "Cintas Frescas"
}

// EmptyText is shown for a settled feed with no recipes.
func (f *Feed) EmptyText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == FeedReady && len(f.recipes) == 0 {
		return MsgEmptyFeed
	}
	return ""
}
