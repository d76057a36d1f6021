package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/mocks"
	"github.com/chefcommunity/client/internal/session"
	"github.com/chefcommunity/client/internal/types"
)

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage(), nil)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestFeed_ReloadsOncePerSessionChange(t *testing.T) {
	api := new(mocks.MockAPI)
	store := newSessionStore(t)
	public := []types.Recipe{{ID: 1, Title: "Gazpacho"}}
	following := []types.Recipe{{ID: 2, Title: "Flan"}}

	api.On("ListRecipes", mock.Anything, "", types.RecipeFilter{}).Return(public, nil).Once()
	api.On("ListRecipes", mock.Anything, "tok", types.RecipeFilter{Sort: types.SortFollowing}).Return(following, nil).Once()

	feed := NewFeed(api, nil)
	stop := feed.Watch(context.Background(), store)
	defer stop()

	assert.Equal(t, FeedReady, feed.Status())
	assert.Equal(t, "Cintas Frescas", feed.Title())
	assert.Equal(t, public, feed.Recipes())

	require.NoError(t, store.Login(context.Background(), types.Session{User: types.UserSummary{ID: 3}, Token: "tok"}))
	assert.Equal(t, "Tu Feed", feed.Title())
	assert.Equal(t, following, feed.Recipes())

	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "ListRecipes", 2)
}

func TestFeed_SkipsRepeatedIdentity(t *testing.T) {
	api := new(mocks.MockAPI)
	store := newSessionStore(t)
	api.On("ListRecipes", mock.Anything, "", types.RecipeFilter{}).Return([]types.Recipe{}, nil)

	feed := NewFeed(api, nil)
	stop := feed.Watch(context.Background(), store)
	require.NoError(t, store.Init(context.Background()))
	stop()

	api.AssertNumberOfCalls(t, "ListRecipes", 1)
}

func TestFeed_SwallowsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"api error", &client.Error{StatusCode: 500}},
		{"transport", fmt.Errorf("%w: %w", client.ErrTransport, errors.New("connection refused"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(mocks.MockAPI)
			api.On("ListRecipes", mock.Anything, "", types.RecipeFilter{}).Return(nil, tt.err).Once()

			feed := NewFeed(api, nil)
			got := feed.Load(context.Background(), nil)

			assert.Empty(t, got)
			assert.Equal(t, FeedReady, feed.Status())
			assert.Equal(t, MsgEmptyFeed, feed.EmptyText())
			api.AssertExpectations(t)
		})
	}
}

func TestFeed_LoadingHasNoEmptyText(t *testing.T) {
	feed := NewFeed(new(mocks.MockAPI), nil)
	assert.Equal(t, FeedLoading, feed.Status())
	assert.Empty(t, feed.EmptyText())
}
