package client

import (
	"context"
	"fmt"

	"github.com/chefcommunity/client/internal/types"
)

// GetProfile fetches a user's profile aggregate. With a token the response
// reports whether the viewer follows the user.
func (c *Client) GetProfile(ctx context.Context, token string, userID int64) (*types.ProfileAggregate, error) {
	var profile types.ProfileAggregate
	if err := c.get(ctx, fmt.Sprintf("/api/users/%d", userID), token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ToggleFollow follows or unfollows a user.
func (c *Client) ToggleFollow(ctx context.Context, token string, userID int64) (*types.ToggleResult, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var res types.ToggleResult
	if err := c.post(ctx, fmt.Sprintf("/api/users/%d/follow", userID), token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListFavorites returns the recipes the token's user has liked.
func (c *Client) ListFavorites(ctx context.Context, token string) ([]types.Recipe, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var recipes []types.Recipe
	if err := c.get(ctx, "/api/users/me/likes", token, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}
