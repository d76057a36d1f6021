package client

import (
	"context"

	"github.com/chefcommunity/client/internal/types"
)

// Login exchanges credentials for a token and the user's profile.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.post(ctx, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns its first token.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.post(ctx, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*types.UserDetail, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var user types.UserDetail
	if err := c.get(ctx, "/api/auth/me", token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
