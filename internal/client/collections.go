package client

import (
	"context"
	"fmt"

	"github.com/chefcommunity/client/internal/types"
)

func (c *Client) ListCollections(ctx context.Context, token string) ([]types.Collection, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var cols []types.Collection
	if err := c.get(ctx, "/api/users/me/collections", token, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

func (c *Client) CreateCollection(ctx context.Context, token string, req types.CollectionRequest) (*types.Collection, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var col types.Collection
	if err := c.post(ctx, "/api/users/me/collections", token, req, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

// AddToCollection adds a recipe to one of the token user's collections.
// Adding a recipe that is already present is a no-op on the server.
func (c *Client) AddToCollection(ctx context.Context, token string, collectionID, recipeID int64) (*types.Collection, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var col types.Collection
	path := fmt.Sprintf("/api/users/me/collections/%d/add/%d", collectionID, recipeID)
	if err := c.post(ctx, path, token, nil, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

func (c *Client) RemoveFromCollection(ctx context.Context, token string, collectionID, recipeID int64) (*types.Collection, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var col types.Collection
	path := fmt.Sprintf("/api/users/me/collections/%d/recipes/%d", collectionID, recipeID)
	if err := c.delete(ctx, path, token, &col); err != nil {
		return nil, err
	}
	return &col, nil
}
