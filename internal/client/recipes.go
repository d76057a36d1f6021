package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/chefcommunity/client/internal/types"
)

// ListRecipes fetches the feed. The token is optional; the following sort
// only narrows results when it is present.
func (c *Client) ListRecipes(ctx context.Context, token string, filter types.RecipeFilter) ([]types.Recipe, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.AuthorID != 0 {
		q.Set("author_id", strconv.FormatInt(filter.AuthorID, 10))
	}
	if filter.Difficulty != "" {
		q.Set("difficulty", string(filter.Difficulty))
	}
	if filter.Sort != "" {
		q.Set("sort", filter.Sort)
	}

	path := "/api/recipes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var recipes []types.Recipe
	if err := c.get(ctx, path, token, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe fetches one recipe with its ingredients and the viewer's like.
func (c *Client) GetRecipe(ctx context.Context, token string, id int64) (*types.Recipe, error) {
	var recipe types.Recipe
	if err := c.get(ctx, fmt.Sprintf("/api/recipes/%d", id), token, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe publishes a recipe as multipart form data. Ingredients travel
// as a JSON-encoded string field; media files are optional.
func (c *Client) CreateRecipe(ctx context.Context, token string, in types.RecipeInput, mainImage, video *types.Attachment) (*types.Recipe, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	ingredients := in.Ingredients
	if ingredients == nil {
		ingredients = []types.IngredientInput{}
	}
	ingredientsJSON, err := json.Marshal(ingredients)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ingredients: %w", err)
	}

	write := func(mw *multipart.Writer) error {
		fields := [][2]string{
			{"title", in.Title},
			{"description", in.Description},
			{"instructions", in.Instructions},
			{"category", in.Category},
			{"prep_time", strconv.Itoa(in.PrepTime)},
			{"difficulty", string(in.Difficulty)},
			{"calories", strconv.Itoa(in.Calories)},
			{"ingredients", string(ingredientsJSON)},
		}
		for _, f := range fields {
			if err := mw.WriteField(f[0], f[1]); err != nil {
				return err
			}
		}
		if err := writeAttachment(mw, "main_image", mainImage); err != nil {
			return err
		}
		return writeAttachment(mw, "video", video)
	}

	var recipe types.Recipe
	if err := c.doMultipart(ctx, "/api/recipes/", token, write, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func writeAttachment(mw *multipart.Writer, field string, a *types.Attachment) error {
	if a == nil || a.Body == nil {
		return nil
	}
	part, err := mw.CreateFormFile(field, a.Filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, a.Body)
	return err
}

// UpdateRecipe replaces a recipe's fields with a JSON body.
func (c *Client) UpdateRecipe(ctx context.Context, token string, id int64, in types.RecipeInput) (*types.Recipe, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var recipe types.Recipe
	if err := c.put(ctx, fmt.Sprintf("/api/recipes/%d", id), token, in, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe. Only its author or an admin may do so.
func (c *Client) DeleteRecipe(ctx context.Context, token string, id int64) error {
	if err := requireToken(token); err != nil {
		return err
	}
	return c.delete(ctx, fmt.Sprintf("/api/recipes/%d", id), token, nil)
}

// ToggleLike likes or unlikes a recipe.
func (c *Client) ToggleLike(ctx context.Context, token string, id int64) (*types.ToggleResult, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var res types.ToggleResult
	if err := c.post(ctx, fmt.Sprintf("/api/recipes/%d/like", id), token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
