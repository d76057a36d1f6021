// Package seeder populates a ChefCommunity backend through its REST API
// with generated users, recipes, likes and follows.
package seeder

import (
	"context"
	"fmt"

	"github.com/jaswdr/faker"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/models"
	"github.com/chefcommunity/client/internal/types"
)

// API is the part of the REST client the seeder drives.
type API interface {
	Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error)
	CreateRecipe(ctx context.Context, token string, in types.RecipeInput, mainImage, video *types.Attachment) (*types.Recipe, error)
	ToggleLike(ctx context.Context, token string, id int64) (*types.ToggleResult, error)
	ToggleFollow(ctx context.Context, token string, userID int64) (*types.ToggleResult, error)
}

// Options controls how much data is generated.
type Options struct {
	Users          int
	RecipesPerUser int
	// LikesPerUser and FollowsPerUser are upper bounds; picks that would
	// target the user's own content are skipped.
	LikesPerUser   int
	FollowsPerUser int
}

// Summary counts what was created.
type Summary struct {
	Users   int
	Recipes int
	Likes   int
	Follows int
}

type Seeder struct {
	api    API
	fake   faker.Faker
	logger *zap.Logger
}

func New(api API, fake faker.Faker, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{api: api, fake: fake, logger: logger}
}

// Run seeds the backend. Accounts that already exist are signed into
// with models.SeedPassword instead of failing the run.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	sessions := make([]types.Session, 0, opts.Users)
	var recipes []types.Recipe

	for i := 0; i < opts.Users; i++ {
		u := models.GenerateUser(s.fake, i)
		sess, err := s.account(ctx, u)
		if err != nil {
			return sum, err
		}
		sessions = append(sessions, sess)
		sum.Users++

		for j := 0; j < opts.RecipesPerUser; j++ {
			r, err := s.api.CreateRecipe(ctx, sess.Token, models.GenerateRecipe(s.fake), nil, nil)
			if err != nil {
				return sum, fmt.Errorf("failed to create recipe for %s: %w", u.Username, err)
			}
			recipes = append(recipes, *r)
			sum.Recipes++
		}
	}

	for _, sess := range sessions {
		for k := 0; k < opts.LikesPerUser && len(recipes) > 0; k++ {
			r := recipes[s.fake.IntBetween(0, len(recipes)-1)]
			if r.AuthorID == sess.User.ID {
				continue
			}
			res, err := s.api.ToggleLike(ctx, sess.Token, r.ID)
			if err != nil {
				return sum, fmt.Errorf("failed to like recipe %d: %w", r.ID, err)
			}
			if res.Action == types.ActionLiked {
				sum.Likes++
			} else {
				sum.Likes--
			}
		}
		for k := 0; k < opts.FollowsPerUser && len(sessions) > 1; k++ {
			other := sessions[s.fake.IntBetween(0, len(sessions)-1)]
			if other.User.ID == sess.User.ID {
				continue
			}
			res, err := s.api.ToggleFollow(ctx, sess.Token, other.User.ID)
			if err != nil {
				return sum, fmt.Errorf("failed to follow user %d: %w", other.User.ID, err)
			}
			if res.Action == types.ActionFollowed {
				sum.Follows++
			} else {
				sum.Follows--
			}
		}
	}

	s.logger.Info("seeding complete",
		zap.Int("users", sum.Users),
		zap.Int("recipes", sum.Recipes),
		zap.Int("likes", sum.Likes),
		zap.Int("follows", sum.Follows))
	return sum, nil
}

func (s *Seeder) account(ctx context.Context, u models.SeedUser) (types.Session, error) {
	resp, err := s.api.Register(ctx, types.RegisterRequest{
		Username: u.Username, Email: u.Email, Password: u.Password, Rol: u.Rol,
	})
	if client.IsConflict(err) {
		s.logger.Debug("account exists, signing in", zap.String("email", u.Email))
		resp, err = s.api.Login(ctx, types.LoginRequest{Email: u.Email, Password: u.Password})
	}
	if err != nil {
		return types.Session{}, fmt.Errorf("failed to create user %s: %w", u.Username, err)
	}
	return resp.Session(), nil
}
