package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/types"
)

// openProfile navigates to the profile of userID and loads it on tab.
func (a *app) openProfile(ctx context.Context, userID int64, tab router.Tab) (*service.Profile, error) {
	if err := a.router.GoToProfile(types.UserSummary{ID: userID}, tab); err != nil {
		return nil, err
	}
	p := service.NewProfile(a.api, service.ProfileParams{
		UserID:     userID,
		Session:    a.sessions.Current(),
		InitialTab: tab,
		Lease:      a.router.Lease(),
		Logger:     a.logger,
	})
	if err := p.Load(ctx); err != nil {
		return nil, inline(p.LoadErr(), err)
	}
	if msg := p.Err(); msg != "" {
		return nil, inline(msg, nil)
	}
	return p, nil
}

// ownProfile opens the signed-in user's profile.
func (a *app) ownProfile(ctx context.Context, tab router.Tab) (*service.Profile, error) {
	sess, err := a.requireSession()
	if err != nil {
		return nil, err
	}
	return a.openProfile(ctx, sess.User.ID, tab)
}

// profileTarget resolves an optional user-id argument, defaulting to the
// signed-in user.
func (a *app) profileTarget(args []string) (int64, error) {
	if len(args) > 0 {
		return parseID(args[0], "id de usuario")
	}
	sess, err := a.requireSession()
	if err != nil {
		return 0, err
	}
	return sess.User.ID, nil
}

type profileView struct {
	User        types.UserDetail   `json:"user"`
	IsFollowing bool               `json:"is_following"`
	IsOwner     bool               `json:"is_owner"`
	Tab         router.Tab         `json:"tab"`
	Recipes     []types.Recipe     `json:"recipes,omitempty"`
	Collections []types.Collection `json:"collections,omitempty"`
	MealPlan    []types.DayGroup   `json:"meal_plan,omitempty"`
	Favorites   []types.Recipe     `json:"favorites,omitempty"`
}

func (a *app) renderProfile(p *service.Profile) (profileView, func() string) {
	data := p.Data()
	v := profileView{
		User:        data.User,
		IsFollowing: data.IsFollowing,
		IsOwner:     p.IsOwner(),
		Tab:         p.Tab(),
	}
	s := a.styles

	var body string
	switch v.Tab {
	case router.TabCollections:
		v.Collections = p.Collections()
		body = s.CollectionTable(v.Collections)
	case router.TabMealPlan:
		v.MealPlan = p.MealPlan()
		body = s.MealPlanTable(v.MealPlan)
	case router.TabFavorites:
		v.Favorites = p.Favorites()
		body = s.RecipeTable("", v.Favorites, render.EmptyFavorites)
	default:
		v.Recipes = data.Recipes
		body = s.RecipeTable("", v.Recipes, render.EmptyRecipes)
	}

	tabs := p.Tabs()
	labels := make([]string, len(tabs))
	active := 0
	for i, t := range tabs {
		labels[i] = t.Label()
		if t == v.Tab {
			active = i
		}
	}
	return v, func() string {
		return strings.Join([]string{
			s.ProfileHeader(v.User, v.IsFollowing, v.IsOwner),
			s.Tabs(labels, active),
			body,
		}, "\n\n")
	}
}

func (a *app) profileCmd() *cobra.Command {
	var tab string
	cmd := &cobra.Command{
		Use:   "profile [user-id]",
		Short: "Show a profile",
		Long: `Show a user's profile and one of its tabs: recipes, collections,
mealplan or favorites. The last two exist only on your own profile.
Without a user id, your own profile is shown.

Examples:
  chefctl profile
  chefctl profile 7 --tab collections
  chefctl profile --tab mealplan`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.profileTarget(args)
			if err != nil {
				return err
			}
			t := router.ParseTab(tab)
			p, err := a.openProfile(cmd.Context(), userID, t)
			if err != nil {
				return err
			}
			if p.Tab() != t {
				a.logger.Debug("tab not available, showing recipes")
			}
			return a.print(a.renderProfile(p))
		},
	}
	cmd.Flags().StringVar(&tab, "tab", string(router.TabRecipes), "recipes, collections, mealplan or favorites")
	return cmd
}

type followResult struct {
	UserID         int64 `json:"user_id"`
	Following      bool  `json:"following"`
	FollowersCount int   `json:"followers_count"`
}

func (a *app) followCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <user-id>",
		Short: "Follow or unfollow a user",
		Long: `Toggle following a user. Followed authors fill your home feed.

Examples:
  chefctl follow 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0], "id de usuario")
			if err != nil {
				return err
			}
			p, err := a.openProfile(cmd.Context(), userID, router.TabRecipes)
			if err != nil {
				return err
			}
			if err := p.ToggleFollow(cmd.Context()); err != nil {
				return inline(p.Err(), err)
			}
			data := p.Data()
			res := followResult{UserID: userID, Following: data.IsFollowing, FollowersCount: data.User.FollowersCount}
			return a.print(res, func() string {
				verb := "Dejaste de seguir a"
				if res.Following {
					verb = "Ahora sigues a"
				}
				return a.styles.Notice.Render(verb+" @"+data.User.Username) +
					a.styles.Muted.Render(" ("+strconv.Itoa(res.FollowersCount)+" seguidores)")
			})
		},
	}
}

func (a *app) favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List the recipes you liked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ownProfile(cmd.Context(), router.TabFavorites)
			if err != nil {
				return err
			}
			favs := p.Favorites()
			return a.print(favs, func() string {
				return a.styles.RecipeTable(router.TabFavorites.Label(), favs, render.EmptyFavorites)
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "unlike <recipe-id>",
		Short: "Remove a recipe from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipeID, err := parseID(args[0], "id de receta")
			if err != nil {
				return err
			}
			p, err := a.ownProfile(cmd.Context(), router.TabFavorites)
			if err != nil {
				return err
			}
			if err := p.UnlikeFavorite(cmd.Context(), recipeID); err != nil {
				return inline(p.Err(), err)
			}
			return a.message("Receta quitada de favoritos")
		},
	})
	return cmd
}
