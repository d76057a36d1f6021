package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/types"
)

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s inválido: %q", what, arg)
	}
	return id, nil
}

// inline prefers the component's inline message over the raw error.
func inline(msg string, err error) error {
	if msg != "" {
		return errors.New(msg)
	}
	return err
}

func (a *app) feedCmd() *cobra.Command {
	var filter types.RecipeFilter
	var difficulty string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "List recipes",
		Long: `Without flags, show the home feed: recipes by followed authors when
signed in, the public feed otherwise. Any flag queries the recipe list
directly.

Examples:
  chefctl feed
  chefctl feed --sort likes --category Postre
  chefctl feed --search tortilla --difficulty Fácil
  chefctl feed --author 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Difficulty = types.Difficulty(difficulty)
			if filter == (types.RecipeFilter{}) {
				feed := service.NewFeed(a.api, a.logger)
				recipes := feed.Load(cmd.Context(), a.sessions.Current())
				return a.print(recipes, func() string {
					return a.styles.RecipeTable(strings.ToUpper(feed.Title()), recipes, feed.EmptyText())
				})
			}

			recipes, err := a.api.ListRecipes(cmd.Context(), a.sessions.Token(), filter)
			if err != nil {
				return err
			}
			return a.print(recipes, func() string {
				return a.styles.RecipeTable("RECETAS", recipes, render.EmptyRecipes)
			})
		},
	}
	cmd.Flags().StringVar(&filter.Sort, "sort", "", "newest, likes or following")
	cmd.Flags().StringVar(&filter.Category, "category", "", "category filter")
	cmd.Flags().StringVar(&filter.Search, "search", "", "title search")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Fácil, Media or Difícil")
	cmd.Flags().Int64Var(&filter.AuthorID, "author", 0, "author user id")
	return cmd
}

func (a *app) recipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Show, publish and manage recipes",
	}
	cmd.AddCommand(
		a.recipeShowCmd(),
		a.recipeCreateCmd(),
		a.recipeUpdateCmd(),
		a.recipeDeleteCmd(),
		a.recipeLikeCmd(),
		a.recipePlanCmd(),
	)
	return cmd
}

// openRecipe fetches the recipe and opens it the way selecting a card does.
func (a *app) openRecipe(ctx context.Context, arg string) (*service.RecipeDetail, error) {
	id, err := parseID(arg, "id de receta")
	if err != nil {
		return nil, err
	}
	full, err := a.api.GetRecipe(ctx, a.sessions.Token(), id)
	if err != nil {
		return nil, err
	}
	if err := a.router.SelectRecipe(*full); err != nil {
		return nil, err
	}
	return service.NewRecipeDetail(a.api, service.DetailParams{
		Recipe:    *full,
		Session:   a.sessions.Current(),
		Lease:     a.router.Lease(),
		Logger:    a.logger,
		OnDeleted: func() { _ = a.router.ShowHome() },
	}), nil
}

func (a *app) recipeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe-id>",
		Short: "Show a recipe with its ingredients and steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := a.openRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			r := detail.Recipe()
			return a.print(r, func() string {
				return a.styles.RecipeDetail(r, detail.Steps(), detail.Liked(), detail.LikesCount())
			})
		},
	}
}

// recipeFlags are the editable fields shared by create and update.
type recipeFlags struct {
	title        string
	description  string
	instructions string
	category     string
	difficulty   string
	prepTime     int
	calories     int
	ingredients  []string
}

func (f *recipeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "recipe title")
	fl.StringVar(&f.description, "description", "", "short description")
	fl.StringVar(&f.instructions, "instructions", "", `instructions, one step per line ("\n" separates steps)`)
	fl.StringVar(&f.category, "category", "", "Desayuno, Comida, Cena, Snack or Postre")
	fl.StringVar(&f.difficulty, "difficulty", "", "Fácil, Media or Difícil")
	fl.IntVar(&f.prepTime, "prep-time", 0, "preparation time in minutes")
	fl.IntVar(&f.calories, "calories", 0, "calories per serving")
	fl.StringArrayVar(&f.ingredients, "ingredient", nil, `ingredient as "name=quantity" (repeatable)`)
}

// apply copies the flags that were set onto form. Ingredients given on the
// command line replace the existing list.
func (f *recipeFlags) apply(cmd *cobra.Command, form *service.RecipeForm) error {
	changed := cmd.Flags().Changed
	if changed("category") && !knownCategory(f.category) {
		return fmt.Errorf("categoría %q no disponible: %s", f.category, strings.Join(types.Categories, ", "))
	}
	if changed("difficulty") && !types.Difficulty(f.difficulty).Known() {
		return fmt.Errorf("dificultad %q no disponible: Fácil, Media o Difícil", f.difficulty)
	}
	form.Update(func(r *service.RecipeFields) {
		if changed("title") {
			r.Title = f.title
		}
		if changed("description") {
			r.Description = f.description
		}
		if changed("instructions") {
			r.Instructions = strings.ReplaceAll(f.instructions, `\n`, "\n")
		}
		if changed("category") {
			r.Category = f.category
		}
		if changed("difficulty") {
			r.Difficulty = types.Difficulty(f.difficulty)
		}
		if changed("prep-time") {
			r.PrepTime = f.prepTime
		}
		if changed("calories") {
			r.Calories = f.calories
		}
		if changed("ingredient") {
			r.Ingredients = []types.IngredientInput{}
		}
	})
	for _, raw := range f.ingredients {
		name, qty, ok := strings.Cut(raw, "=")
		if !ok || !form.AddIngredient(name, qty) {
			return fmt.Errorf("ingrediente inválido %q: usa nombre=cantidad", raw)
		}
	}
	return nil
}

func knownCategory(c string) bool {
	for _, k := range types.Categories {
		if k == c {
			return true
		}
	}
	return false
}

func (a *app) recipeCreateCmd() *cobra.Command {
	var fields recipeFlags
	var image, video string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new recipe",
		Long: `Publish a recipe as the signed-in user. Images and videos are uploaded
with the recipe.

Examples:
  chefctl recipe create --title Gazpacho --instructions "Triturar\nEnfriar" \
    --ingredient "Tomate=1 kg" --ingredient "Pepino=1" --category Comida
  chefctl recipe create --title Flan --instructions "Hornear" --image flan.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.router.StartCreate(); err != nil {
				if errors.Is(err, router.ErrNoSession) {
					return ErrNotSignedIn
				}
				return err
			}
			form := service.NewRecipeForm(a.api, nil)
			if err := fields.apply(cmd, form); err != nil {
				return err
			}
			mainImage, err := service.ReadAttachment(image)
			if err != nil {
				return err
			}
			clip, err := service.ReadAttachment(video)
			if err != nil {
				return err
			}
			form.Update(func(r *service.RecipeFields) {
				r.MainImage = mainImage
				r.Video = clip
			})

			saved, err := form.Submit(cmd.Context(), a.sessions.Token())
			if err != nil {
				return inline(form.Err(), err)
			}
			if err := a.router.FinishCreate(); err != nil {
				return err
			}
			return a.print(saved, func() string {
				return a.styles.Notice.Render(fmt.Sprintf("Receta publicada: #%d %s", saved.ID, saved.Title))
			})
		},
	}
	fields.register(cmd)
	cmd.Flags().StringVar(&image, "image", "", "main image file")
	cmd.Flags().StringVar(&video, "video", "", "video file")
	return cmd
}

func (a *app) recipeUpdateCmd() *cobra.Command {
	var fields recipeFlags
	cmd := &cobra.Command{
		Use:   "update <recipe-id>",
		Short: "Edit one of your recipes",
		Long: `Edit a recipe you wrote (admins may edit any). Only the flags given are
changed; --ingredient replaces the whole list. Media is kept.

Examples:
  chefctl recipe update 12 --title "Gazpacho andaluz"
  chefctl recipe update 12 --ingredient "Tomate=1.5 kg" --ingredient "Ajo=1 diente"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			detail, err := a.openRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.router.EditRecipe(); err != nil {
				if errors.Is(err, router.ErrNotPermitted) {
					return service.ErrNotAuthor
				}
				return err
			}
			existing := detail.Recipe()
			form := service.NewRecipeForm(a.api, &existing)
			if err := fields.apply(cmd, form); err != nil {
				_ = a.router.CancelEdit()
				return err
			}

			saved, err := form.Submit(cmd.Context(), a.sessions.Token())
			if err != nil {
				return inline(form.Err(), err)
			}
			if err := a.router.FinishEdit(saved); err != nil {
				return err
			}
			return a.print(saved, func() string {
				return a.styles.Notice.Render(fmt.Sprintf("Receta actualizada: #%d %s", saved.ID, saved.Title))
			})
		},
	}
	fields.register(cmd)
	return cmd
}

func (a *app) recipeDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <recipe-id>",
		Short: "Delete one of your recipes",
		Long: `Delete a recipe you wrote (admins may delete any). Asks for
confirmation unless --force is given.

Examples:
  chefctl recipe delete 12
  chefctl recipe delete 12 --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			detail, err := a.openRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			dialog, err := detail.RequestDelete()
			if err != nil {
				return err
			}
			if !force && !a.confirm(dialog.Title()+" "+dialog.Message()) {
				dialog.Cancel()
				return a.message("Cancelado")
			}
			if err := dialog.Confirm(cmd.Context()); err != nil {
				return inline(dialog.Err(), err)
			}
			return a.message("Receta eliminada")
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}

type likeResult struct {
	RecipeID   int64 `json:"recipe_id"`
	Liked      bool  `json:"liked"`
	LikesCount int   `json:"likes_count"`
}

func (a *app) recipeLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <recipe-id>",
		Short: "Like or unlike a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := a.openRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := detail.ToggleLike(cmd.Context()); err != nil {
				return inline(detail.Err(), err)
			}
			res := likeResult{RecipeID: detail.Recipe().ID, Liked: detail.Liked(), LikesCount: detail.LikesCount()}
			return a.print(res, func() string {
				return a.styles.Likes(res.Liked, res.LikesCount)
			})
		},
	}
}

func parseMealTime(s string) (types.MealTime, error) {
	if s == "" {
		return types.DefaultMealTime, nil
	}
	for _, m := range types.MealTimes {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("comida %q no disponible: Desayuno, Comida o Cena", s)
}

func (a *app) recipePlanCmd() *cobra.Command {
	var date, meal string
	cmd := &cobra.Command{
		Use:   "plan <recipe-id>",
		Short: "Add a recipe to your meal plan",
		Long: `Schedule a recipe on a date (YYYY-MM-DD, today or later) for breakfast,
lunch or dinner.

Examples:
  chefctl recipe plan 12 --date 2026-11-02
  chefctl recipe plan 12 --date 2026-11-02 --meal Cena`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mealTime, err := parseMealTime(meal)
			if err != nil {
				return err
			}
			detail, err := a.openRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			dialog := detail.OpenPlanDialog()
			if date != "" {
				if err := dialog.SetDate(date); errors.Is(err, service.ErrPastDate) {
					return fmt.Errorf("la fecha debe ser %s o posterior", dialog.MinDate())
				} else if err != nil {
					return fmt.Errorf("fecha inválida %q: usa AAAA-MM-DD", date)
				}
			}
			if err := dialog.SetMealTime(mealTime); err != nil {
				return err
			}
			if err := dialog.Submit(cmd.Context()); err != nil {
				return inline(dialog.Err(), err)
			}
			return a.message(detail.Notice())
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "plan date, YYYY-MM-DD")
	cmd.Flags().StringVar(&meal, "meal", "", "Desayuno, Comida or Cena (default Comida)")
	return cmd
}
