package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/types"
)

func (a *app) collectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections [user-id]",
		Aliases: []string{"collection"},
		Short:   "List and manage recipe collections",
		Long: `List a user's collections, yours by default. Recipes are saved into
collections from your favorites.

Examples:
  chefctl collections
  chefctl collections 7
  chefctl collections create Domingos --recipe 3 --recipe 5
  chefctl collections add 2 8
  chefctl collections show 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.listCollections,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list [user-id]",
			Short: "List a user's collections",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.listCollections,
		},
		a.collectionCreateCmd(),
		a.collectionAddCmd(),
		a.collectionShowCmd(),
		a.collectionRemoveCmd(),
	)
	return cmd
}

func (a *app) listCollections(cmd *cobra.Command, args []string) error {
	userID, err := a.profileTarget(args)
	if err != nil {
		return err
	}
	p, err := a.openProfile(cmd.Context(), userID, router.TabCollections)
	if err != nil {
		return err
	}
	cols := p.Collections()
	return a.print(cols, func() string {
		return a.styles.CollectionTable(cols)
	})
}

// selectFavorites opens the favorites tab in selection mode with ids
// picked in order, then opens the collection modal.
func (a *app) selectFavorites(ctx context.Context, ids []int64) (*service.Profile, *service.CollectionModal, error) {
	p, err := a.ownProfile(ctx, router.TabFavorites)
	if err != nil {
		return nil, nil, err
	}
	favs := make(map[int64]types.Recipe)
	for _, r := range p.Favorites() {
		favs[r.ID] = r
	}
	if err := p.ToggleSelectionMode(); err != nil {
		return nil, nil, err
	}
	for _, id := range ids {
		r, ok := favs[id]
		if !ok {
			return nil, nil, fmt.Errorf("la receta %d no está en tus favoritos", id)
		}
		if !p.IsSelected(id) {
			p.ClickRecipe(r)
		}
	}
	modal, err := p.OpenCollectionModal()
	if err != nil {
		return nil, nil, err
	}
	return p, modal, nil
}

// save runs the save pipeline and reports the success notice.
func (a *app) save(ctx context.Context, p *service.Profile, modal *service.CollectionModal) error {
	saved, err := p.SaveCollection(ctx)
	if err != nil {
		return inline(modal.Err(), err)
	}
	notice := "Recetas añadidas a \"" + saved.Name + "\""
	if d := p.Dialog(); d != nil {
		notice = d.Message()
		// success dialogs only acknowledge
		_ = d.Confirm(ctx)
	}
	return a.print(saved, func() string {
		return a.styles.Notice.Render(notice)
	})
}

func parseIDs(args []string, what string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg, what)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (a *app) collectionCreateCmd() *cobra.Command {
	var description string
	var recipes []int64
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection, optionally filled from your favorites",
		Long: `Create a collection. Recipes given with --recipe must be among your
favorites and are added in the order given. If an add fails, the
collection keeps the recipes added before it.

Examples:
  chefctl collections create Domingos
  chefctl collections create Domingos --description "Para la familia" --recipe 3 --recipe 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}
			if len(recipes) == 0 {
				col, err := a.api.CreateCollection(cmd.Context(), sess.Token, types.CollectionRequest{
					Name:        args[0],
					Description: description,
				})
				if err != nil {
					return err
				}
				return a.print(col, func() string {
					return a.styles.Notice.Render(fmt.Sprintf("Colección creada: #%d %s", col.ID, col.Name))
				})
			}

			p, modal, err := a.selectFavorites(cmd.Context(), recipes)
			if err != nil {
				return err
			}
			modal.SetName(args[0])
			modal.SetDescription(description)
			return a.save(cmd.Context(), p, modal)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "collection description")
	cmd.Flags().Int64SliceVar(&recipes, "recipe", nil, "favorite recipe id to add (repeatable)")
	return cmd
}

func (a *app) collectionAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <collection-id> <recipe-id>...",
		Short: "Add favorite recipes to one of your collections",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID, err := parseID(args[0], "id de colección")
			if err != nil {
				return err
			}
			ids, err := parseIDs(args[1:], "id de receta")
			if err != nil {
				return err
			}
			p, modal, err := a.selectFavorites(cmd.Context(), ids)
			if err != nil {
				return err
			}
			if err := modal.SetMode(service.ModeExisting); err != nil {
				return errors.New(render.EmptyCollections)
			}
			if err := modal.Choose(collectionID); err != nil {
				return fmt.Errorf("la colección %d no es tuya", collectionID)
			}
			return a.save(cmd.Context(), p, modal)
		},
	}
}

// openCollection loads the owner's profile and opens one collection.
func (a *app) openCollection(ctx context.Context, userID, collectionID int64) (*service.Profile, *types.Collection, error) {
	p, err := a.openProfile(ctx, userID, router.TabCollections)
	if err != nil {
		return nil, nil, err
	}
	for _, c := range p.Collections() {
		if c.ID == collectionID {
			p.OpenCollection(c)
			return p, p.OpenedCollection(), nil
		}
	}
	return nil, nil, fmt.Errorf("colección %d no encontrada", collectionID)
}

func (a *app) collectionShowCmd() *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "show <collection-id>",
		Short: "List the recipes in a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID, err := parseID(args[0], "id de colección")
			if err != nil {
				return err
			}
			if userID == 0 {
				if userID, err = a.profileTarget(nil); err != nil {
					return err
				}
			}
			_, col, err := a.openCollection(cmd.Context(), userID, collectionID)
			if err != nil {
				return err
			}
			return a.print(col, func() string {
				out := a.styles.RecipeTable(col.Name, col.Recipes, render.EmptyCollection)
				if col.Description != "" {
					out = a.styles.Muted.Render(col.Description) + "\n" + out
				}
				return out
			})
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "owner user id (default you)")
	return cmd
}

func (a *app) collectionRemoveCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "remove <collection-id> <recipe-id>",
		Short: "Remove a recipe from one of your collections",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID, err := parseID(args[0], "id de colección")
			if err != nil {
				return err
			}
			recipeID, err := parseID(args[1], "id de receta")
			if err != nil {
				return err
			}
			sess, err := a.requireSession()
			if err != nil {
				return err
			}
			p, _, err := a.openCollection(cmd.Context(), sess.User.ID, collectionID)
			if err != nil {
				return err
			}
			dialog, err := p.RequestRemoveFromCollection(recipeID)
			if errors.Is(err, service.ErrNotInSelection) {
				return fmt.Errorf("la receta %d no está en la colección %d", recipeID, collectionID)
			}
			if err != nil {
				return err
			}
			if !force && !a.confirm(dialog.Message()) {
				dialog.Cancel()
				return a.message("Cancelado")
			}
			if err := dialog.Confirm(cmd.Context()); err != nil {
				return inline(dialog.Err(), err)
			}
			return a.message("Receta quitada de la colección")
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
