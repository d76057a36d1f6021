package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/service"
)

func (a *app) mealPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mealplan",
		Aliases: []string{"plan"},
		Short:   "Show your weekly meal plan",
		Long: `Show the meals you planned, grouped by day. Add meals with
"chefctl recipe plan".

Examples:
  chefctl mealplan
  chefctl mealplan remove 4`,
		Args: cobra.NoArgs,
		RunE: a.listMealPlan,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show your weekly meal plan",
			Args:  cobra.NoArgs,
			RunE:  a.listMealPlan,
		},
		a.mealPlanRemoveCmd(),
	)
	return cmd
}

func (a *app) listMealPlan(cmd *cobra.Command, args []string) error {
	p, err := a.ownProfile(cmd.Context(), router.TabMealPlan)
	if err != nil {
		return err
	}
	groups := p.MealPlan()
	return a.print(groups, func() string {
		return a.styles.MealPlanTable(groups)
	})
}

func (a *app) mealPlanRemoveCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Remove a planned meal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseID(args[0], "id de entrada")
			if err != nil {
				return err
			}
			p, err := a.ownProfile(cmd.Context(), router.TabMealPlan)
			if err != nil {
				return err
			}
			dialog, err := p.RequestRemoveMealPlan(entryID)
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
			return a.message("Comida eliminada del plan")
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}

func (a *app) shoppingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shopping-list",
		Short: "Build the shopping list for your meal plan",
		Long: `Aggregate the ingredients of every planned recipe into one list.

Examples:
  chefctl shopping-list
  chefctl shopping-list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ownProfile(cmd.Context(), router.TabMealPlan)
			if err != nil {
				return err
			}
			items, err := p.GenerateShoppingList(cmd.Context())
			if errors.Is(err, service.ErrEmptyMealPlan) {
				return errors.New(render.EmptyMealPlan)
			}
			if err != nil {
				return inline(p.Err(), err)
			}
			return a.print(items, func() string {
				return a.styles.ShoppingList(items)
			})
		},
	}
}
