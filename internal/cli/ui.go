package cli

import (
	"github.com/spf13/cobra"

	"github.com/chefcommunity/client/internal/tui"
)

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal app",
		Long: `Open the full-screen app: feed, recipe detail, profiles, collections,
meal plan and the recipe editor. Press q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), tui.Deps{
				API:    a.api,
				Router: a.router,
				Logger: a.logger,
				Styles: a.styles,
			})
		},
	}
}
