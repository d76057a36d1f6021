// Package cli implements the chefctl command tree. Every command runs the
// same view-state components as the terminal UI and prints what they hold.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/config"
	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/logging"
	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/session"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// app is the state shared by one invocation of the command tree.
type app struct {
	configFile string
	apiURL     string
	output     string
	debug      bool

	in  *bufio.Reader
	out io.Writer

	cfg          *config.Config
	logger       *zap.Logger
	api          *client.Client
	sessions     *session.Store
	router       *router.Router
	styles       render.Styles
	closeStorage func() error
}

// NewRootCmd builds a fresh chefctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{in: bufio.NewReader(os.Stdin), out: os.Stdout, styles: render.DefaultStyles()}

	root := &cobra.Command{
		Use:   "chefctl",
		Short: "ChefCommunity from the terminal",
		Long: `chefctl browses and manages ChefCommunity recipes, profiles, collections
and meal plans against a ChefCommunity backend.

Examples:
  chefctl login --email ana@example.com
  chefctl feed
  chefctl recipe show 12
  chefctl profile --tab mealplan
  chefctl ui`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.in = bufio.NewReader(cmd.InOrStdin())
			a.out = cmd.OutOrStdout()
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default chefctl.yaml)")
	flags.StringVar(&a.apiURL, "api-url", "", "backend base URL (overrides api.base_url)")
	flags.StringVarP(&a.output, "output", "o", OutputTable, "output format: table, json or yaml")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.feedCmd(),
		a.recipeCmd(),
		a.profileCmd(),
		a.followCmd(),
		a.favoritesCmd(),
		a.mealPlanCmd(),
		a.shoppingListCmd(),
		a.collectionsCmd(),
		a.uiCmd(),
	)
	return root
}

// Execute runs chefctl with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(ctx context.Context) error {
	switch a.output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q (table, json, yaml)", a.output)
	}

	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(a.apiURL, "/")
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log, a.debug)
	if err != nil {
		return err
	}
	a.logger = logger

	a.api = client.New(
		client.WithBaseURL(cfg.API.BaseURL),
		client.WithTimeout(cfg.API.Timeout),
		client.WithLogger(logger),
	)

	storage, closeStorage, err := session.NewStorage(ctx, cfg.Session, logger)
	if err != nil {
		return fmt.Errorf("failed to open session storage: %w", err)
	}
	a.closeStorage = closeStorage

	a.sessions = session.NewStore(storage, logger)
	if err := a.sessions.Init(ctx); err != nil {
		return err
	}
	a.router = router.New(a.sessions, logger)
	return nil
}

func (a *app) teardown() error {
	if a.router != nil {
		a.router.Close()
	}
	var err error
	if a.closeStorage != nil {
		err = a.closeStorage()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}
