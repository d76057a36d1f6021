// Command seed populates a running ChefCommunity backend with generated
// users, recipes, likes and follows through its REST API.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/config"
	"github.com/chefcommunity/client/internal/client"
	"github.com/chefcommunity/client/internal/logging"
	"github.com/chefcommunity/client/internal/models"
	"github.com/chefcommunity/client/internal/seeder"
)

var (
	configFile string
	apiURL     string
	debug      bool
	seedValue  int64
	opts       seeder.Options
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a ChefCommunity backend with generated data",
	Long: `seed registers generated accounts and publishes recipes for them, then
has every account like a few recipes and follow a few cooks.

Every account uses the password "` + models.SeedPassword + `". Running the
command again with the same --seed signs into the existing accounts.

Examples:
  seed --api-url http://localhost:5000
  seed --users 25 --recipes 4 --seed 42`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file (default chefctl.yaml)")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "backend base URL (overrides api.base_url)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed (0 picks one)")
	rootCmd.Flags().IntVar(&opts.Users, "users", 10, "accounts to create")
	rootCmd.Flags().IntVar(&opts.RecipesPerUser, "recipes", 3, "recipes per account")
	rootCmd.Flags().IntVar(&opts.LikesPerUser, "likes", 5, "likes per account")
	rootCmd.Flags().IntVar(&opts.FollowsPerUser, "follows", 3, "follows per account")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	api := client.New(
		client.WithBaseURL(cfg.API.BaseURL),
		client.WithTimeout(cfg.API.Timeout),
		client.WithLogger(logger),
	)

	fake := faker.New()
	if seedValue != 0 {
		fake = faker.NewWithSeed(rand.NewSource(seedValue))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := seeder.New(api, fake, logger).Run(ctx, opts)
	if err != nil {
		logger.Error("seeding failed", zap.Error(err))
		return err
	}
	fmt.Printf("Seeded %d users, %d recipes, %d likes, %d follows at %s\n",
		sum.Users, sum.Recipes, sum.Likes, sum.Follows, cfg.API.BaseURL)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
