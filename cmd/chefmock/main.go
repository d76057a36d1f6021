// Command chefmock runs an in-memory ChefCommunity backend for local
// development and integration testing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/config"
	"github.com/chefcommunity/client/internal/logging"
	"github.com/chefcommunity/client/internal/server"
)

var (
	configFile     string
	addr           string
	seed           bool
	seedUsers      int
	recipesPerUser int
	debug          bool
)

var rootCmd = &cobra.Command{
	Use:   "chefmock",
	Short: "Run an in-memory ChefCommunity backend",
	Long: `chefmock serves the ChefCommunity REST API from memory.

Data is lost when the process exits. Use --seed to start with generated
users and recipes; every seeded account uses the password "cinta1234".

Examples:
  chefmock
  chefmock --addr :8080 --seed --seed-users 20`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file (default chefctl.yaml)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides mock.addr)")
	rootCmd.Flags().BoolVar(&seed, "seed", false, "populate the store with generated data")
	rootCmd.Flags().IntVar(&seedUsers, "seed-users", 10, "number of users to generate")
	rootCmd.Flags().IntVar(&recipesPerUser, "seed-recipes", 3, "recipes generated per user")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
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

	if addr != "" {
		cfg.Mock.Addr = addr
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New(cfg.Mock, nil, logger)
	if seed || cfg.Mock.Seed {
		if err := srv.Seed(faker.New(), seedUsers, recipesPerUser); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
