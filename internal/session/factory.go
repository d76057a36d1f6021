package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/chefcommunity/client/config"
	"github.com/chefcommunity/client/internal/database"
)

// NewStorage builds the backend selected by cfg.Driver. The returned close
// function releases any connection the backend holds.
func NewStorage(ctx context.Context, cfg config.SessionConfig, logger *zap.Logger) (Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStorage(cfg.Path), noop, nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.Open(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return NewGormStorage(db), func() error { return database.Close(db) }, nil

	case config.DriverRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStorage(client, cfg.KeyPrefix), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported session driver %q", cfg.Driver)
}
