package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tripcart/internal/client/client"
	"github.com/dmitrijs2005/tripcart/internal/client/config"
	"github.com/dmitrijs2005/tripcart/internal/client/repositories/metadata"
)

// openStore builds the metadata store selected by cfg.StoreBackend. The
// returned close function releases the backend.
func openStore(ctx context.Context, cfg *config.Config) (metadata.Repository, func() error, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		db, err := client.InitDatabase(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return metadata.NewSQLiteRepository(db), db.Close, nil

	case config.StoreRedis:
		repo, err := metadata.ConnectRedis(ctx, metadata.RedisConfig{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open redis store: %w", err)
		}
		return repo, repo.Close, nil

	case config.StoreMemory:
		return metadata.NewMemoryRepository(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
