// Package app wires configuration, storage and services into a runnable
// drill shared by both binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/daydrill/internal/adapter/memstore"
	"github.com/heartmarshall/daydrill/internal/adapter/postgres"
	"github.com/heartmarshall/daydrill/internal/adapter/sqlite"
	"github.com/heartmarshall/daydrill/internal/adapter/tabular"
	"github.com/heartmarshall/daydrill/internal/config"
	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/service/drill"
	"github.com/heartmarshall/daydrill/internal/service/wrongbank"
)

// Store is the durable key-value backend of the wrong bank.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, blob []byte) error
	Ping(ctx context.Context) error
}

// Runtime holds the wired components. Close releases storage.
type Runtime struct {
	Store  Store
	Bank   *wrongbank.Bank
	Drill  *drill.Service
	Codec  *tabular.Codec
	closer func()
}

// Bootstrap opens the configured store, loads the wrong bank and builds the
// drill service.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	logger.Info("starting daydrill",
		slog.String("version", BuildVersion()),
		slog.String("storage", cfg.Storage.Driver),
	)

	store, closer, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	codec := tabular.New()
	bank := wrongbank.NewBank(logger, store, codec, wrongbank.Config{
		Key:          cfg.Storage.BankKey,
		ExportZone:   cfg.Quiz.ExportLocation,
		ExportPrefix: cfg.Quiz.ExportPrefix,
	})
	if err := bank.Load(ctx); err != nil {
		closer()
		return nil, fmt.Errorf("load wrong bank: %w", err)
	}

	mode, err := domain.ParseMode(cfg.Quiz.DefaultMode)
	if err != nil {
		mode = domain.ModeWordToMeaning
	}

	return &Runtime{
		Store:  store,
		Bank:   bank,
		Drill:  drill.NewService(logger, bank, codec, mode, nil),
		Codec:  codec,
		closer: closer,
	}, nil
}

// Close releases the store.
func (rt *Runtime) Close() {
	if rt.closer != nil {
		rt.closer()
	}
}

// OpenStore connects the backend named by cfg.Storage.Driver. The returned
// func closes it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("memory storage: the wrong bank is lost on exit")
		return memstore.New(), func() {}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return postgres.NewKVStore(pool), pool.Close, nil

	case config.DriverSQLite, "":
		store, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.Storage.SQLitePath, err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("close sqlite", slog.String("error", err.Error()))
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
