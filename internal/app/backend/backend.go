// Package backend selects the voucher request store once at process start.
package backend

import (
	"context"
	"log/slog"

	voucherlocal "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/local"
	voucherpostgres "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/persistence/postgres"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
	"github.com/Apurer/voucher-portal/internal/platform/config"
	"github.com/Apurer/voucher-portal/internal/platform/kv"
	"github.com/Apurer/voucher-portal/internal/platform/migrations"
	platformpostgres "github.com/Apurer/voucher-portal/internal/platform/postgres"
)

// Open returns the postgres repository when POSTGRES_DSN is set and the
// database is reachable and migrated, otherwise the local repository. The
// choice holds for the lifetime of the returned repository.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (voucherports.Repository, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PostgresDSN != "" {
		repo, cleanup, err := openPostgres(ctx, cfg)
		if err == nil {
			logger.Info("voucher repository configured with postgres")
			return repo, cleanup, nil
		}
		logger.Warn("postgres unavailable, falling back to local voucher store", slog.String("error", err.Error()))
	} else {
		logger.Warn("POSTGRES_DSN not set, using local voucher store")
	}
	return openLocal(cfg, logger)
}

// Shared reports whether a store of the given kind, opened with cfg, is the
// one every process started with cfg resolves to: postgres when POSTGRES_DSN
// is set, otherwise the sqlite file at LOCAL_STORE_PATH. A postgres fallback
// and the in-memory store are private to the process that opened them.
func Shared(cfg config.Config, kind string) bool {
	if cfg.PostgresDSN != "" {
		return kind == postgresKind
	}
	return kind == localKind && cfg.LocalStorePath != ""
}

const (
	postgresKind = "postgres"
	localKind    = "local"
)

func openPostgres(ctx context.Context, cfg config.Config) (voucherports.Repository, func(), error) {
	db, cleanup, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresConnectTimeout)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		cleanup()
		return nil, nil, err
	}
	return voucherpostgres.NewRepository(db), cleanup, nil
}

func openLocal(cfg config.Config, logger *slog.Logger) (voucherports.Repository, func(), error) {
	var store kv.Store = kv.NewMemory()
	if cfg.LocalStorePath != "" {
		sqlite, err := kv.OpenSQLite(cfg.LocalStorePath)
		if err != nil {
			return nil, nil, err
		}
		store = sqlite
		logger.Info("local voucher store backed by sqlite", slog.String("path", cfg.LocalStorePath))
	} else {
		logger.Info("local voucher store kept in memory")
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close local voucher store", slog.String("error", err.Error()))
		}
	}
	return voucherlocal.NewRepository(store, cfg.LocalStoreKey), cleanup, nil
}
