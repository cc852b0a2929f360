package backend

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	"github.com/Apurer/voucher-portal/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRequest(t *testing.T) domain.VoucherRequest {
	t.Helper()
	req, err := domain.NewVoucherRequest("req-1", time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), domain.PartnerInfo{
		PartnerName:  "Rossi Informatica",
		ContactName:  "Mario Rossi",
		CustomerName: "Acme S.p.A.",
		CustomerVAT:  "IT01234567890",
	}, []domain.SelectedModule{{SoftwareModule: domain.SoftwareModule{ID: "core", Name: "Ydea Core", Price: 350}, Quantity: 1}})
	require.NoError(t, err)
	return *req
}

func TestOpen_WithoutDSNUsesMemory(t *testing.T) {
	repo, cleanup, err := Open(context.Background(), config.Config{LocalStoreKey: "k"}, discardLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, "local", repo.Kind())
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_UnreachablePostgresFallsBackToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vouchers.db")
	cfg := config.Config{
		PostgresDSN:            "host=127.0.0.1 port=1 user=nobody dbname=none sslmode=disable connect_timeout=1",
		PostgresConnectTimeout: time.Second,
		LocalStorePath:         path,
		LocalStoreKey:          "ydea_voucher_requests",
	}

	repo, cleanup, err := Open(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "local", repo.Kind())
	require.NoError(t, repo.Upsert(context.Background(), sampleRequest(t)))
	cleanup()

	reopened, cleanup, err := Open(context.Background(), config.Config{LocalStorePath: path, LocalStoreKey: "ydea_voucher_requests"}, discardLogger())
	require.NoError(t, err)
	defer cleanup()
	got, err := reopened.Get(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, 350.0, got.TotalValue)
}

func TestShared(t *testing.T) {
	dsn := "host=db user=app dbname=vouchers"
	cases := []struct {
		name string
		cfg  config.Config
		kind string
		want bool
	}{
		{"memory", config.Config{}, "local", false},
		{"sqlite file", config.Config{LocalStorePath: "/var/lib/vouchers.db"}, "local", true},
		{"postgres", config.Config{PostgresDSN: dsn}, "postgres", true},
		{"postgres fell back to sqlite", config.Config{PostgresDSN: dsn, LocalStorePath: "/var/lib/vouchers.db"}, "local", false},
		{"postgres fell back to memory", config.Config{PostgresDSN: dsn}, "local", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Shared(tc.cfg, tc.kind))
		})
	}
}
