package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

func TestDefault_ListsBuiltInModules(t *testing.T) {
	modules, err := Default().List(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"core", "sales", "marketing", "service", "bi"}, ids)
	assert.Equal(t, 350.0, modules[0].Price)
}

func TestQuote(t *testing.T) {
	c := Default()
	quote, err := c.Quote(context.Background(), []ports.QuoteLine{
		{ModuleID: "core", Quantity: 2},
		{ModuleID: "bi", Quantity: 1},
		{ModuleID: "sales", Quantity: 0},
	})
	require.NoError(t, err)
	require.Len(t, quote.Modules, 2)
	assert.Equal(t, "core", quote.Modules[0].ID)
	assert.Equal(t, 900.0, quote.TotalValue)

	_, err = c.Quote(context.Background(), []ports.QuoteLine{{ModuleID: "erp", Quantity: 1}})
	require.ErrorIs(t, err, ports.ErrUnknownModule)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modules:\n  - id: x\n    name: X\n    price: 10\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	m, err := c.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 10.0, m.Price)
}

func TestParse_Rejects(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":     "modules: []",
		"duplicate": "modules:\n  - id: a\n  - id: a\n",
		"negative":  "modules:\n  - id: a\n    price: -1\n",
		"no id":     "modules:\n  - name: A\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			require.Error(t, err)
		})
	}
}
