// Package catalog serves the software modules partners can put on a voucher.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	"github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var _ ports.Catalog = (*Catalog)(nil)

type file struct {
	Modules []struct {
		ID          string  `yaml:"id"`
		Name        string  `yaml:"name"`
		Description string  `yaml:"description"`
		Price       float64 `yaml:"price"`
	} `yaml:"modules"`
}

// Catalog is an immutable, ordered module list.
type Catalog struct {
	modules []domain.SoftwareModule
	byID    map[string]int
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog file, or returns Default when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog and checks ids are unique and prices non-negative.
func Parse(raw []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Modules) == 0 {
		return nil, errors.New("catalog has no modules")
	}
	c := &Catalog{byID: make(map[string]int, len(f.Modules))}
	for _, m := range f.Modules {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return nil, errors.New("catalog module without id")
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("catalog module %q listed twice", id)
		}
		if m.Price < 0 {
			return nil, fmt.Errorf("catalog module %q: %w", id, domain.ErrNegativePrice)
		}
		c.byID[id] = len(c.modules)
		c.modules = append(c.modules, domain.SoftwareModule{
			ID:          id,
			Name:        m.Name,
			Description: m.Description,
			Price:       m.Price,
		})
	}
	return c, nil
}

func (c *Catalog) List(context.Context) ([]domain.SoftwareModule, error) {
	return append([]domain.SoftwareModule{}, c.modules...), nil
}

func (c *Catalog) Get(_ context.Context, id string) (domain.SoftwareModule, error) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.SoftwareModule{}, fmt.Errorf("%w: %s", ports.ErrUnknownModule, id)
	}
	return c.modules[idx], nil
}

// Quote prices the requested lines. Lines with a non-positive quantity are
// dropped; repeated ids keep the last quantity.
func (c *Catalog) Quote(ctx context.Context, lines []ports.QuoteLine) (ports.Quote, error) {
	sel := domain.NewModuleSelection()
	for _, line := range lines {
		module, err := c.Get(ctx, line.ModuleID)
		if err != nil {
			return ports.Quote{}, err
		}
		sel.Set(module, line.Quantity)
	}
	return ports.Quote{Modules: sel.Modules(), TotalValue: sel.Total()}, nil
}
