package ports

import (
	"context"
	"errors"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
)

var ErrUnknownModule = errors.New("software module not in catalog")

// QuoteLine is one requested catalog entry.
type QuoteLine struct {
	ModuleID string
	Quantity int
}

// Quote is the priced module selection shown on the wizard summary step.
type Quote struct {
	Modules    []domain.SelectedModule
	TotalValue float64
}

// Catalog lists the software modules that can be put on a voucher.
type Catalog interface {
	List(ctx context.Context) ([]domain.SoftwareModule, error)
	Get(ctx context.Context, id string) (domain.SoftwareModule, error)
	Quote(ctx context.Context, lines []QuoteLine) (Quote, error)
}
