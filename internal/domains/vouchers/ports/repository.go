package ports

import (
	"context"
	"errors"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
)

var (
	ErrNotFound = errors.New("voucher request not found")
	// ErrBackendUnavailable wraps every failure of the underlying store.
	ErrBackendUnavailable = errors.New("voucher store unavailable")
)

// StatusMutation computes the next state of a stored request. Returning
// changed=false leaves the stored record untouched.
type StatusMutation func(current domain.VoucherRequest) (next domain.VoucherRequest, changed bool, err error)

// UpsertGuard inspects the stored version of a request (found=false when
// absent) before it is overwritten. Returning write=false keeps the stored
// version; a non-nil error aborts the write.
type UpsertGuard func(existing domain.VoucherRequest, found bool) (write bool, err error)

// Repository is the durable home of voucher requests. Exactly one
// implementation is selected per process.
type Repository interface {
	// List returns every request, newest submission first.
	List(ctx context.Context) ([]domain.VoucherRequest, error)
	// Get returns a single request or ErrNotFound.
	Get(ctx context.Context, id string) (domain.VoucherRequest, error)
	// ListByModule returns the requests carrying at least one of moduleIDs,
	// in List order.
	ListByModule(ctx context.Context, moduleIDs []string) ([]domain.VoucherRequest, error)
	// Upsert writes req keyed by its id, overwriting any previous version.
	Upsert(ctx context.Context, req domain.VoucherRequest) error
	// UpsertIf consults guard and writes req in the same atomic step. It
	// returns the version left in the store and whether req was written.
	UpsertIf(ctx context.Context, req domain.VoucherRequest, guard UpsertGuard) (domain.VoucherRequest, bool, error)
	// UpdateStatus loads id, applies mutate and stores the result atomically
	// with respect to other writers of the same backend.
	UpdateStatus(ctx context.Context, id string, mutate StatusMutation) (domain.VoucherRequest, error)
	// Kind names the backend, for logs and diagnostics.
	Kind() string
}
