package ports

import (
	"context"
	"errors"

	"github.com/Apurer/voucher-portal/internal/domains/staff/domain"
)

var ErrNotFound = errors.New("staff user not found")
var ErrInvalidCredentials = errors.New("invalid username or password")

// Directory is the read-only source of staff members.
type Directory interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
