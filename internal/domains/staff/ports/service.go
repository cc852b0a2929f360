package ports

import (
	"context"

	"github.com/Apurer/voucher-portal/internal/domains/staff/domain"
)

// Service exposes staff use cases to adapters. Returned users never carry
// the password hash.
type Service interface {
	Login(ctx context.Context, username, password string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	VerifyActor(ctx context.Context, id string) error
}
