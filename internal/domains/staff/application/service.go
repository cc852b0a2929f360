package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/voucher-portal/internal/domains/staff/domain"
	"github.com/Apurer/voucher-portal/internal/domains/staff/ports"
)

// Service exposes staff bounded context use cases.
type Service struct {
	dir ports.Directory
}

func NewService(dir ports.Directory) *Service {
	return &Service{dir: dir}
}

// Login checks the credentials against the directory. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, mapError(domain.ErrEmptyUsername)
	}
	if password == "" {
		return domain.User{}, mapError(domain.ErrEmptyPassword)
	}
	user, err := s.dir.GetByUsername(ctx, username)
	if errors.Is(err, ports.ErrNotFound) {
		return domain.User{}, mapError(ports.ErrInvalidCredentials)
	}
	if err != nil {
		return domain.User{}, err
	}
	if !user.CheckPassword(password) {
		return domain.User{}, mapError(ports.ErrInvalidCredentials)
	}
	return user.Public(), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.dir.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return domain.User{}, err
	}
	return user.Public(), nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.dir.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// VerifyActor succeeds when id names a staff member.
func (s *Service) VerifyActor(ctx context.Context, id string) error {
	_, err := s.GetByID(ctx, id)
	return err
}

var _ ports.Service = (*Service)(nil)
