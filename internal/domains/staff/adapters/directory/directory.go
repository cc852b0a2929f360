// Package directory is the static, file-backed staff list.
package directory

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Apurer/voucher-portal/internal/domains/staff/domain"
	"github.com/Apurer/voucher-portal/internal/domains/staff/ports"
)

//go:embed staff.yaml
var defaultStaff []byte

var _ ports.Directory = (*Directory)(nil)

type file struct {
	Users []struct {
		ID           string `yaml:"id"`
		Username     string `yaml:"username"`
		Name         string `yaml:"name"`
		Role         string `yaml:"role"`
		PasswordHash string `yaml:"passwordHash"`
	} `yaml:"users"`
}

// Directory is an immutable in-memory staff list.
type Directory struct {
	users      []domain.User
	byID       map[string]int
	byUsername map[string]int
}

// Default returns the built-in staff list.
func Default() *Directory {
	d, err := Parse(defaultStaff)
	if err != nil {
		panic(fmt.Sprintf("embedded staff directory: %v", err))
	}
	return d
}

// Load reads a staff file, or returns Default when path is empty.
func Load(path string) (*Directory, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read staff directory: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Directory, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode staff directory: %w", err)
	}
	d := &Directory{byID: map[string]int{}, byUsername: map[string]int{}}
	for _, entry := range f.Users {
		u := domain.User{
			ID:           strings.TrimSpace(entry.ID),
			Username:     strings.TrimSpace(entry.Username),
			Name:         entry.Name,
			Role:         domain.Role(entry.Role),
			PasswordHash: strings.ToLower(strings.TrimSpace(entry.PasswordHash)),
		}
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("staff %q: %w", entry.ID, err)
		}
		if _, dup := d.byID[u.ID]; dup {
			return nil, fmt.Errorf("staff id %q listed twice", u.ID)
		}
		if _, dup := d.byUsername[u.Username]; dup {
			return nil, fmt.Errorf("staff username %q listed twice", u.Username)
		}
		d.byID[u.ID] = len(d.users)
		d.byUsername[u.Username] = len(d.users)
		d.users = append(d.users, u)
	}
	return d, nil
}

func (d *Directory) GetByID(_ context.Context, id string) (domain.User, error) {
	if idx, ok := d.byID[id]; ok {
		return d.users[idx], nil
	}
	return domain.User{}, ports.ErrNotFound
}

func (d *Directory) GetByUsername(_ context.Context, username string) (domain.User, error) {
	if idx, ok := d.byUsername[username]; ok {
		return d.users[idx], nil
	}
	return domain.User{}, ports.ErrNotFound
}

func (d *Directory) List(context.Context) ([]domain.User, error) {
	return append([]domain.User{}, d.users...), nil
}
