// Package local is the fallback backend: the whole request set is kept as one
// JSON array under a single key of a kv.Store.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	"github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
	"github.com/Apurer/voucher-portal/internal/platform/kv"
)

// DefaultKey is the key the request set is stored under.
const DefaultKey = "ydea_voucher_requests"

var _ ports.Repository = (*Repository)(nil)

// Repository is the local voucher persistence adapter.
type Repository struct {
	store kv.Store
	key   string
}

// NewRepository stores requests under key (DefaultKey when empty).
func NewRepository(store kv.Store, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{store: store, key: key}
}

func (r *Repository) Kind() string { return "local" }

// List returns the stored set sorted by submission date, newest first. Requests
// with the same date keep reverse insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.VoucherRequest, error) {
	raw, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrBackendUnavailable, err)
	}
	if !found {
		return []domain.VoucherRequest{}, nil
	}
	docs, err := decode(raw)
	if err != nil {
		return nil, err
	}
	requests := make([]domain.VoucherRequest, 0, len(docs))
	for i := len(docs) - 1; i >= 0; i-- {
		req, err := docs[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ports.ErrBackendUnavailable, err)
		}
		requests = append(requests, req)
	}
	slices.SortStableFunc(requests, func(a, b domain.VoucherRequest) int {
		return b.SubmissionDate.Compare(a.SubmissionDate)
	})
	return requests, nil
}

func (r *Repository) Get(ctx context.Context, id string) (domain.VoucherRequest, error) {
	requests, err := r.List(ctx)
	if err != nil {
		return domain.VoucherRequest{}, err
	}
	for _, req := range requests {
		if req.ID == id {
			return req, nil
		}
	}
	return domain.VoucherRequest{}, ports.ErrNotFound
}

// ListByModule filters List down to requests carrying any of moduleIDs.
func (r *Repository) ListByModule(ctx context.Context, moduleIDs []string) ([]domain.VoucherRequest, error) {
	requests, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(requests, func(req domain.VoucherRequest) bool {
		return !slices.ContainsFunc(req.Modules, func(m domain.SelectedModule) bool {
			return slices.Contains(moduleIDs, m.ID)
		})
	}), nil
}

// Upsert replaces the entry with the same id in place or appends a new one.
func (r *Repository) Upsert(ctx context.Context, req domain.VoucherRequest) error {
	_, _, err := r.UpsertIf(ctx, req, nil)
	return err
}

// UpsertIf runs guard against the stored entry inside the same kv update that
// writes req. A nil guard always writes.
func (r *Repository) UpsertIf(ctx context.Context, req domain.VoucherRequest, guard ports.UpsertGuard) (domain.VoucherRequest, bool, error) {
	doc := toDocument(req)
	result := req.Clone()
	written := false
	err := r.update(ctx, func(docs []document) ([]document, error) {
		idx := slices.IndexFunc(docs, func(d document) bool { return d.ID == doc.ID })
		if guard != nil {
			var existing domain.VoucherRequest
			if idx >= 0 {
				var err error
				if existing, err = docs[idx].toDomain(); err != nil {
					return nil, fmt.Errorf("%w: %w", ports.ErrBackendUnavailable, err)
				}
			}
			write, err := guard(existing, idx >= 0)
			if err != nil {
				return nil, err
			}
			if !write {
				result = existing
				return nil, nil
			}
		}
		written = true
		if idx >= 0 {
			docs[idx] = doc
			return docs, nil
		}
		return append(docs, doc), nil
	})
	if err != nil {
		return domain.VoucherRequest{}, false, err
	}
	return result, written, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, mutate ports.StatusMutation) (domain.VoucherRequest, error) {
	var result domain.VoucherRequest
	err := r.update(ctx, func(docs []document) ([]document, error) {
		for i := range docs {
			if docs[i].ID != id {
				continue
			}
			current, err := docs[i].toDomain()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ports.ErrBackendUnavailable, err)
			}
			next, changed, err := mutate(current)
			if err != nil {
				return nil, err
			}
			if !changed {
				result = current
				return nil, nil
			}
			docs[i].Status = string(next.Status)
			docs[i].ApprovedBy = next.ApprovedBy
			result, err = docs[i].toDomain()
			if err != nil {
				return nil, err
			}
			return docs, nil
		}
		return nil, ports.ErrNotFound
	})
	if err != nil {
		return domain.VoucherRequest{}, err
	}
	return result, nil
}

// update runs fn over the decoded set inside one kv.Store.Update. A nil
// result from fn skips the write. Errors returned by fn pass through as-is.
func (r *Repository) update(ctx context.Context, fn func([]document) ([]document, error)) error {
	var fnErr error
	err := r.store.Update(ctx, r.key, func(current []byte, found bool) ([]byte, error) {
		var docs []document
		if found {
			if docs, fnErr = decode(current); fnErr != nil {
				return nil, fnErr
			}
		}
		var next []document
		if next, fnErr = fn(docs); fnErr != nil || next == nil {
			return nil, fnErr
		}
		return json.Marshal(next)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrBackendUnavailable, err)
	}
	return nil
}

func decode(raw []byte) ([]document, error) {
	var docs []document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode stored requests: %w", ports.ErrBackendUnavailable, err)
	}
	return docs, nil
}
