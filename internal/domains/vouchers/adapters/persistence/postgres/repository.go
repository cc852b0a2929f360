package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	"github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists voucher requests in PostgreSQL using GORM, one row per request.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and runs migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// requestRecord maps the voucher request aggregate to a relational table.
type requestRecord struct {
	ID             string          `gorm:"primaryKey;column:id;size:64"`
	SubmissionDate time.Time       `gorm:"column:submission_date;index"`
	Status         string          `gorm:"column:status;type:varchar(32);index"`
	PartnerName    string          `gorm:"column:partner_name"`
	ContactName    string          `gorm:"column:contact_name"`
	CustomerName   string          `gorm:"column:customer_name"`
	CustomerVAT    string          `gorm:"column:customer_vat"`
	Modules        []moduleRecord  `gorm:"column:modules;serializer:json"`
	ModuleIDs      pq.StringArray  `gorm:"column:module_ids;type:text[]"`
	TotalValue     decimal.Decimal `gorm:"column:total_value;type:numeric(12,2)"`
	ApprovedBy     string          `gorm:"column:approved_by"`
	CreatedAt      time.Time       `gorm:"column:created_at;index"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (requestRecord) TableName() string { return "voucher_requests" }

type moduleRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func (r *Repository) Kind() string { return "postgres" }

// List returns every request, newest submission first.
func (r *Repository) List(ctx context.Context) ([]domain.VoucherRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []requestRecord
	if err := r.db.WithContext(ctx).
		Order("submission_date DESC").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, unavailable(err)
	}
	requests := make([]domain.VoucherRequest, 0, len(records))
	for i := range records {
		requests = append(requests, records[i].toDomain())
	}
	return requests, nil
}

// Get fetches a request by identifier.
func (r *Repository) Get(ctx context.Context, id string) (domain.VoucherRequest, error) {
	if err := r.ensureDB(); err != nil {
		return domain.VoucherRequest{}, err
	}
	var record requestRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VoucherRequest{}, ports.ErrNotFound
		}
		return domain.VoucherRequest{}, unavailable(err)
	}
	return record.toDomain(), nil
}

// ListByModule matches the module_ids array against moduleIDs with the
// overlap operator.
func (r *Repository) ListByModule(ctx context.Context, moduleIDs []string) ([]domain.VoucherRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []requestRecord
	if err := r.db.WithContext(ctx).
		Where("module_ids && ?", pq.StringArray(moduleIDs)).
		Order("submission_date DESC").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, unavailable(err)
	}
	requests := make([]domain.VoucherRequest, 0, len(records))
	for i := range records {
		requests = append(requests, records[i].toDomain())
	}
	return requests, nil
}

// Upsert inserts or overwrites the row keyed by the request id.
func (r *Repository) Upsert(ctx context.Context, req domain.VoucherRequest) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	record := toRecord(req)
	if err := upsertRecord(r.db.WithContext(ctx), &record); err != nil {
		return unavailable(err)
	}
	return nil
}

// UpsertIf locks the existing row, if any, before consulting guard. When no
// row exists the insert skips on conflict and the lookup is retried once, so
// a concurrent insert is seen by guard instead of being overwritten.
func (r *Repository) UpsertIf(ctx context.Context, req domain.VoucherRequest, guard ports.UpsertGuard) (domain.VoucherRequest, bool, error) {
	if err := r.ensureDB(); err != nil {
		return domain.VoucherRequest{}, false, err
	}
	if guard == nil {
		return req.Clone(), true, r.Upsert(ctx, req)
	}
	var (
		result      = req.Clone()
		written     bool
		passThrough error
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := toRecord(req)
		for attempt := 0; attempt < 2; attempt++ {
			var stored requestRecord
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&stored, "id = ?", req.ID).Error
			found := err == nil
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			var existing domain.VoucherRequest
			if found {
				existing = stored.toDomain()
			}
			write, err := guard(existing, found)
			if err != nil {
				passThrough = err
				return err
			}
			if !write {
				result = existing
				return nil
			}
			if found {
				if err := upsertRecord(tx, &record); err != nil {
					return err
				}
				written = true
				return nil
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				written = true
				return nil
			}
		}
		return fmt.Errorf("request %s changed concurrently", req.ID)
	})
	if passThrough != nil {
		return domain.VoucherRequest{}, false, passThrough
	}
	if err != nil {
		return domain.VoucherRequest{}, false, unavailable(err)
	}
	return result, written, nil
}

func upsertRecord(db *gorm.DB, record *requestRecord) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"submission_date": record.SubmissionDate,
			"status":          record.Status,
			"partner_name":    record.PartnerName,
			"contact_name":    record.ContactName,
			"customer_name":   record.CustomerName,
			"customer_vat":    record.CustomerVAT,
			"modules":         gorm.Expr("excluded.modules"),
			"module_ids":      record.ModuleIDs,
			"total_value":     record.TotalValue,
			"approved_by":     record.ApprovedBy,
			"updated_at":      gorm.Expr("NOW()"),
		}),
	}).Create(record).Error
}

// UpdateStatus locks the row, applies mutate and writes back status and
// approved_by only.
func (r *Repository) UpdateStatus(ctx context.Context, id string, mutate ports.StatusMutation) (domain.VoucherRequest, error) {
	if err := r.ensureDB(); err != nil {
		return domain.VoucherRequest{}, err
	}
	var (
		result      domain.VoucherRequest
		passThrough error
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record requestRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				passThrough = ports.ErrNotFound
				return passThrough
			}
			return err
		}
		current := record.toDomain()
		next, changed, err := mutate(current)
		if err != nil {
			passThrough = err
			return err
		}
		if !changed {
			result = current
			return nil
		}
		if err := tx.Model(&requestRecord{}).Where("id = ?", id).Updates(map[string]any{
			"status":      string(next.Status),
			"approved_by": next.ApprovedBy,
			"updated_at":  gorm.Expr("NOW()"),
		}).Error; err != nil {
			return err
		}
		current.Status = next.Status
		current.ApprovedBy = next.ApprovedBy
		result = current
		return nil
	})
	if passThrough != nil {
		return domain.VoucherRequest{}, passThrough
	}
	if err != nil {
		return domain.VoucherRequest{}, unavailable(err)
	}
	return result, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("%w: postgres voucher repository not configured", ports.ErrBackendUnavailable)
	}
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrBackendUnavailable, err)
}

func toRecord(req domain.VoucherRequest) requestRecord {
	modules := make([]moduleRecord, 0, len(req.Modules))
	ids := make(pq.StringArray, 0, len(req.Modules))
	for _, m := range req.Modules {
		modules = append(modules, moduleRecord{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Price:       m.Price,
			Quantity:    m.Quantity,
		})
		ids = append(ids, m.ID)
	}
	return requestRecord{
		ID:             req.ID,
		SubmissionDate: domain.NormalizeSubmissionDate(req.SubmissionDate),
		Status:         string(req.Status),
		PartnerName:    req.PartnerInfo.PartnerName,
		ContactName:    req.PartnerInfo.ContactName,
		CustomerName:   req.PartnerInfo.CustomerName,
		CustomerVAT:    req.PartnerInfo.CustomerVAT,
		Modules:        modules,
		ModuleIDs:      ids,
		TotalValue:     decimal.NewFromFloat(req.TotalValue).Round(2),
		ApprovedBy:     req.ApprovedBy,
	}
}

func (r requestRecord) toDomain() domain.VoucherRequest {
	modules := make([]domain.SelectedModule, 0, len(r.Modules))
	for _, m := range r.Modules {
		modules = append(modules, domain.SelectedModule{
			SoftwareModule: domain.SoftwareModule{
				ID:          m.ID,
				Name:        m.Name,
				Description: m.Description,
				Price:       m.Price,
			},
			Quantity: m.Quantity,
		})
	}
	return domain.VoucherRequest{
		ID:             r.ID,
		SubmissionDate: domain.NormalizeSubmissionDate(r.SubmissionDate),
		Status:         domain.RequestStatus(r.Status),
		PartnerInfo: domain.PartnerInfo{
			PartnerName:  r.PartnerName,
			ContactName:  r.ContactName,
			CustomerName: r.CustomerName,
			CustomerVAT:  r.CustomerVAT,
		},
		Modules:    modules,
		TotalValue: r.TotalValue.InexactFloat64(),
		ApprovedBy: r.ApprovedBy,
	}
}
