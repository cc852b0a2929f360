package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts backed by PostgreSQL.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&voucherRequestRecord{},
	)
}

// Voucher request schema mirrors the vouchers Postgres adapter.
type voucherRequestRecord struct {
	ID             string          `gorm:"primaryKey;column:id;size:64"`
	SubmissionDate time.Time       `gorm:"column:submission_date;index"`
	Status         string          `gorm:"column:status;type:varchar(32);index"`
	PartnerName    string          `gorm:"column:partner_name"`
	ContactName    string          `gorm:"column:contact_name"`
	CustomerName   string          `gorm:"column:customer_name"`
	CustomerVAT    string          `gorm:"column:customer_vat"`
	Modules        []voucherModule `gorm:"column:modules;serializer:json"`
	ModuleIDs      pq.StringArray  `gorm:"column:module_ids;type:text[]"`
	TotalValue     decimal.Decimal `gorm:"column:total_value;type:numeric(12,2)"`
	ApprovedBy     string          `gorm:"column:approved_by"`
	CreatedAt      time.Time       `gorm:"column:created_at;index"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (voucherRequestRecord) TableName() string { return "voucher_requests" }

type voucherModule struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}
