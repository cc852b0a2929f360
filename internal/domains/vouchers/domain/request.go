package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SubmissionDateLayout is the persisted form of a submission timestamp.
// Fixed width and always UTC, so lexical order equals chronological order.
const SubmissionDateLayout = "2006-01-02T15:04:05.000Z"

var (
	ErrEmptyID           = errors.New("request id is required")
	ErrMissingDate       = errors.New("submission date is required")
	ErrIncompletePartner = errors.New("partner name, contact name, customer name and customer VAT are required")
	ErrNoModules         = errors.New("at least one module must be selected")
	ErrInvalidQuantity   = errors.New("module quantity must be greater than zero")
	ErrDuplicateModule   = errors.New("module selected more than once")
	ErrNegativePrice     = errors.New("module price must be greater or equal to zero")
	ErrTotalMismatch     = errors.New("total value does not match the selected modules")
)

// SoftwareModule is an immutable catalog entry.
type SoftwareModule struct {
	ID          string
	Name        string
	Description string
	Price       float64
}

// SelectedModule is a catalog entry plus the quantity requested for it.
type SelectedModule struct {
	SoftwareModule
	Quantity int
}

// Subtotal returns price × quantity.
func (m SelectedModule) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(m.Price).Mul(decimal.NewFromInt(int64(m.Quantity)))
}

// PartnerInfo identifies the channel partner and the end customer.
type PartnerInfo struct {
	PartnerName  string
	ContactName  string
	CustomerName string
	CustomerVAT  string
}

// Validate requires every field to be non-blank.
func (p PartnerInfo) Validate() error {
	for _, v := range []string{p.PartnerName, p.ContactName, p.CustomerName, p.CustomerVAT} {
		if strings.TrimSpace(v) == "" {
			return ErrIncompletePartner
		}
	}
	return nil
}

// VoucherRequest is the aggregate root of the vouchers context.
type VoucherRequest struct {
	ID             string
	SubmissionDate time.Time
	Status         RequestStatus
	PartnerInfo    PartnerInfo
	Modules        []SelectedModule
	TotalValue     float64
	// ApprovedBy holds the staff user that approved or rejected the request.
	ApprovedBy string
}

// NewVoucherRequest builds a pending request and computes its total from the modules.
func NewVoucherRequest(id string, submittedAt time.Time, partner PartnerInfo, modules []SelectedModule) (*VoucherRequest, error) {
	req := &VoucherRequest{
		ID:             strings.TrimSpace(id),
		SubmissionDate: NormalizeSubmissionDate(submittedAt),
		Status:         StatusPending,
		PartnerInfo:    partner,
		Modules:        cloneModules(modules),
	}
	req.TotalValue = ComputeTotal(req.Modules)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate enforces the invariants a submitted request must satisfy.
func (r *VoucherRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	if r.SubmissionDate.IsZero() {
		return ErrMissingDate
	}
	if !r.Status.Valid() {
		return ErrInvalidStatus
	}
	if err := r.PartnerInfo.Validate(); err != nil {
		return err
	}
	if len(r.Modules) == 0 {
		return ErrNoModules
	}
	seen := make(map[string]struct{}, len(r.Modules))
	for _, m := range r.Modules {
		if m.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if m.Price < 0 {
			return ErrNegativePrice
		}
		if _, dup := seen[m.ID]; dup {
			return ErrDuplicateModule
		}
		seen[m.ID] = struct{}{}
	}
	if !decimal.NewFromFloat(r.TotalValue).Round(2).Equal(decimal.NewFromFloat(ComputeTotal(r.Modules))) {
		return ErrTotalMismatch
	}
	return nil
}

// Clone returns a deep copy safe to hand out as a read-only snapshot.
func (r VoucherRequest) Clone() VoucherRequest {
	r.Modules = cloneModules(r.Modules)
	return r
}

// ComputeTotal sums price × quantity over the modules, rounded to cents.
func ComputeTotal(modules []SelectedModule) float64 {
	total := decimal.Zero
	for _, m := range modules {
		total = total.Add(m.Subtotal())
	}
	return total.Round(2).InexactFloat64()
}

// NormalizeSubmissionDate truncates to milliseconds in UTC, the precision of the persisted form.
func NormalizeSubmissionDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Millisecond)
}

// FormatSubmissionDate renders t in SubmissionDateLayout.
func FormatSubmissionDate(t time.Time) string {
	return t.UTC().Format(SubmissionDateLayout)
}

// ParseSubmissionDate accepts any RFC 3339 timestamp and normalizes it.
func ParseSubmissionDate(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeSubmissionDate(t), nil
}

func cloneModules(modules []SelectedModule) []SelectedModule {
	if modules == nil {
		return nil
	}
	return append([]SelectedModule{}, modules...)
}
