package mapper

import (
	"strings"

	voucherdomain "github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

// SoftwareModule is the JSON shape of a catalog entry.
type SoftwareModule struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// SelectedModule is a catalog entry with its requested quantity.
type SelectedModule struct {
	SoftwareModule
	Quantity int `json:"quantity"`
}

type PartnerInfo struct {
	PartnerName  string `json:"partnerName"`
	ContactName  string `json:"contactName"`
	CustomerName string `json:"customerName"`
	CustomerVAT  string `json:"customerVat"`
}

// VoucherRequest is the transport shape of a request, field for field as stored.
type VoucherRequest struct {
	ID             string           `json:"id"`
	SubmissionDate string           `json:"submissionDate"`
	Status         string           `json:"status"`
	PartnerInfo    PartnerInfo      `json:"partnerInfo"`
	Modules        []SelectedModule `json:"modules"`
	TotalValue     float64          `json:"totalValue"`
	ApprovedBy     string           `json:"approvedBy,omitempty"`
}

// StatusUpdate is the body of PUT /requests/:id/status.
type StatusUpdate struct {
	Status       string `json:"status" binding:"required"`
	ActingUserID string `json:"actingUserId"`
}

// Stats is the dashboard summary.
type Stats struct {
	Total    int     `json:"total"`
	Pending  int     `json:"pending"`
	Approved int     `json:"approved"`
	Value    float64 `json:"value"`
}

// QuoteRequest is the body of POST /quotes.
type QuoteRequest struct {
	Modules []QuoteLine `json:"modules"`
}

type QuoteLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type Quote struct {
	Modules    []SelectedModule `json:"modules"`
	TotalValue float64          `json:"totalValue"`
}

// ToDomainRequest converts a submitted request. An empty submission date is
// left zero for the service to fill; status and approver are ignored.
func ToDomainRequest(req VoucherRequest) (voucherdomain.VoucherRequest, error) {
	out := voucherdomain.VoucherRequest{
		ID: strings.TrimSpace(req.ID),
		PartnerInfo: voucherdomain.PartnerInfo{
			PartnerName:  strings.TrimSpace(req.PartnerInfo.PartnerName),
			ContactName:  strings.TrimSpace(req.PartnerInfo.ContactName),
			CustomerName: strings.TrimSpace(req.PartnerInfo.CustomerName),
			CustomerVAT:  strings.TrimSpace(req.PartnerInfo.CustomerVAT),
		},
		TotalValue: req.TotalValue,
	}
	if strings.TrimSpace(req.SubmissionDate) != "" {
		date, err := voucherdomain.ParseSubmissionDate(req.SubmissionDate)
		if err != nil {
			return voucherdomain.VoucherRequest{}, err
		}
		out.SubmissionDate = date
	}
	for _, m := range req.Modules {
		out.Modules = append(out.Modules, voucherdomain.SelectedModule{
			SoftwareModule: ToDomainModule(m.SoftwareModule),
			Quantity:       m.Quantity,
		})
	}
	return out, nil
}

// FromDomainRequest converts a domain request to the transport representation.
func FromDomainRequest(req voucherdomain.VoucherRequest) VoucherRequest {
	return VoucherRequest{
		ID:             req.ID,
		SubmissionDate: voucherdomain.FormatSubmissionDate(req.SubmissionDate),
		Status:         string(req.Status),
		PartnerInfo: PartnerInfo{
			PartnerName:  req.PartnerInfo.PartnerName,
			ContactName:  req.PartnerInfo.ContactName,
			CustomerName: req.PartnerInfo.CustomerName,
			CustomerVAT:  req.PartnerInfo.CustomerVAT,
		},
		Modules:    FromDomainSelection(req.Modules),
		TotalValue: req.TotalValue,
		ApprovedBy: req.ApprovedBy,
	}
}

func FromDomainRequests(reqs []voucherdomain.VoucherRequest) []VoucherRequest {
	out := make([]VoucherRequest, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, FromDomainRequest(r))
	}
	return out
}

func ToDomainModule(m SoftwareModule) voucherdomain.SoftwareModule {
	return voucherdomain.SoftwareModule{ID: m.ID, Name: m.Name, Description: m.Description, Price: m.Price}
}

func FromDomainModule(m voucherdomain.SoftwareModule) SoftwareModule {
	return SoftwareModule{ID: m.ID, Name: m.Name, Description: m.Description, Price: m.Price}
}

func FromDomainModules(modules []voucherdomain.SoftwareModule) []SoftwareModule {
	out := make([]SoftwareModule, 0, len(modules))
	for _, m := range modules {
		out = append(out, FromDomainModule(m))
	}
	return out
}

func FromDomainSelection(modules []voucherdomain.SelectedModule) []SelectedModule {
	out := make([]SelectedModule, 0, len(modules))
	for _, m := range modules {
		out = append(out, SelectedModule{SoftwareModule: FromDomainModule(m.SoftwareModule), Quantity: m.Quantity})
	}
	return out
}

func FromDomainStats(s voucherdomain.Stats) Stats {
	return Stats{Total: s.Total, Pending: s.Pending, Approved: s.Approved, Value: s.Value}
}

func ToQuoteLines(req QuoteRequest) []voucherports.QuoteLine {
	lines := make([]voucherports.QuoteLine, 0, len(req.Modules))
	for _, l := range req.Modules {
		lines = append(lines, voucherports.QuoteLine{ModuleID: l.ID, Quantity: l.Quantity})
	}
	return lines
}

func FromQuote(q voucherports.Quote) Quote {
	return Quote{Modules: FromDomainSelection(q.Modules), TotalValue: q.TotalValue}
}
