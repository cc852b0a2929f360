package local

import (
	"fmt"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
)

// document is the stored shape of one request, field for field as in the
// persisted layout the admin dashboard reads.
type document struct {
	ID             string           `json:"id"`
	SubmissionDate string           `json:"submissionDate"`
	Status         string           `json:"status"`
	PartnerInfo    partnerDocument  `json:"partnerInfo"`
	Modules        []moduleDocument `json:"modules"`
	TotalValue     float64          `json:"totalValue"`
	ApprovedBy     string           `json:"approvedBy,omitempty"`
}

type partnerDocument struct {
	PartnerName  string `json:"partnerName"`
	ContactName  string `json:"contactName"`
	CustomerName string `json:"customerName"`
	CustomerVAT  string `json:"customerVat"`
}

type moduleDocument struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func toDocument(req domain.VoucherRequest) document {
	modules := make([]moduleDocument, 0, len(req.Modules))
	for _, m := range req.Modules {
		modules = append(modules, moduleDocument{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Price:       m.Price,
			Quantity:    m.Quantity,
		})
	}
	return document{
		ID:             req.ID,
		SubmissionDate: domain.FormatSubmissionDate(req.SubmissionDate),
		Status:         string(req.Status),
		PartnerInfo: partnerDocument{
			PartnerName:  req.PartnerInfo.PartnerName,
			ContactName:  req.PartnerInfo.ContactName,
			CustomerName: req.PartnerInfo.CustomerName,
			CustomerVAT:  req.PartnerInfo.CustomerVAT,
		},
		Modules:    modules,
		TotalValue: req.TotalValue,
		ApprovedBy: req.ApprovedBy,
	}
}

func (d document) toDomain() (domain.VoucherRequest, error) {
	submitted, err := domain.ParseSubmissionDate(d.SubmissionDate)
	if err != nil {
		return domain.VoucherRequest{}, fmt.Errorf("request %s: submission date: %w", d.ID, err)
	}
	modules := make([]domain.SelectedModule, 0, len(d.Modules))
	for _, m := range d.Modules {
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
		ID:             d.ID,
		SubmissionDate: submitted,
		Status:         domain.RequestStatus(d.Status),
		PartnerInfo: domain.PartnerInfo{
			PartnerName:  d.PartnerInfo.PartnerName,
			ContactName:  d.PartnerInfo.ContactName,
			CustomerName: d.PartnerInfo.CustomerName,
			CustomerVAT:  d.PartnerInfo.CustomerVAT,
		},
		Modules:    modules,
		TotalValue: d.TotalValue,
		ApprovedBy: d.ApprovedBy,
	}, nil
}
