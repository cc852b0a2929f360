package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	voucherhttpmapper "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/http/mapper"
	voucherdomain "github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
	"github.com/Apurer/voucher-portal/internal/platform/observability"
)

// VoucherAPI wires HTTP transport with the vouchers service and submission workflow.
type VoucherAPI struct {
	service   voucherports.Service
	workflows voucherports.WorkflowOrchestrator
	refresh   time.Duration
	now       func() time.Time
}

// NewVoucherAPI creates a VoucherAPI. refresh is advertised on the stats
// endpoint as the dashboard polling interval.
func NewVoucherAPI(service voucherports.Service, workflows voucherports.WorkflowOrchestrator, refresh time.Duration) VoucherAPI {
	return VoucherAPI{service: service, workflows: workflows, refresh: refresh, now: time.Now}
}

// Get /api/v1/requests
// Lists requests, newest submission first, optionally only those carrying one
// of the ?module= ids
func (api *VoucherAPI) ListRequests(c *gin.Context) {
	requests, err := api.service.ListRequestsByModule(c.Request.Context(), c.QueryArray("module"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voucherhttpmapper.FromDomainRequests(requests))
}

// Post /api/v1/requests
// Submits a voucher request
func (api *VoucherAPI) CreateRequest(c *gin.Context) {
	var payload voucherhttpmapper.VoucherRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	req, err := voucherhttpmapper.ToDomainRequest(payload)
	if err != nil {
		respondBadRequest(c, fmt.Errorf("submissionDate: %w", err))
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.SubmissionDate.IsZero() {
		req.SubmissionDate = api.now()
	}
	saved, err := api.submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/v1/requests/"+saved.ID)
	c.JSON(http.StatusCreated, voucherhttpmapper.FromDomainRequest(saved))
}

func (api *VoucherAPI) submit(ctx context.Context, req voucherdomain.VoucherRequest) (voucherdomain.VoucherRequest, error) {
	if api.workflows != nil {
		return api.workflows.SubmitRequest(ctx, req)
	}
	return api.service.CreateRequest(ctx, req)
}

// Get /api/v1/requests/stats
// Dashboard counters
func (api *VoucherAPI) GetStats(c *gin.Context) {
	stats, err := api.service.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if seconds := int(api.refresh / time.Second); seconds > 0 {
		c.Header("Cache-Control", fmt.Sprintf("max-age=%d", seconds))
	}
	c.JSON(http.StatusOK, voucherhttpmapper.FromDomainStats(stats))
}

// Get /api/v1/requests/:requestId
// Finds a request by id
func (api *VoucherAPI) GetRequest(c *gin.Context) {
	req, err := api.service.GetRequest(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voucherhttpmapper.FromDomainRequest(req))
}

// Put /api/v1/requests/:requestId/status
// Approves or rejects a request
func (api *VoucherAPI) UpdateStatus(c *gin.Context) {
	var payload voucherhttpmapper.StatusUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	status, err := voucherdomain.ParseStatus(payload.Status)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	actor := strings.TrimSpace(payload.ActingUserID)
	c.Request = c.Request.WithContext(observability.WithActorID(c.Request.Context(), actor))
	updated, err := api.service.UpdateStatus(c.Request.Context(), c.Param("requestId"), status, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voucherhttpmapper.FromDomainRequest(updated))
}
