package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	staffhttpmapper "github.com/Apurer/voucher-portal/internal/domains/staff/adapters/http/mapper"
	staffports "github.com/Apurer/voucher-portal/internal/domains/staff/ports"
)

// StaffAPI implements the staff section.
type StaffAPI struct {
	service staffports.Service
}

func NewStaffAPI(service staffports.Service) StaffAPI {
	return StaffAPI{service: service}
}

// Post /api/v1/staff/login
// Checks staff credentials and returns the user without its password hash
func (api *StaffAPI) Login(c *gin.Context) {
	var payload staffhttpmapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	user, err := api.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, staffhttpmapper.ToUser(user))
}
