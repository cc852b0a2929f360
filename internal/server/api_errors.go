package server

import (
	"errors"

	"github.com/gin-gonic/gin"

	staffapp "github.com/Apurer/voucher-portal/internal/domains/staff/application"
	staffports "github.com/Apurer/voucher-portal/internal/domains/staff/ports"
	voucherapp "github.com/Apurer/voucher-portal/internal/domains/vouchers/application"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
	apierrors "github.com/Apurer/voucher-portal/internal/shared/errors"
)

var responder = apierrors.NewResponder("", mapVoucherError, mapStaffError)

// mapVoucherError checks the actor and decision errors before not-found, as
// both can wrap a lookup failure.
func mapVoucherError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, voucherapp.ErrUnknownActor):
		return apierrors.ErrForbidden.WithDetail(err.Error()), true
	case errors.Is(err, voucherapp.ErrAlreadyDecided):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, voucherapp.ErrInvalidInput), errors.Is(err, voucherports.ErrUnknownModule):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, voucherports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, voucherports.ErrBackendUnavailable):
		return apierrors.ErrUnavailable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapStaffError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, staffapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail("invalid username or password"), true
	case errors.Is(err, staffapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, staffports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}
