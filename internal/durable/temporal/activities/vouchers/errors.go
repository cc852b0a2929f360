package vouchers

import (
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"

	voucherapp "github.com/Apurer/voucher-portal/internal/domains/vouchers/application"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

// Application error types used to carry service failures across the workflow boundary.
const (
	errTypeInvalidInput       = "InvalidInput"
	errTypeAlreadyDecided     = "AlreadyDecided"
	errTypeUnknownActor       = "UnknownActor"
	errTypeNotFound           = "NotFound"
	errTypeBackendUnavailable = "BackendUnavailable"
	errTypeUnknown            = "Unknown"
)

var sentinels = []struct {
	errType string
	err     error
}{
	{errTypeInvalidInput, voucherapp.ErrInvalidInput},
	{errTypeAlreadyDecided, voucherapp.ErrAlreadyDecided},
	{errTypeUnknownActor, voucherapp.ErrUnknownActor},
	{errTypeNotFound, voucherports.ErrNotFound},
	{errTypeBackendUnavailable, voucherports.ErrBackendUnavailable},
}

// EncodeError converts a service error into a non-retryable Temporal
// application error whose type names the failure kind.
func EncodeError(err error) error {
	if err == nil {
		return nil
	}
	errType := errTypeUnknown
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			errType = s.errType
			break
		}
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), errType, nil)
}

// DecodeError restores the service sentinel from an error returned by a
// workflow run, so callers can keep using errors.Is.
func DecodeError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	for _, s := range sentinels {
		if appErr.Type() == s.errType {
			return fmt.Errorf("%w: %s", s.err, appErr.Message())
		}
	}
	return err
}
