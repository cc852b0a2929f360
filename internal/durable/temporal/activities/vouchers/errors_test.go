package vouchers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	voucherapp "github.com/Apurer/voucher-portal/internal/domains/vouchers/application"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

func TestEncodeDecodeError_RoundTripsSentinels(t *testing.T) {
	for _, sentinel := range []error{
		voucherapp.ErrInvalidInput,
		voucherapp.ErrAlreadyDecided,
		voucherapp.ErrUnknownActor,
		voucherports.ErrNotFound,
		voucherports.ErrBackendUnavailable,
	} {
		encoded := EncodeError(fmt.Errorf("%w: detail", sentinel))

		var appErr *temporal.ApplicationError
		require.ErrorAs(t, encoded, &appErr)
		assert.True(t, appErr.NonRetryable())

		require.ErrorIs(t, DecodeError(encoded), sentinel)
	}
}

func TestDecodeError_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("network")
	assert.Equal(t, plain, DecodeError(plain))
	assert.NoError(t, DecodeError(nil))
}
