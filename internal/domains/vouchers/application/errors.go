package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid voucher request input")
	// ErrAlreadyDecided is returned when a different decision is attempted on an approved or rejected request.
	ErrAlreadyDecided = errors.New("voucher request already decided")
	// ErrUnknownActor is returned when the acting user is not a known staff member.
	ErrUnknownActor = errors.New("acting user is not a staff member")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyID) ||
		errors.Is(err, domain.ErrMissingDate) ||
		errors.Is(err, domain.ErrIncompletePartner) ||
		errors.Is(err, domain.ErrNoModules) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrDuplicateModule) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrTotalMismatch) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrMissingActor) ||
		errors.Is(err, domain.ErrIllegalTransition) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
