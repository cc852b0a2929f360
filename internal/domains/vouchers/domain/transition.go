package domain

import "strings"

// Transition applies a status change to req and returns the resulting request.
// changed is false when the move is not legal from the current state, in which
// case next equals req. Only Status and ApprovedBy are ever touched.
func Transition(req VoucherRequest, to RequestStatus, actor string) (next VoucherRequest, changed bool, err error) {
	if !to.Valid() {
		return req, false, ErrInvalidStatus
	}
	actor = strings.TrimSpace(actor)
	if to.IsDecision() && actor == "" {
		return req, false, ErrMissingActor
	}

	next = req.Clone()
	switch {
	case to.IsDecision() && req.Status == StatusPending:
		next.Status = to
		next.ApprovedBy = actor
		return next, true, nil
	case to == StatusPending && req.Status == StatusDraft:
		next.Status = to
		return next, true, nil
	default:
		return req, false, nil
	}
}

// Decided reports whether the request already carries a staff decision.
func (r VoucherRequest) Decided() bool {
	return r.Status.IsDecision()
}
