package ledger

import "errors"

// Row-level data errors. A row failing with one of these is skipped by the
// calculator; it never aborts a batch.
var (
	ErrBlankPayer         = errors.New("payer is blank")
	ErrInvalidAmount      = errors.New("amount is not a number")
	ErrNonPositiveAmount  = errors.New("amount must be greater than zero")
	ErrInvalidMembers     = errors.New("member count is not a non-negative integer")
	ErrNoParticipantUnits = errors.New("expense has no participant units")
)
