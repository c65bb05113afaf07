package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrInvalid  = errors.New("invalid input")
	ErrNotFound = errors.New("not found")
)

var (
	ErrEmptyTicket       = fmt.Errorf("%w: add at least one service to the ticket", ErrInvalid)
	ErrMissingStylist    = fmt.Errorf("%w: assign a stylist to every service", ErrInvalid)
	ErrNegativePrice     = fmt.Errorf("%w: price must be a non-negative number", ErrInvalid)
	ErrNonPositiveAmount = fmt.Errorf("%w: amount must be greater than zero", ErrInvalid)
	ErrEmptyName         = fmt.Errorf("%w: name is required", ErrInvalid)
	ErrEmptyDescription  = fmt.Errorf("%w: description is required", ErrInvalid)
	ErrCommissionTier    = fmt.Errorf("%w: commission rate must be 0.3 or 0.4", ErrInvalid)
	ErrInvalidDate       = fmt.Errorf("%w: dates must use YYYY-MM-DD", ErrInvalid)
)
