package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransfer is wrapped by every malformed-request error below.
	ErrInvalidTransfer = errors.New("invalid transfer request")

	ErrMissingField      = fmt.Errorf("%w: missing field", ErrInvalidTransfer)
	ErrNonPositiveAmount = fmt.Errorf("%w: amount must be greater than zero", ErrInvalidTransfer)
	ErrSameAccount       = fmt.Errorf("%w: cannot transfer to the same account", ErrInvalidTransfer)

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSessionClosed     = errors.New("session closed")
)
