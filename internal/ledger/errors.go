package ledger

import "errors"

var (
	ErrNotFound          = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount (must be > 0)")
	ErrSameAccount       = errors.New("source and destination accounts are the same")
	ErrUnknownService    = errors.New("unknown service")
)
