package ledger

import "github.com/pkg/errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrUnavailable       = errors.New("ledger unavailable")

	ErrUnknownDriver = errors.New("unknown ledger driver")
	ErrInvalidRecord = errors.New("invalid ledger record")
)
