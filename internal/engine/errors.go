package engine

import "errors"

// Operation outcomes. All are surfaced synchronously to the caller and
// checked with errors.Is; storage details are wrapped, never swallowed.
var (
	// ErrNotFound means a referenced account, transaction, or goal is absent.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied means the caller's resolved capabilities or account
	// ownership do not allow the operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrInsufficientFunds means an expense (or income reversal) would
	// drive the account balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidInput means a non-positive amount or missing required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage means the unit of work could not complete; the operation
	// was rolled back.
	ErrStorage = errors.New("storage failure")
)
