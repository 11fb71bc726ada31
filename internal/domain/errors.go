package domain

import "errors"

var (
	// ErrRateNotFound means no rate has ever been written. It is a legitimate
	// empty state, not a failure.
	ErrRateNotFound = errors.New("interest rate not found")

	// ErrStaleWrite is the ledger's monotonicity rejection: the write carried a
	// timestamp strictly earlier than the one currently stored.
	ErrStaleWrite = errors.New("write rejected: timestamp older than stored")

	// ErrWriteDenied is the ledger's owner guard rejection.
	ErrWriteDenied = errors.New("write rejected: sender is not the owner")
)
