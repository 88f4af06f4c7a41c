package state

import "errors"

var (
	// ErrNotFound is returned when a ledger location does not exist.
	ErrNotFound = errors.New("ledger not found")

	// ErrUnsupportedVersion is returned for documents written by a newer or unknown format.
	ErrUnsupportedVersion = errors.New("unsupported ledger version")

	// ErrInvalidDocument is returned for documents whose order and resources disagree.
	ErrInvalidDocument = errors.New("invalid ledger document")
)
