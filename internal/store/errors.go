package store

import "errors"

// Object store errors. Every error returned by [ObjectStore] matches exactly
// one of these with [errors.Is]; timeouts match both [ErrTimeout] and
// [ErrTransport].
var (
	ErrObjectNotFound   = errors.New("object not found")
	ErrRevisionConflict = errors.New("object revision conflict")
	ErrUnauthorized     = errors.New("backend credential rejected")
	ErrTransport        = errors.New("backend transport error")
	ErrTimeout          = errors.New("backend request timed out")
	ErrInvalidPath      = errors.New("invalid object path")
)

// Ledger errors.
var (
	ErrEntryAlreadyExists = errors.New("vault entry already exists")
	ErrEntryNotFound      = errors.New("vault entry was not found")
	ErrLedgerBusy         = errors.New("vault ledger is temporarily unavailable")
)

var (
	ErrBuildingSQLQuery = errors.New("error building sql query")

	ErrExecutingQuery = errors.New("error executing sql query")

	ErrScanningRow = errors.New("failed to scan vault entry row")

	ErrScanningRows = errors.New("failed to scan vault entry rows")

	ErrUnsupportedDialect = errors.New("unsupported sql dialect")
)
