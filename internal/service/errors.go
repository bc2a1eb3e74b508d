package service

import (
	"errors"

	"github.com/wavrons/stargate/internal/store"
	"github.com/wavrons/stargate/internal/validators"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInvalidPath is returned before any network call when a path does
	// not live directly under the scope directory.
	ErrInvalidPath = store.ErrInvalidPath
)

// Upload validation errors. They are produced by the validators package and
// re-exported so callers can match them with a single import.
var (
	ErrUnsupportedFileType = validators.ErrUnsupportedFileType
	ErrFileTooLarge        = validators.ErrFileTooLarge
	ErrQuotaExceeded       = validators.ErrQuotaExceeded
	ErrEmptyScopeID        = validators.ErrEmptyScopeID
	ErrInvalidScopeID      = validators.ErrInvalidScopeID
)

type (
	UnsupportedFileTypeError = validators.UnsupportedFileTypeError
	FileTooLargeError        = validators.FileTooLargeError
	QuotaExceededError       = validators.QuotaExceededError
)
