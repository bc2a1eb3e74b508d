package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyScopeID        = errors.New("scope id is required")
	ErrInvalidScopeID      = errors.New("scope id must not contain path separators")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrQuotaExceeded       = errors.New("storage quota exceeded")
)

// UnsupportedFileTypeError reports a content type outside the allow-list.
type UnsupportedFileTypeError struct {
	ContentType string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedFileType, e.ContentType)
}

func (e *UnsupportedFileTypeError) Is(target error) bool {
	return target == ErrUnsupportedFileType
}

// FileTooLargeError reports a file above the per-file limit. Sizes are bytes.
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds %d", ErrFileTooLarge, e.Size, e.Limit)
}

func (e *FileTooLargeError) Is(target error) bool {
	return target == ErrFileTooLarge
}

// QuotaExceededError reports that storing Size more bytes would exceed the
// scope quota. Remaining is never negative.
type QuotaExceededError struct {
	Remaining int64
	Used      int64
	Limit     int64
	Size      int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: %d bytes remaining, %d requested", ErrQuotaExceeded, e.Remaining, e.Size)
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
