// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds what the stargate HTTP API and the vaultctl CLI share:
// the wiring of the vault ([Bootstrap]) and its user-facing wording.
//
// All Msg* constants are human-readable strings written into HTTP response
// bodies or printed by the CLI. Keeping them in one place ensures the same
// failure reads the same way on every surface.
package app

import (
	"errors"
	"fmt"

	"github.com/wavrons/stargate/internal/crypto"
	"github.com/wavrons/stargate/internal/service"
	"github.com/wavrons/stargate/internal/store"
)

const (
	// MsgInvalidDataProvided is returned when the request cannot be decoded
	// or is missing required fields.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected failure occurs
	// that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is either
	// expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgInvalidPINOrCorruptedData covers every decryption failure: a wrong
	// secret or PIN is indistinguishable from a damaged object.
	MsgInvalidPINOrCorruptedData = "Invalid PIN or corrupted data"

	MsgImageNotFound = "Image not found"

	// MsgRevisionConflict is returned when the stored object changed since it
	// was last read.
	MsgRevisionConflict = "The image was changed elsewhere. Reload and try again."

	// MsgStorageUnauthorized is returned when the image repository rejects
	// the configured access token.
	MsgStorageUnauthorized = "Image storage rejected the access token"

	MsgStorageUnavailable = "Image storage is unavailable. Try again later."
	MsgStorageTimeout     = "Image storage timed out. Try again later."

	MsgInvalidPath = "invalid image path"

	// MsgLedgerBusy is returned when the local image ledger could not take a
	// write right now.
	MsgLedgerBusy = "The image library is busy. Try again."
)

// MiB is the unit user messages are rendered in.
const MiB = 1024 * 1024

// FormatMB renders n bytes with one decimal, e.g. "17.3MB".
func FormatMB(n int64) string {
	return fmt.Sprintf("%.1fMB", float64(n)/MiB)
}

// UserMessage turns a service, store or crypto error into a sentence that can
// be shown to an end user. Unknown errors yield [MsgInternalServerError].
func UserMessage(err error) string {
	var (
		quotaErr *service.QuotaExceededError
		sizeErr  *service.FileTooLargeError
		typeErr  *service.UnsupportedFileTypeError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &quotaErr):
		return fmt.Sprintf("Not enough storage. %s remaining.", FormatMB(quotaErr.Remaining))
	case errors.As(err, &sizeErr):
		return fmt.Sprintf("File too large (%s). Max %dMB per file.", FormatMB(sizeErr.Size), sizeErr.Limit/MiB)
	case errors.As(err, &typeErr):
		return "Unsupported file type: " + typeErr.ContentType
	case errors.Is(err, crypto.ErrAuthenticationFailed):
		return MsgInvalidPINOrCorruptedData
	case errors.Is(err, store.ErrObjectNotFound):
		return MsgImageNotFound
	case errors.Is(err, store.ErrRevisionConflict):
		return MsgRevisionConflict
	case errors.Is(err, store.ErrUnauthorized):
		return MsgStorageUnauthorized
	case errors.Is(err, store.ErrTimeout):
		return MsgStorageTimeout
	case errors.Is(err, store.ErrTransport):
		return MsgStorageUnavailable
	case errors.Is(err, store.ErrLedgerBusy):
		return MsgLedgerBusy
	case errors.Is(err, service.ErrInvalidPath),
		errors.Is(err, service.ErrEmptyScopeID),
		errors.Is(err, service.ErrInvalidScopeID):
		return MsgInvalidPath
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return MsgTokenIsExpiredOrInvalid
	case errors.Is(err, service.ErrInvalidDataProvided):
		return MsgInvalidDataProvided
	default:
		return MsgInternalServerError
	}
}
