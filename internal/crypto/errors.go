package crypto

import "errors"

var (
	// ErrAuthenticationFailed is returned when AES-GCM tag verification fails:
	// the key is wrong, the blob was tampered with or it is truncated.
	// An envelope opened with the wrong PIN fails with the same error.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidKeyLength indicates a key that is not exactly KeySize bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrRandomSource indicates the CSPRNG could not be read.
	ErrRandomSource = errors.New("random source failure")

	// ErrUnknownKDF is returned by [NewKeyDeriver] for an unsupported name.
	ErrUnknownKDF = errors.New("unknown key derivation function")
)
