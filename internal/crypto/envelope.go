// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/wavrons/stargate/internal/codec"
)

// SealSecret wraps a low-entropy secret (e.g. a personal access token) under
// a passphrase or PIN. A fresh 16-byte salt and 12-byte nonce are generated
// per call; the result is Base64(salt ‖ nonce ‖ ciphertext ‖ tag) and is safe
// to persist as an opaque string.
func SealSecret(p Provider, passphrase, secret string) (string, error) {
	salt, err := p.RandomBytes(SaltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := p.DeriveKey([]byte(passphrase), salt)

	blob, err := p.Encrypt(key, []byte(secret))
	if err != nil {
		return "", fmt.Errorf("encrypt secret: %w", err)
	}

	envelope := make([]byte, 0, len(salt)+len(blob))
	envelope = append(envelope, salt...)
	envelope = append(envelope, blob...)

	return codec.ToTransportText(envelope), nil
}

// OpenSecret reverses [SealSecret]. A wrong passphrase, a malformed or
// truncated envelope all fail with [ErrAuthenticationFailed].
func OpenSecret(p Provider, passphrase, envelope string) (string, error) {
	raw, err := codec.FromTransportText(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: decode envelope: %w", ErrAuthenticationFailed, err)
	}
	if len(raw) < SaltSize {
		return "", fmt.Errorf("%w: envelope too short", ErrAuthenticationFailed)
	}

	salt, blob := raw[:SaltSize], raw[SaltSize:]
	key := p.DeriveKey([]byte(passphrase), salt)

	secret, err := p.Decrypt(key, blob)
	if err != nil {
		return "", err
	}

	return string(secret), nil
}
