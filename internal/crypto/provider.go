// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// provider is the default [Provider]: crypto/rand for randomness, a
// pluggable [KeyDeriver] and AES-256-GCM for sealing.
type provider struct {
	kdf    KeyDeriver
	random io.Reader
}

// NewProvider returns a [Provider] that reads randomness from the OS CSPRNG
// and derives keys with kdf. A nil kdf selects PBKDF2 with
// [PBKDF2Iterations].
func NewProvider(kdf KeyDeriver) Provider {
	return NewProviderWithRandom(kdf, rand.Reader)
}

// NewProviderWithRandom is like [NewProvider] but reads nonces and salts from
// random. Intended for tests that need a failing or fixed source.
func NewProviderWithRandom(kdf KeyDeriver, random io.Reader) Provider {
	if kdf == nil {
		kdf = NewPBKDF2Deriver(PBKDF2Iterations)
	}
	return &provider{kdf: kdf, random: random}
}

// RandomBytes implements [Provider].
func (p *provider) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(p.random, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return b, nil
}

// DeriveKey implements [Provider].
func (p *provider) DeriveKey(secret, salt []byte) Key {
	return p.kdf.DeriveKey(secret, salt)
}

// Encrypt implements [Provider].
func (p *provider) Encrypt(key Key, plaintext []byte) ([]byte, error) {
	return seal(key, plaintext, p.random)
}

// Decrypt implements [Provider].
func (p *provider) Decrypt(key Key, blob []byte) ([]byte, error) {
	return open(key, blob)
}
