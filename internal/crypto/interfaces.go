// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds all client-side cryptography of the image vault.
// It knows nothing about the network, the content store or the ledger; its
// only job is to derive keys and to seal/open byte buffers.
//
// Scheme:
//
//	ScopeKey  = KDF(appSecret, "<namespace>-<scopeID>")            (deterministic)
//	Blob      = nonce(12) ‖ AES-256-GCM(ScopeKey, nonce, plaintext) (random nonce)
//	Envelope  = salt(16) ‖ nonce(12) ‖ AES-256-GCM(KDF(pin, salt), nonce, secret)
package crypto

// Key is a 256-bit symmetric key. It lives only in memory and is re-derived
// on demand.
type Key []byte

// KeyDeriver turns low-entropy secret material plus a salt into a
// high-entropy [Key]. Implementations must be deterministic: identical
// inputs always yield an identical key.
type KeyDeriver interface {
	// DeriveKey stretches secret with salt into a [KeySize]-byte key.
	// A wrong secret is not detected here; it surfaces later as
	// [ErrAuthenticationFailed] on decryption.
	DeriveKey(secret, salt []byte) Key
}

// Provider is the crypto capability the vault depends on. It isolates the
// platform primitives (CSPRNG, KDF, AEAD) from vault logic so tests can
// substitute deterministic or failing implementations.
type Provider interface {
	// RandomBytes returns n bytes from a cryptographically secure source.
	RandomBytes(n int) ([]byte, error)

	// DeriveKey derives a key with the provider's [KeyDeriver].
	DeriveKey(secret, salt []byte) Key

	// Encrypt seals plaintext under key with a fresh random nonce and returns
	// nonce ‖ ciphertext ‖ tag.
	Encrypt(key Key, plaintext []byte) ([]byte, error)

	// Decrypt opens a blob produced by Encrypt. It returns
	// [ErrAuthenticationFailed] if the tag does not verify, never partial
	// plaintext.
	Decrypt(key Key, blob []byte) ([]byte, error)
}
