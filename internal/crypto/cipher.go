// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

const (
	// NonceSize is the AES-GCM standard nonce length (96 bits).
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16
)

// seal encrypts plaintext with key using AES-256-GCM. A random 12-byte
// nonce read from random is prepended to the ciphertext so that the
// decryption side can locate it: blob = nonce ‖ ciphertext ‖ tag.
func seal(key Key, plaintext []byte, random io.Reader) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, fmt.Errorf("%w: generate nonce: %w", ErrRandomSource, err)
	}

	blob := make([]byte, 0, len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, nonce...)
	return gcm.Seal(blob, nonce, plaintext, nil), nil
}

// open reverses [seal]. Anything shorter than nonce+tag cannot carry a valid
// tag and is reported as [ErrAuthenticationFailed], same as a tag mismatch.
func open(key Key, blob []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < gcm.NonceSize()+gcm.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short (%d bytes)", ErrAuthenticationFailed, len(blob))
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]

	// An error here almost always means a wrong key (wrong secret or PIN).
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

func newGCM(key Key) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyLength, len(key), KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
