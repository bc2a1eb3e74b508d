// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec converts binary buffers to and from the text-safe transport
// encoding accepted by the remote content store.
//
// The store only carries text payloads for file content, so every encrypted
// blob travels as standard (padded) Base64. Content returned by the store is
// line-wrapped, which is why [FromTransportText] drops whitespace before
// decoding.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidTransportText is returned when the input is not valid Base64
// after whitespace has been removed.
var ErrInvalidTransportText = errors.New("invalid transport text")

// ToTransportText encodes b as standard Base64. An empty buffer encodes to
// an empty string.
func ToTransportText(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// FromTransportText decodes s produced by [ToTransportText] or returned by the
// remote store. Newlines, carriage returns, tabs and spaces are stripped
// before decoding.
func FromTransportText(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	b, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransportText, err)
	}

	return b, nil
}
