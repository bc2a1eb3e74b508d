// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportText_RoundTrip(t *testing.T) {
	random := make([]byte, 4096)
	_, err := rand.Read(random)
	require.NoError(t, err)

	cases := map[string][]byte{
		"empty":      {},
		"one byte":   {0x00},
		"two bytes":  {0xff, 0x01},
		"three":      {0x01, 0x02, 0x03},
		"ascii":      []byte("hello, stargate"),
		"random 4k":  random,
		"all values": allByteValues(),
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := FromTransportText(ToTransportText(in))
			require.NoError(t, err)
			assert.True(t, bytes.Equal(in, out), "round trip mismatch")
		})
	}
}

func TestToTransportText_Empty(t *testing.T) {
	assert.Equal(t, "", ToTransportText(nil))
	assert.Equal(t, "", ToTransportText([]byte{}))
}

func TestFromTransportText_StripsLineBreaks(t *testing.T) {
	payload := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 64)
	encoded := ToTransportText(payload)

	// the contents API wraps base64 at 60 characters
	var wrapped strings.Builder
	for i := 0; i < len(encoded); i += 60 {
		end := min(i+60, len(encoded))
		wrapped.WriteString(encoded[i:end])
		wrapped.WriteString("\n")
	}

	got, err := FromTransportText(wrapped.String())
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFromTransportText_StripsOtherWhitespace(t *testing.T) {
	got, err := FromTransportText(" AQID\r\n\t")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, got)
}

func TestFromTransportText_Invalid(t *testing.T) {
	_, err := FromTransportText("not*base64")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransportText)
}

func allByteValues() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
