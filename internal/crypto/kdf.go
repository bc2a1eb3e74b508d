// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the length of every derived key (AES-256).
	KeySize = 32

	// SaltSize is the length of the random salt stored inside an envelope.
	SaltSize = 16

	// PBKDF2Iterations is the default PBKDF2-HMAC-SHA256 work factor.
	PBKDF2Iterations = 100_000
)

// Names accepted by [NewKeyDeriver].
const (
	KDFPBKDF2   = "pbkdf2"
	KDFArgon2id = "argon2id"
)

// pbkdf2Deriver derives keys with PBKDF2-HMAC-SHA256.
type pbkdf2Deriver struct {
	iterations int
}

// NewPBKDF2Deriver returns a PBKDF2-HMAC-SHA256 [KeyDeriver]. A non-positive
// iteration count falls back to [PBKDF2Iterations].
func NewPBKDF2Deriver(iterations int) KeyDeriver {
	if iterations <= 0 {
		iterations = PBKDF2Iterations
	}
	return &pbkdf2Deriver{iterations: iterations}
}

// DeriveKey implements [KeyDeriver].
func (d *pbkdf2Deriver) DeriveKey(secret, salt []byte) Key {
	return pbkdf2.Key(secret, salt, d.iterations, KeySize, sha256.New)
}

// argon2idDeriver derives keys with Argon2id. Tuning parameters are kept in
// the struct so they can be adjusted per deployment target.
type argon2idDeriver struct {
	time    uint32
	memory  uint32
	threads uint8
}

// NewArgon2idDeriver constructs an Argon2id [KeyDeriver] with the parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func NewArgon2idDeriver() KeyDeriver {
	return &argon2idDeriver{
		time:    1,
		memory:  64 * 1024, // 64 MiB
		threads: 4,
	}
}

// DeriveKey implements [KeyDeriver].
func (d *argon2idDeriver) DeriveKey(secret, salt []byte) Key {
	return argon2.IDKey(secret, salt, d.time, d.memory, d.threads, KeySize)
}

// NewKeyDeriver resolves a [KeyDeriver] by name. An empty name selects
// PBKDF2. Keys derived by different functions are not interchangeable, so
// the choice must stay fixed for the lifetime of stored data.
func NewKeyDeriver(name string) (KeyDeriver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", KDFPBKDF2:
		return NewPBKDF2Deriver(PBKDF2Iterations), nil
	case KDFArgon2id:
		return NewArgon2idDeriver(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKDF, name)
	}
}
