// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT used to authenticate calls to the vault HTTP API.
//
// SignedString holds the compact serialized form ready to be sent in the
// Authorization header. Caller is the "sub" claim of a parsed token; the
// vault API only uses it for logging and audit fields.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	Caller string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
