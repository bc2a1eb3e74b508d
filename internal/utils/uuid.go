package utils

import "github.com/google/uuid"

// IDGenerator produces unique object identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates random (version 4) UUIDs. Object names must not
// reveal upload order, so time-ordered versions are not used.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
