// Package id generates identifiers for newly persisted records.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// entropyBytes is the raw entropy per ID; hex encoding doubles the length.
const entropyBytes = 16

// Generator produces unique identifiers for new records.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator yields 32-character lowercase hex IDs from crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	raw := make([]byte, entropyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate id entropy: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
