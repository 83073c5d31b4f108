// Package token produces the opaque capability token values embedded in
// supplier links. Tokens for the same request are independent secrets: each
// value is drawn fresh from crypto/rand, so one leaked token reveals nothing
// about the others.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenRandomBytes = 32

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a 64-character hex token value.
func (g *Generator) Generate() (string, error) {
	randomBytes := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(randomBytes), nil
}
