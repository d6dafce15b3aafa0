// Package idgen mints the short random identifiers issues are keyed by.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultPrefix marks issue IDs, e.g. "is-V1StGXR8Z5".
const DefaultPrefix = "is-"

// Alphanumeric only, so IDs are safe in URLs and shell arguments unquoted.
const (
	alphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	randomLen = 10
)

// Generate returns a fresh issue ID.
func Generate() (string, error) {
	return GenerateWithPrefix(DefaultPrefix)
}

// GenerateWithPrefix returns a fresh ID carrying the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	suffix, err := nanoid.Generate(alphabet, randomLen)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + suffix, nil
}
