// Package id generates short random identifiers for runtime objects such as
// trailer sessions. Catalog items use deterministic UUIDs instead.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	size     = 16
)

// Generate returns "prefix-" followed by a 16-character lowercase nanoid,
// e.g. "trl-4f9x0kq2m7c1z8ab". The lowercase alphabet keeps IDs safe in URL
// paths and CSS selectors.
func Generate(prefix string) (string, error) {
	raw, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + raw, nil
}

// Valid reports whether s looks like an ID produced by Generate(prefix).
func Valid(s, prefix string) bool {
	raw, ok := strings.CutPrefix(s, prefix+"-")
	if !ok || len(raw) != size {
		return false
	}
	for _, r := range raw {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
