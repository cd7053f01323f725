// Package config holds the value conversions shared by the ConfigStore
// adapters. TOML decodes integers as int64 while callers set plain ints,
// so every store normalises through these helpers.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// String returns v when it is a string.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int returns v as an int. Floats are truncated toward zero.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(math.Trunc(n))
	default:
		return 0
	}
}

// Float returns v as a float64.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// Bool returns v when it is a bool.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// ValidateKey rejects keys that cannot round-trip through nested tables,
// such as "" or "cache..ttl".
func ValidateKey(key string) error {
	for _, part := range strings.Split(key, ".") {
		if strings.TrimSpace(part) == "" {
			return fmt.Errorf("%w: config key %q", domain.ErrInvalidInput, key)
		}
	}
	return nil
}
