package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrCorpusFetch", ErrCorpusFetch},
		{"ErrMalformedBlock", ErrMalformedBlock},
		{"ErrQueryTooShort", ErrQueryTooShort},
		{"ErrStoreClosed", ErrStoreClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrAlreadyExists))
	assert.False(t, errors.Is(ErrCorpusFetch, ErrMalformedBlock))
	assert.False(t, errors.Is(ErrQueryTooShort, ErrInvalidInput))
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("list topics: %w", ErrCorpusFetch)

	assert.True(t, errors.Is(wrapped, ErrCorpusFetch))
	assert.Equal(t, "list topics: corpus fetch failed", wrapped.Error())
}
