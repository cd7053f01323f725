package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestStoreBackend_IsValid tests all valid and invalid store backends
func TestStoreBackend_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		backend  StoreBackend
		expected bool
	}{
		{"sqlite is valid", StoreBackendSQLite, true},
		{"file is valid", StoreBackendFile, true},
		{"memory is valid", StoreBackendMemory, true},
		{"empty string is invalid", StoreBackend(""), false},
		{"unknown is invalid", StoreBackend("postgres"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.backend.IsValid())
		})
	}
}

func TestStoreBackend_Description(t *testing.T) {
	for _, b := range AllStoreBackends() {
		assert.NotEqual(t, unknownDescription, b.Description(), b.String())
	}
	assert.Equal(t, unknownDescription, StoreBackend("x").Description())
	assert.False(t, StoreBackendMemory.IsPersistent())
	assert.True(t, StoreBackendSQLite.IsPersistent())
}

// TestDefaultAppSettings tests the documented defaults
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, StoreBackendSQLite, s.Store.Backend)
	assert.True(t, s.Store.Watch)
	assert.Empty(t, s.Store.Path)
	assert.Equal(t, time.Hour, s.Cache.TTL)
	assert.Equal(t, 5*time.Second, s.Cache.FetchTimeout)
	assert.Zero(t, s.Cache.WarmInterval)
	assert.Equal(t, 300*time.Millisecond, s.Search.Debounce)
	assert.Equal(t, 256, s.Search.ResultCacheSize)
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, float64(20), s.Server.RateLimit)
	assert.Equal(t, 40, s.Server.RateBurst)
}
