package domain

import "time"

const unknownDescription = "Unknown"

// StoreBackend identifies which topic store implementation is used.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendSQLite stores topics in an embedded SQLite database.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendFile reads topics from a YAML file.
	StoreBackendFile StoreBackend = "file"

	// StoreBackendMemory keeps topics in process memory only.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendSQLite, StoreBackendFile, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// IsPersistent returns true if topics survive a restart.
func (b StoreBackend) IsPersistent() bool {
	return b == StoreBackendSQLite || b == StoreBackendFile
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendSQLite:
		return "SQLite (embedded database)"
	case StoreBackendFile:
		return "File (YAML topics file)"
	case StoreBackendMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// AllStoreBackends returns all available store backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{
		StoreBackendSQLite,
		StoreBackendFile,
		StoreBackendMemory,
	}
}

// StoreSettings holds topic store configuration.
type StoreSettings struct {
	// Backend selects the store implementation.
	Backend StoreBackend

	// Path is the SQLite data directory or the YAML topics file.
	// Empty means the default location under the KawnHub home.
	Path string

	// Watch invalidates the corpus when the topics file changes (file backend).
	Watch bool
}

// CacheSettings holds corpus cache configuration.
type CacheSettings struct {
	// TTL is how long a fetched corpus stays fresh.
	TTL time.Duration

	// FetchTimeout bounds a single corpus fetch.
	FetchTimeout time.Duration

	// WarmInterval is the background refresh period. Zero disables it.
	WarmInterval time.Duration
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Debounce is the quiet period before an interactive query is issued.
	Debounce time.Duration

	// ResultCacheSize is the number of memoised queries. Zero disables the memo.
	ResultCacheSize int
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained request rate per second.
	RateLimit float64

	// RateBurst is the maximum burst size.
	RateBurst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Store  StoreSettings
	Cache  CacheSettings
	Search SearchSettings
	Server ServerSettings
}

// Default setting values.
const (
	DefaultCacheTTL        = time.Hour
	DefaultFetchTimeout    = 5 * time.Second
	DefaultDebounce        = 300 * time.Millisecond
	DefaultResultCacheSize = 256
	DefaultServerAddr      = ":8080"
	DefaultRateLimit       = 20
	DefaultRateBurst       = 40
)

// DefaultAppSettings returns settings with sensible defaults.
// The warm-refresh scheduler is disabled by default.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Backend: StoreBackendSQLite,
			Watch:   true,
		},
		Cache: CacheSettings{
			TTL:          DefaultCacheTTL,
			FetchTimeout: DefaultFetchTimeout,
		},
		Search: SearchSettings{
			Debounce:        DefaultDebounce,
			ResultCacheSize: DefaultResultCacheSize,
		},
		Server: ServerSettings{
			Addr:      DefaultServerAddr,
			RateLimit: DefaultRateLimit,
			RateBurst: DefaultRateBurst,
		},
	}
}
