package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driven"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStoreBackend      = "store.backend"
	KeyStorePath         = "store.path"
	KeyStoreWatch        = "store.watch"
	KeyCacheTTL          = "cache.ttl_seconds"
	KeyCacheFetchTimeout = "cache.fetch_timeout_seconds"
	KeyCacheWarm         = "cache.warm_interval_seconds"
	KeySearchDebounce    = "search.debounce_ms"
	KeySearchMemoSize    = "search.result_cache_size"
	KeyServerAddr        = "server.addr"
	KeyServerRateLimit   = "server.rate_limit"
	KeyServerRateBurst   = "server.rate_burst"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
)

var settingKeys = []struct {
	key  string
	kind keyKind
}{
	{KeyStoreBackend, kindString},
	{KeyStorePath, kindString},
	{KeyStoreWatch, kindBool},
	{KeyCacheTTL, kindInt},
	{KeyCacheFetchTimeout, kindInt},
	{KeyCacheWarm, kindInt},
	{KeySearchDebounce, kindInt},
	{KeySearchMemoSize, kindInt},
	{KeyServerAddr, kindString},
	{KeyServerRateLimit, kindFloat},
	{KeyServerRateBurst, kindInt},
}

// SettingsService maps configuration keys onto domain.AppSettings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Unset keys take their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend: s.getBackend(defaults.Store.Backend),
			Path:    s.configStore.GetString(KeyStorePath),
			Watch:   s.getBool(KeyStoreWatch, defaults.Store.Watch),
		},
		Cache: domain.CacheSettings{
			TTL:          s.getDuration(KeyCacheTTL, time.Second, defaults.Cache.TTL),
			FetchTimeout: s.getDuration(KeyCacheFetchTimeout, time.Second, defaults.Cache.FetchTimeout),
			WarmInterval: s.getDuration(KeyCacheWarm, time.Second, defaults.Cache.WarmInterval),
		},
		Search: domain.SearchSettings{
			Debounce:        s.getDuration(KeySearchDebounce, time.Millisecond, defaults.Search.Debounce),
			ResultCacheSize: s.getInt(KeySearchMemoSize, defaults.Search.ResultCacheSize),
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(KeyServerAddr, defaults.Server.Addr),
			RateLimit: s.getFloat(KeyServerRateLimit, defaults.Server.RateLimit),
			RateBurst: s.getInt(KeyServerRateBurst, defaults.Server.RateBurst),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := ValidateSettings(settings); err != nil {
		return err
	}

	values := map[string]any{
		KeyStoreBackend:      settings.Store.Backend.String(),
		KeyStorePath:         settings.Store.Path,
		KeyStoreWatch:        settings.Store.Watch,
		KeyCacheTTL:          int(settings.Cache.TTL / time.Second),
		KeyCacheFetchTimeout: int(settings.Cache.FetchTimeout / time.Second),
		KeyCacheWarm:         int(settings.Cache.WarmInterval / time.Second),
		KeySearchDebounce:    int(settings.Search.Debounce / time.Millisecond),
		KeySearchMemoSize:    settings.Search.ResultCacheSize,
		KeyServerAddr:        settings.Server.Addr,
		KeyServerRateLimit:   settings.Server.RateLimit,
		KeyServerRateBurst:   settings.Server.RateBurst,
	}
	for _, k := range settingKeys {
		if err := s.configStore.Set(k.key, values[k.key]); err != nil {
			return fmt.Errorf("save %s: %w", k.key, err)
		}
	}
	return nil
}

// Set parses value for key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := lookupKind(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	var err error
	switch kind {
	case kindInt:
		parsed, err = strconv.Atoi(value)
	case kindFloat:
		parsed, err = strconv.ParseFloat(value, 64)
	case kindBool:
		parsed, err = strconv.ParseBool(value)
	default:
		parsed = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	// Validate the would-be settings before persisting anything.
	candidate := &SettingsService{configStore: overlayStore{ConfigStore: s.configStore, key: key, value: parsed}}
	if err := candidate.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return ValidateSettings(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys returns the supported setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for _, k := range settingKeys {
		keys = append(keys, k.key)
	}
	return keys
}

// ValidateSettings reports every invalid field, wrapped in domain.ErrInvalidInput.
func ValidateSettings(settings *domain.AppSettings) error {
	var err error
	if !settings.Store.Backend.IsValid() {
		err = multierror.Append(err, fmt.Errorf("%s: unknown backend %q", KeyStoreBackend, settings.Store.Backend))
	}
	if settings.Cache.TTL <= 0 {
		err = multierror.Append(err, fmt.Errorf("%s must be positive", KeyCacheTTL))
	}
	if settings.Cache.FetchTimeout <= 0 {
		err = multierror.Append(err, fmt.Errorf("%s must be positive", KeyCacheFetchTimeout))
	}
	if settings.Cache.WarmInterval < 0 {
		err = multierror.Append(err, fmt.Errorf("%s must not be negative", KeyCacheWarm))
	}
	if settings.Search.Debounce < 0 {
		err = multierror.Append(err, fmt.Errorf("%s must not be negative", KeySearchDebounce))
	}
	if settings.Search.ResultCacheSize < 0 {
		err = multierror.Append(err, fmt.Errorf("%s must not be negative", KeySearchMemoSize))
	}
	if settings.Server.Addr == "" {
		err = multierror.Append(err, errors.New(KeyServerAddr+" is required"))
	}
	if settings.Server.RateLimit <= 0 {
		err = multierror.Append(err, fmt.Errorf("%s must be positive", KeyServerRateLimit))
	}
	if settings.Server.RateBurst < 1 {
		err = multierror.Append(err, fmt.Errorf("%s must be at least 1", KeyServerRateBurst))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

func lookupKind(key string) (keyKind, bool) {
	for _, k := range settingKeys {
		if k.key == key {
			return k.kind, true
		}
	}
	return kindString, false
}

// Helper methods for reading config with defaults. A key that is
// present wins over the default, even when it holds a zero value.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * unit
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := s.configStore.GetString(KeyStoreBackend)
	if val == "" {
		return defaultVal
	}
	return domain.StoreBackend(val)
}

// overlayStore reads one key from memory and everything else from ConfigStore.
type overlayStore struct {
	driven.ConfigStore
	key   string
	value any
}

func (o overlayStore) Get(key string) (any, bool) {
	if key == o.key {
		return o.value, true
	}
	return o.ConfigStore.Get(key)
}

func (o overlayStore) GetString(key string) string {
	if key == o.key {
		v, _ := o.value.(string)
		return v
	}
	return o.ConfigStore.GetString(key)
}

func (o overlayStore) GetInt(key string) int {
	if key == o.key {
		switch v := o.value.(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
		return 0
	}
	return o.ConfigStore.GetInt(key)
}

func (o overlayStore) GetFloat(key string) float64 {
	if key == o.key {
		switch v := o.value.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
		return 0
	}
	return o.ConfigStore.GetFloat(key)
}

func (o overlayStore) GetBool(key string) bool {
	if key == o.key {
		v, _ := o.value.(bool)
		return v
	}
	return o.ConfigStore.GetBool(key)
}
