package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	configfile "github.com/BASILR00T/kawnhub-sub000/internal/adapters/driven/config/file"
	storefile "github.com/BASILR00T/kawnhub-sub000/internal/adapters/driven/storage/file"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driven/storage/memory"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driven/storage/sqlite"
	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/cli"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driven"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/services"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// HomeEnv overrides the KawnHub home directory.
const HomeEnv = "KAWNHUB_HOME"

// kawnhubHome returns $KAWNHUB_HOME, or ~/.kawnhub.
func kawnhubHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(userHome, configfile.DefaultDirName), nil
}

// application holds the wired services and the resources to release on exit.
type application struct {
	services cli.Services
	store    driven.TopicStore
	watcher  *storefile.Watcher
}

// Close stops the watcher and closes the topic store.
func (a *application) Close() error {
	var err error
	if a.watcher != nil {
		if cerr := a.watcher.Close(); cerr != nil {
			err = multierror.Append(err, cerr)
		}
	}
	if a.store != nil {
		if cerr := a.store.Close(); cerr != nil {
			err = multierror.Append(err, cerr)
		}
	}
	return err
}

// wire builds every service from the settings under home.
func wire(home string) (*application, error) {
	configStore, err := configfile.NewConfigStore(home)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if err := services.ValidateSettings(settings); err != nil {
		// Keep going so 'kawnhub settings set' can repair the file.
		logger.Error("invalid settings in %s: %v", configStore.Path(), err)
		settings = validOrDefault(settings)
	}

	store, storePath, err := openStore(home, settings.Store)
	if err != nil {
		return nil, err
	}
	logger.Debug("topic store: %s at %s", settings.Store.Backend, storePath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := services.NewMetrics(reg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	corpus := services.NewCorpusCache(store,
		services.WithTTL(settings.Cache.TTL),
		services.WithFetchTimeout(settings.Cache.FetchTimeout),
		services.WithCorpusMetrics(metrics),
	)

	searchService, err := services.NewSearchService(corpus, settings.Search.ResultCacheSize, metrics)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating search service: %w", err)
	}

	app := &application{store: store}
	app.services = cli.Services{
		Search:      searchService,
		Topics:      services.NewTopicService(store, corpus),
		Corpus:      corpus,
		Settings:    settingsService,
		Scheduler:   services.NewScheduler(corpus, settings.Cache.WarmInterval),
		Gatherer:    reg,
		AppSettings: *settings,
	}

	if settings.Store.Backend == domain.StoreBackendFile && settings.Store.Watch {
		watcher, err := storefile.NewWatcher(storePath, corpus.Invalidate)
		if err != nil {
			logger.Warn("topic file watcher unavailable: %v", err)
		} else {
			app.watcher = watcher
			app.services.Watcher = watcher
		}
	}

	return app, nil
}

// openStore opens the topic store for the configured backend and returns
// the resolved location.
func openStore(home string, cfg domain.StoreSettings) (driven.TopicStore, string, error) {
	switch cfg.Backend {
	case domain.StoreBackendSQLite:
		dir := cfg.Path
		if dir == "" {
			dir = filepath.Join(home, "data")
		}
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, "", fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, store.Path(), nil

	case domain.StoreBackendFile:
		path := cfg.Path
		if path == "" {
			path = filepath.Join(home, storefile.DefaultFileName)
		}
		store, err := storefile.NewTopicStore(path)
		if err != nil {
			return nil, "", fmt.Errorf("opening topics file: %w", err)
		}
		return store, store.Path(), nil

	case domain.StoreBackendMemory:
		return memory.NewTopicStore(), "memory", nil

	default:
		return nil, "", fmt.Errorf("%w: store backend %q", domain.ErrUnsupportedType, cfg.Backend)
	}
}

// validOrDefault replaces each invalid section with its default.
func validOrDefault(s *domain.AppSettings) *domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	out := *s
	if !out.Store.Backend.IsValid() {
		out.Store = defaults.Store
	}
	if out.Cache.TTL <= 0 || out.Cache.FetchTimeout <= 0 || out.Cache.WarmInterval < 0 {
		out.Cache = defaults.Cache
	}
	if out.Search.Debounce < 0 || out.Search.ResultCacheSize < 0 {
		out.Search = defaults.Search
	}
	if out.Server.Addr == "" || out.Server.RateLimit <= 0 || out.Server.RateBurst < 1 {
		out.Server = defaults.Server
	}
	return &out
}
