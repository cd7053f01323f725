// Package cli implements the kawnhub command line.
//
// Commands reach the core through package-level service handles set once by
// main via SetServices. A nil handle means the command is unavailable and it
// reports so instead of panicking.
package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var verbose bool

var (
	searchService   driving.SearchService
	topicService    driving.TopicService
	corpusService   driving.CorpusService
	settingsService driving.SettingsService
	scheduler       driving.Scheduler
	gatherer        prometheus.Gatherer
	storeWatcher    Watcher
	appSettings     = domain.DefaultAppSettings()
)

// Watcher reports external changes to the topic store.
type Watcher interface {
	Start(ctx context.Context) error
	Close() error
}

// Services are the core handles the commands run against.
type Services struct {
	Search    driving.SearchService
	Topics    driving.TopicService
	Corpus    driving.CorpusService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler

	// Gatherer serves /metrics for kawnhub serve.
	Gatherer prometheus.Gatherer

	// Watcher is started by long-running commands. Optional.
	Watcher Watcher

	// AppSettings are the settings the services were built with.
	AppSettings domain.AppSettings
}

var rootCmd = &cobra.Command{
	Use:   "kawnhub",
	Short: "Search and read KawnHub study topics",
	Long: `KawnHub searches the titles and content blocks of study topics.

Search from the command line, open the interactive search dialog,
or serve the corpus over HTTP and MCP.

Example usage:
  kawnhub search routing          # Print matching topics
  kawnhub tui                     # Interactive search dialog
  kawnhub topics import t.yaml    # Load topics from a file
  kawnhub serve                   # HTTP API on server.addr`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetServices installs the core services used by every command.
func SetServices(s Services) {
	searchService = s.Search
	topicService = s.Topics
	corpusService = s.Corpus
	settingsService = s.Settings
	scheduler = s.Scheduler
	gatherer = s.Gatherer
	storeWatcher = s.Watcher
	appSettings = s.AppSettings
}

// SetVersion sets the version reported by kawnhub version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// startBackground starts the store watcher and the warm-refresh scheduler for
// a long-running command. The returned function stops both. Failures are
// logged, never fatal.
func startBackground(ctx context.Context) func() {
	var stops []func()

	if storeWatcher != nil {
		if err := storeWatcher.Start(ctx); err != nil {
			logger.Warn("topic file watcher not started: %v", err)
		} else {
			stops = append(stops, func() {
				if err := storeWatcher.Close(); err != nil {
					logger.Warn("closing topic file watcher: %v", err)
				}
			})
		}
	}

	if scheduler != nil {
		if err := scheduler.Start(ctx); err != nil {
			logger.Warn("scheduler not started: %v", err)
		} else {
			stops = append(stops, func() {
				if err := scheduler.Stop(); err != nil {
					logger.Warn("scheduler stop error: %v", err)
				}
			})
		}
	}

	return func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}
}
