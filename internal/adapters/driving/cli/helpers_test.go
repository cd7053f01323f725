package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driven/storage/memory"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/services"
)

// testServices are the real services over in-memory stores.
type testServices struct {
	store     *memory.TopicStore
	config    *memory.ConfigStore
	corpus    *services.CorpusCache
	topics    *services.TopicService
	scheduler *services.Scheduler
}

func routingTopics() []domain.Topic {
	return []domain.Topic{
		{
			ID:           "t1",
			Title:        "Intro to Routing",
			MaterialSlug: "networking",
			Content: []domain.ContentBlock{
				domain.NewTextBlock(domain.BlockHeading, "Overview"),
				domain.NewBilingualBlock(domain.BlockParagraph, "Static routes are manual.", ""),
			},
		},
		{
			ID:           "t2",
			Title:        "VLAN Basics",
			MaterialSlug: "networking",
			Content: []domain.ContentBlock{
				domain.NewBilingualBlock(domain.BlockParagraph, "Frames carry a static tag.", ""),
			},
		},
	}
}

// setupTestServices installs services seeded with topics and restores the
// previous handles on cleanup.
func setupTestServices(t *testing.T, topics ...domain.Topic) *testServices {
	t.Helper()

	store := memory.NewTopicStore(topics...)
	config := memory.NewConfigStore()
	corpus := services.NewCorpusCache(store)
	search, err := services.NewSearchService(corpus, 0, nil)
	require.NoError(t, err)

	ts := &testServices{
		store:     store,
		config:    config,
		corpus:    corpus,
		topics:    services.NewTopicService(store, corpus),
		scheduler: services.NewScheduler(corpus, 0),
	}

	old := Services{
		Search:      searchService,
		Topics:      topicService,
		Corpus:      corpusService,
		Settings:    settingsService,
		Scheduler:   scheduler,
		Gatherer:    gatherer,
		Watcher:     storeWatcher,
		AppSettings: appSettings,
	}
	SetServices(Services{
		Search:      search,
		Topics:      ts.topics,
		Corpus:      corpus,
		Settings:    services.NewSettingsService(config),
		Scheduler:   ts.scheduler,
		Gatherer:    prometheus.NewRegistry(),
		AppSettings: domain.DefaultAppSettings(),
	})
	t.Cleanup(func() { SetServices(old) })

	return ts
}

// clearServices removes every service handle for the duration of the test.
func clearServices(t *testing.T) {
	t.Helper()
	setupTestServices(t)
	SetServices(Services{AppSettings: domain.DefaultAppSettings()})
}

// resetFlags restores flag variables, which persist across executions of rootCmd.
func resetFlags() {
	verbose = false
	searchJSON = false
	searchPlain = false
	topicsJSON = false
	importMaterial = ""
	corpusJSON = false
	settingsShowKeys = false
	tuiSearch = false
	serveAddr = ""
	serveRateLimit = -1
	serveRateBurst = -1
}

// execute runs rootCmd with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

// executeContext is execute with a caller-supplied context.
func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}
