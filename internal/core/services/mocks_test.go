package services

import (
	"context"
	"sync"
	"time"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// --- Mock implementations for service testing ---

// mockTopicStore implements driven.TopicStore with overridable List.
type mockTopicStore struct {
	mu     sync.Mutex
	listFn func(ctx context.Context) ([]domain.Topic, error)
	calls  int
}

func (m *mockTopicStore) List(ctx context.Context) ([]domain.Topic, error) {
	m.mu.Lock()
	m.calls++
	fn := m.listFn
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (m *mockTopicStore) Get(_ context.Context, _ string) (*domain.Topic, error) {
	return nil, domain.ErrNotFound
}

func (m *mockTopicStore) Save(_ context.Context, _ *domain.Topic) error { return nil }

func (m *mockTopicStore) Create(_ context.Context, _ *domain.Topic) error { return nil }

func (m *mockTopicStore) Delete(_ context.Context, _ string) error { return nil }

func (m *mockTopicStore) Close() error { return nil }

func (m *mockTopicStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// stubCorpus implements driving.CorpusService with a fixed snapshot.
type stubCorpus struct {
	mu          sync.Mutex
	corpus      domain.Corpus
	reads       int
	invalidated int
	refreshErr  error
}

func (s *stubCorpus) Corpus(_ context.Context) domain.Corpus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.corpus
}

func (s *stubCorpus) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated++
}

func (s *stubCorpus) Refresh(_ context.Context) error {
	return s.refreshErr
}

func (s *stubCorpus) Stats() domain.CorpusStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CorpusStats{TopicCount: s.corpus.Len(), Generation: s.corpus.Generation}
}

func (s *stubCorpus) set(c domain.Corpus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus = c
}

func (s *stubCorpus) invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// routingCorpus is the two-topic corpus used across search tests.
func routingCorpus() []domain.Topic {
	return []domain.Topic{
		{
			ID:           "t1",
			Title:        "Intro to Routing",
			MaterialSlug: "networking",
			Content: []domain.ContentBlock{
				domain.NewBilingualBlock(domain.BlockParagraph, "Static routes are manual.", ""),
			},
		},
		{
			ID:           "t2",
			Title:        "VLAN Basics",
			MaterialSlug: "networking",
			Content:      []domain.ContentBlock{},
		},
	}
}
