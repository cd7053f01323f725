package web

import (
	"context"
	"sync"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.MatchResult
	lastQuery string
}

func (m *mockSearchService) Search(_ context.Context, query string) []domain.MatchResult {
	m.lastQuery = query
	return m.results
}

// mockTopicService is a mock implementation of driving.TopicService
// backed by a map.
type mockTopicService struct {
	mu      sync.Mutex
	topics  map[string]domain.Topic
	saveErr error
	listErr error
}

func newMockTopicService(topics ...domain.Topic) *mockTopicService {
	m := &mockTopicService{topics: make(map[string]domain.Topic)}
	for _, t := range topics {
		m.topics[t.ID] = t
	}
	return m
}

func (m *mockTopicService) List(_ context.Context) ([]domain.Topic, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Topic, 0, len(m.topics))
	for _, t := range m.topics {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTopicService) Get(_ context.Context, id string) (*domain.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.topics[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *mockTopicService) Save(_ context.Context, topic *domain.Topic) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if topic.ID == "" {
		topic.ID = "generated"
	}
	m.topics[topic.ID] = *topic
	return nil
}

func (m *mockTopicService) Create(_ context.Context, topic *domain.Topic) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if topic.ID == "" {
		topic.ID = "generated"
	}
	if _, taken := m.topics[topic.ID]; taken {
		return domain.ErrAlreadyExists
	}
	m.topics[topic.ID] = *topic
	return nil
}

func (m *mockTopicService) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.topics[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.topics, id)
	return nil
}

func (m *mockTopicService) Import(ctx context.Context, topics []domain.Topic) (int, error) {
	for i := range topics {
		if err := m.Save(ctx, &topics[i]); err != nil {
			return i, err
		}
	}
	return len(topics), nil
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	stats       domain.CorpusStats
	invalidated int
}

func (m *mockCorpusService) Corpus(_ context.Context) domain.Corpus {
	return domain.Corpus{Topics: []domain.Topic{}}
}

func (m *mockCorpusService) Invalidate() {
	m.invalidated++
	m.stats.Invalidated = true
}

func (m *mockCorpusService) Refresh(_ context.Context) error {
	return nil
}

func (m *mockCorpusService) Stats() domain.CorpusStats {
	return m.stats
}
