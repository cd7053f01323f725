package mcp

import (
	"context"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.MatchResult
	query   string
}

func (m *mockSearchService) Search(_ context.Context, query string) []domain.MatchResult {
	m.query = query
	return m.results
}

// mockTopicService is a mock implementation of driving.TopicService.
type mockTopicService struct {
	topics []domain.Topic
	err    error
}

func (m *mockTopicService) List(_ context.Context) ([]domain.Topic, error) {
	return m.topics, m.err
}

func (m *mockTopicService) Get(_ context.Context, id string) (*domain.Topic, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.topics {
		if m.topics[i].ID == id {
			return &m.topics[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockTopicService) Save(_ context.Context, _ *domain.Topic) error {
	return m.err
}

func (m *mockTopicService) Create(_ context.Context, _ *domain.Topic) error {
	return m.err
}

func (m *mockTopicService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockTopicService) Import(_ context.Context, topics []domain.Topic) (int, error) {
	return len(topics), m.err
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	stats       domain.CorpusStats
	invalidated int
}

func (m *mockCorpusService) Corpus(_ context.Context) domain.Corpus {
	return domain.Corpus{}
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
