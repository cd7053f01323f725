package tui

import (
	"context"
	"sync"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

type mockSearchService struct {
	mu      sync.Mutex
	results []domain.MatchResult
}

func (m *mockSearchService) Search(context.Context, string) []domain.MatchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results
}

type mockTopicService struct {
	topics []domain.Topic
}

func (m *mockTopicService) List(context.Context) ([]domain.Topic, error) { return m.topics, nil }

func (m *mockTopicService) Get(_ context.Context, id string) (*domain.Topic, error) {
	for i := range m.topics {
		if m.topics[i].ID == id {
			t := m.topics[i]
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockTopicService) Save(context.Context, *domain.Topic) error  { return nil }
func (m *mockTopicService) Create(context.Context, *domain.Topic) error { return nil }
func (m *mockTopicService) Delete(context.Context, string) error       { return nil }
func (m *mockTopicService) Import(context.Context, []domain.Topic) (int, error) { return 0, nil }

type mockCorpusService struct {
	stats domain.CorpusStats
}

func (m *mockCorpusService) Corpus(context.Context) domain.Corpus { return domain.Corpus{} }
func (m *mockCorpusService) Invalidate()                          { m.stats.Invalidated = true }
func (m *mockCorpusService) Refresh(context.Context) error        { return nil }
func (m *mockCorpusService) Stats() domain.CorpusStats            { return m.stats }
