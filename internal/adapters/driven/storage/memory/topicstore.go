package memory

import (
	"context"
	"sync"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driven"
)

// Ensure TopicStore implements the interface.
var _ driven.TopicStore = (*TopicStore)(nil)

// TopicStore is an in-memory implementation of driven.TopicStore.
// List returns topics in insertion order.
type TopicStore struct {
	mu     sync.RWMutex
	topics map[string]domain.Topic
	order  []string
	closed bool
}

// NewTopicStore creates a new in-memory topic store seeded with topics.
func NewTopicStore(seed ...domain.Topic) *TopicStore {
	s := &TopicStore{
		topics: make(map[string]domain.Topic),
	}
	for i := range seed {
		s.put(seed[i])
	}
	return s
}

// List returns all topics in insertion order.
func (s *TopicStore) List(_ context.Context) ([]domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	out := make([]domain.Topic, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.topics[id].Clone())
	}
	return out, nil
}

// Get retrieves a topic by ID.
func (s *TopicStore) Get(_ context.Context, id string) (*domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	topic, ok := s.topics[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := topic.Clone()
	return &c, nil
}

// Save stores or replaces a topic.
func (s *TopicStore) Save(_ context.Context, topic *domain.Topic) error {
	if topic == nil || topic.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	s.put(*topic)
	return nil
}

// Create stores a new topic. Returns domain.ErrAlreadyExists if the ID is taken.
func (s *TopicStore) Create(_ context.Context, topic *domain.Topic) error {
	if topic == nil || topic.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	if _, taken := s.topics[topic.ID]; taken {
		return domain.ErrAlreadyExists
	}
	s.put(*topic)
	return nil
}

// Delete removes a topic.
func (s *TopicStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	if _, ok := s.topics[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.topics, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close marks the store closed. Later calls return domain.ErrStoreClosed.
func (s *TopicStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// put stores a copy of topic (caller must hold lock).
func (s *TopicStore) put(topic domain.Topic) {
	if _, exists := s.topics[topic.ID]; !exists {
		s.order = append(s.order, topic.ID)
	}
	s.topics[topic.ID] = topic.Clone()
}
