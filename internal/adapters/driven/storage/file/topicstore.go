package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driven"
)

// DefaultFileName is the topics file name used when only a directory is configured.
const DefaultFileName = "topics.yaml"

// Ensure TopicStore implements the interface.
var _ driven.TopicStore = (*TopicStore)(nil)

// TopicStore keeps topics in a single YAML file.
type TopicStore struct {
	mu     sync.RWMutex
	path   string
	closed bool
}

type document struct {
	Topics []topicWire `yaml:"topics"`
}

type topicWire struct {
	ID           string      `yaml:"id"`
	Title        string      `yaml:"title"`
	MaterialSlug string      `yaml:"materialSlug"`
	Content      []blockWire `yaml:"content"`
	CreatedAt    time.Time   `yaml:"createdAt,omitempty"`
	UpdatedAt    time.Time   `yaml:"updatedAt,omitempty"`
}

type blockWire struct {
	Type domain.BlockType `yaml:"type"`
	Data any              `yaml:"data,omitempty"`
}

// NewTopicStore creates a store backed by the YAML file at path.
// A directory path resolves to <dir>/topics.yaml. The file is created
// on the first write; a missing file reads as an empty collection.
func NewTopicStore(path string) (*TopicStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: topics file path is required", domain.ErrInvalidInput)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	return &TopicStore{path: path}, nil
}

// Path returns the topics file path.
func (s *TopicStore) Path() string {
	return s.path
}

// List returns all topics in file order.
func (s *TopicStore) List(_ context.Context) ([]domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	return s.load()
}

// Get retrieves a topic by ID.
func (s *TopicStore) Get(_ context.Context, id string) (*domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	topics, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range topics {
		if topics[i].ID == id {
			return &topics[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Save stores or replaces a topic. A replaced topic keeps its position.
func (s *TopicStore) Save(_ context.Context, topic *domain.Topic) error {
	if topic == nil || topic.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	topics, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range topics {
		if topics[i].ID == topic.ID {
			topics[i] = topic.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		topics = append(topics, topic.Clone())
	}
	return s.write(topics)
}

// Create appends a new topic. Returns domain.ErrAlreadyExists if the ID is taken.
func (s *TopicStore) Create(_ context.Context, topic *domain.Topic) error {
	if topic == nil || topic.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	topics, err := s.load()
	if err != nil {
		return err
	}
	for i := range topics {
		if topics[i].ID == topic.ID {
			return domain.ErrAlreadyExists
		}
	}
	return s.write(append(topics, topic.Clone()))
}

// Delete removes a topic.
func (s *TopicStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	topics, err := s.load()
	if err != nil {
		return err
	}
	for i := range topics {
		if topics[i].ID == id {
			return s.write(append(topics[:i], topics[i+1:]...))
		}
	}
	return domain.ErrNotFound
}

// Close marks the store closed. Later calls return domain.ErrStoreClosed.
func (s *TopicStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// load reads and decodes the topics file (caller must hold lock).
func (s *TopicStore) load() ([]domain.Topic, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Topic{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading topics file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing topics file %s: %w", s.path, err)
	}

	topics := make([]domain.Topic, 0, len(doc.Topics))
	for _, w := range doc.Topics {
		topics = append(topics, w.toDomain())
	}
	return topics, nil
}

// write encodes topics and atomically replaces the file (caller must hold lock).
func (s *TopicStore) write(topics []domain.Topic) error {
	doc := document{Topics: make([]topicWire, 0, len(topics))}
	for i := range topics {
		doc.Topics = append(doc.Topics, fromDomain(topics[i]))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding topics: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating topics directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing topics file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing topics file: %w", err)
	}
	return nil
}

func (w topicWire) toDomain() domain.Topic {
	topic := domain.Topic{
		ID:           w.ID,
		Title:        w.Title,
		MaterialSlug: w.MaterialSlug,
		Content:      make([]domain.ContentBlock, 0, len(w.Content)),
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	for _, b := range w.Content {
		topic.Content = append(topic.Content, domain.ContentBlock{
			Type: b.Type,
			Data: domain.DecodePayload(b.Type, b.Data),
		})
	}
	return topic
}

func fromDomain(t domain.Topic) topicWire {
	w := topicWire{
		ID:           t.ID,
		Title:        t.Title,
		MaterialSlug: t.MaterialSlug,
		Content:      make([]blockWire, 0, len(t.Content)),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	for _, b := range t.Content {
		w.Content = append(w.Content, blockWire{Type: b.Type, Data: domain.EncodePayload(b.Data)})
	}
	return w
}
