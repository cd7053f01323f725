package driven

import (
	"context"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// TopicStore persists topics.
// It is the collection the corpus cache fetches from.
type TopicStore interface {
	// List returns every topic in a stable order (insertion order).
	List(ctx context.Context) ([]domain.Topic, error)

	// Get retrieves a topic by ID.
	// Returns domain.ErrNotFound if no topic has that ID.
	Get(ctx context.Context, id string) (*domain.Topic, error)

	// Save stores or replaces a topic. A replaced topic keeps its position.
	Save(ctx context.Context, topic *domain.Topic) error

	// Create stores a topic whose ID must be unused. The check and the write
	// are atomic; returns domain.ErrAlreadyExists when the ID is taken.
	Create(ctx context.Context, topic *domain.Topic) error

	// Delete removes a topic.
	// Returns domain.ErrNotFound if no topic has that ID.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}
