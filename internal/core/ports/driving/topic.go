package driving

import (
	"context"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// TopicService manages topics. Every successful write invalidates the corpus.
type TopicService interface {
	// List returns all topics in store order.
	List(ctx context.Context) ([]domain.Topic, error)

	// Get retrieves a topic by ID.
	Get(ctx context.Context, id string) (*domain.Topic, error)

	// Save validates and stores a topic. An empty ID is assigned a new UUID.
	Save(ctx context.Context, topic *domain.Topic) error

	// Create stores a new topic. An empty ID is assigned a new UUID; a taken
	// ID returns domain.ErrAlreadyExists.
	Create(ctx context.Context, topic *domain.Topic) error

	// Delete removes a topic.
	Delete(ctx context.Context, id string) error

	// Import saves many topics and invalidates the corpus once. Assigned IDs
	// and timestamps are written back into topics.
	// Returns the number saved and the aggregated errors of the rest.
	Import(ctx context.Context, topics []domain.Topic) (int, error)
}
