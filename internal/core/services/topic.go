package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driven"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// Ensure TopicService implements the interface.
var _ driving.TopicService = (*TopicService)(nil)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// TopicService manages topics and keeps the corpus cache coherent with writes.
type TopicService struct {
	store  driven.TopicStore
	corpus driving.CorpusService
	now    func() time.Time
}

// NewTopicService creates a new topic service.
// corpus may be nil when no cache needs invalidating.
func NewTopicService(store driven.TopicStore, corpus driving.CorpusService) *TopicService {
	return &TopicService{
		store:  store,
		corpus: corpus,
		now:    time.Now,
	}
}

// List returns all topics in store order.
func (s *TopicService) List(ctx context.Context) ([]domain.Topic, error) {
	topics, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// Get retrieves a topic by ID.
func (s *TopicService) Get(ctx context.Context, id string) (*domain.Topic, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: topic id is required", domain.ErrInvalidInput)
	}
	topic, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get topic %s: %w", id, err)
	}
	return topic, nil
}

// Save validates and stores a topic, then invalidates the corpus.
func (s *TopicService) Save(ctx context.Context, topic *domain.Topic) error {
	if err := s.save(ctx, topic); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Create validates and stores a new topic, then invalidates the corpus.
// An empty ID is assigned a new UUID. A taken ID returns
// domain.ErrAlreadyExists and leaves the stored topic untouched.
func (s *TopicService) Create(ctx context.Context, topic *domain.Topic) error {
	if topic == nil {
		return fmt.Errorf("%w: topic is nil", domain.ErrInvalidInput)
	}
	if err := ValidateTopic(topic); err != nil {
		return err
	}

	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	now := s.now().UTC()
	topic.CreatedAt = now
	topic.UpdatedAt = now

	if err := s.store.Create(ctx, topic); err != nil {
		return fmt.Errorf("create topic %s: %w", topic.ID, err)
	}
	logger.Debug("created topic %s (%d blocks)", topic.ID, topic.BlockCount())
	s.invalidate()
	return nil
}

// Delete removes a topic, then invalidates the corpus.
func (s *TopicService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: topic id is required", domain.ErrInvalidInput)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete topic %s: %w", id, err)
	}
	s.invalidate()
	return nil
}

// Import saves topics in order. Assigned IDs and timestamps are written back
// into topics. Failures do not stop the import; they are returned together.
// The corpus is invalidated once if anything was saved.
func (s *TopicService) Import(ctx context.Context, topics []domain.Topic) (int, error) {
	logger.Section("Topic Import")

	var errs error
	saved := 0
	for i := range topics {
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, err)
			break
		}
		t := &topics[i]
		if err := s.save(ctx, t); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("topic %d (%s): %w", i, t.Title, err))
			continue
		}
		saved++
	}

	if saved > 0 {
		s.invalidate()
	}
	logger.Info("imported %d of %d topics", saved, len(topics))
	return saved, errs
}

// save validates, stamps and stores a topic without invalidating.
func (s *TopicService) save(ctx context.Context, topic *domain.Topic) error {
	if topic == nil {
		return fmt.Errorf("%w: topic is nil", domain.ErrInvalidInput)
	}
	if err := ValidateTopic(topic); err != nil {
		return err
	}

	now := s.now().UTC()
	if topic.ID == "" {
		topic.ID = uuid.NewString()
		topic.CreatedAt = now
	} else if topic.CreatedAt.IsZero() {
		existing, err := s.store.Get(ctx, topic.ID)
		switch {
		case err == nil:
			topic.CreatedAt = existing.CreatedAt
		case errors.Is(err, domain.ErrNotFound):
			topic.CreatedAt = now
		default:
			return fmt.Errorf("get topic %s: %w", topic.ID, err)
		}
	}
	topic.UpdatedAt = now

	if err := s.store.Save(ctx, topic); err != nil {
		return fmt.Errorf("save topic %s: %w", topic.ID, err)
	}
	logger.Debug("saved topic %s (%d blocks)", topic.ID, topic.BlockCount())
	return nil
}

func (s *TopicService) invalidate() {
	if s.corpus != nil {
		s.corpus.Invalidate()
	}
}

// ValidateTopic checks a topic's required fields and block types.
// All problems are reported together, wrapped in domain.ErrInvalidInput.
func ValidateTopic(topic *domain.Topic) error {
	var err error
	if strings.TrimSpace(topic.Title) == "" {
		err = multierror.Append(err, errors.New("title is required"))
	}
	if topic.MaterialSlug == "" {
		err = multierror.Append(err, errors.New("material slug is required"))
	} else if !slugPattern.MatchString(topic.MaterialSlug) {
		err = multierror.Append(err, fmt.Errorf("material slug %q must be lowercase letters, digits and dashes", topic.MaterialSlug))
	}
	for i, b := range topic.Content {
		if !b.Type.IsValid() {
			err = multierror.Append(err, fmt.Errorf("block %d: unknown type %q", i, b.Type))
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}
