package driving

import (
	"context"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// CorpusService exposes the topic corpus cache.
type CorpusService interface {
	// Corpus returns the current snapshot, refreshing it first when stale.
	// Fetch failures are logged; the last good snapshot (or an empty one) is returned.
	Corpus(ctx context.Context) domain.Corpus

	// Invalidate marks the snapshot stale regardless of its age.
	Invalidate()

	// Refresh forces a fetch and reports its error.
	Refresh(ctx context.Context) error

	// Stats describes the cache state.
	Stats() domain.CorpusStats
}
