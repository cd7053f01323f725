package driving

import (
	"context"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search scans the current corpus for query.
	// Results are in corpus order and capped at domain.MaxResults.
	// Queries shorter than domain.MinQueryLength yield no results.
	// Search never fails: internal errors are logged and yield no results.
	Search(ctx context.Context, query string) []domain.MatchResult
}
