package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService scans the current corpus snapshot.
// Results are memoised per corpus generation, so a refresh drops stale entries.
type SearchService struct {
	corpus  driving.CorpusService
	memo    *lru.Cache
	metrics *Metrics
}

// NewSearchService creates a search service over corpus.
// memoSize is the number of memoised queries; zero or less disables the memo.
func NewSearchService(corpus driving.CorpusService, memoSize int, metrics *Metrics) (*SearchService, error) {
	s := &SearchService{
		corpus:  corpus,
		metrics: metrics,
	}
	if memoSize > 0 {
		memo, err := lru.New(memoSize)
		if err != nil {
			return nil, fmt.Errorf("create result memo: %w", err)
		}
		s.memo = memo
	}
	return s, nil
}

// Search scans the corpus for query. It never fails.
func (s *SearchService) Search(ctx context.Context, query string) []domain.MatchResult {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	q := NormalizeQuery(query)
	if utf8.RuneCountInString(q) < domain.MinQueryLength {
		logger.Debug("Query shorter than %d characters, returning no results", domain.MinQueryLength)
		s.metrics.searched(0, true)
		return []domain.MatchResult{}
	}

	corpus := s.corpus.Corpus(ctx)
	key := memoKey(corpus.Generation, q)

	if s.memo != nil {
		if v, ok := s.memo.Get(key); ok {
			cached := v.([]domain.MatchResult)
			logger.Debug("Memo hit: %d results (generation %d)", len(cached), corpus.Generation)
			s.metrics.memoHit()
			s.metrics.searched(len(cached), false)
			return copyResults(cached)
		}
	}

	logger.Debug("Scanning %d topics (generation %d)", corpus.Len(), corpus.Generation)
	results := Scan(corpus, q)
	logger.Debug("Found %d results", len(results))

	if s.memo != nil {
		s.memo.Add(key, copyResults(results))
	}
	s.metrics.searched(len(results), false)
	return results
}

func memoKey(generation uint64, q string) string {
	return fmt.Sprintf("%d\x00%s", generation, q)
}

func copyResults(in []domain.MatchResult) []domain.MatchResult {
	out := make([]domain.MatchResult, len(in))
	copy(out, in)
	return out
}
