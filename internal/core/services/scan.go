package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// NormalizeQuery trims and lower-cases a query rune by rune.
func NormalizeQuery(query string) string {
	return string(lowerRunes(strings.TrimSpace(query)))
}

// IsSearchable reports whether a query is long enough to be scanned.
func IsSearchable(query string) bool {
	return utf8.RuneCountInString(NormalizeQuery(query)) >= domain.MinQueryLength
}

// Scan matches query against every topic of corpus.
//
// Results follow corpus order, one per topic, capped at domain.MaxResults.
// A title match wins over content and skips the block scan. Otherwise the
// first block whose text contains the query is reported with a snippet.
// Scan never panics: an internal failure is logged and yields no results.
func Scan(corpus domain.Corpus, query string) (results []domain.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("scan aborted for query %q: %v", query, r)
			results = []domain.MatchResult{}
		}
	}()

	q := NormalizeQuery(query)
	if utf8.RuneCountInString(q) < domain.MinQueryLength {
		return []domain.MatchResult{}
	}

	results = make([]domain.MatchResult, 0, min(len(corpus.Topics), domain.MaxResults))
	for i := range corpus.Topics {
		if len(results) == domain.MaxResults {
			break
		}
		if m, ok := matchTopic(&corpus.Topics[i], q); ok {
			results = append(results, m)
		}
	}
	return results
}

// matchTopic applies title-then-blocks matching to one topic.
// q must already be normalised.
func matchTopic(t *domain.Topic, q string) (domain.MatchResult, bool) {
	m := domain.MatchResult{
		TopicID:      t.ID,
		Title:        t.Title,
		MaterialSlug: t.MaterialSlug,
	}

	if _, ok := indexFold(t.Title, q); ok {
		m.MatchType = domain.MatchTitle
		m.BlockIndex = domain.NoBlock
		m.Snippet = domain.TitleMatchLabel
		return m, true
	}

	for i, block := range t.Content {
		text := block.SearchText()
		if text == "" {
			continue
		}
		p, ok := indexFold(text, q)
		if !ok {
			continue
		}
		m.MatchType = domain.MatchContent
		m.BlockIndex = i
		m.Snippet = snippet([]rune(text), p)
		return m, true
	}

	return m, false
}

// indexFold returns the rune position of q in the lower-cased text.
func indexFold(text, q string) (int, bool) {
	lowered := string(lowerRunes(text))
	b := strings.Index(lowered, q)
	if b < 0 {
		return 0, false
	}
	return utf8.RuneCountInString(lowered[:b]), true
}

// snippet cuts the window around rune position p, marking truncated ends.
func snippet(runes []rune, p int) string {
	start := max(0, p-domain.SnippetBefore)
	end := min(len(runes), p+domain.SnippetAfter)

	var sb strings.Builder
	if start > 0 {
		sb.WriteString(domain.Ellipsis)
	}
	sb.WriteString(string(runes[start:end]))
	if end < len(runes) {
		sb.WriteString(domain.Ellipsis)
	}
	return sb.String()
}

// lowerRunes lower-cases each rune independently so that positions in the
// result line up with positions in s.
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}
