package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// SearchInput is the input schema for the search_topics tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to find in topic titles and content (at least 2 characters)"`
}

// SearchOutput is the output schema for the search_topics tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single topic match.
type SearchResultOutput struct {
	TopicID      string `json:"topic_id"`
	Title        string `json:"title"`
	MaterialSlug string `json:"material_slug"`
	MatchType    string `json:"match_type"`
	BlockIndex   int    `json:"block_index"`
	Snippet      string `json:"snippet"`
	Path         string `json:"path"`
	ResourceURI  string `json:"resource_uri"`
}

// InvalidateInput is the input schema for the invalidate_corpus tool.
type InvalidateInput struct{}

// InvalidateOutput reports the corpus state after invalidation.
type InvalidateOutput struct {
	Invalidated bool   `json:"invalidated"`
	TopicCount  int    `json:"topic_count"`
	Generation  uint64 `json:"generation"`
}

// registerTools adds search_topics, and invalidate_corpus when a corpus is wired.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_topics",
		Description: "Search topic titles and content blocks; returns up to 15 matches in corpus order",
	}, s.handleSearch)
	s.exposed = append(s.exposed, "search_topics")

	if s.ports.Corpus == nil {
		return
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "invalidate_corpus",
		Description: "Mark the cached topic corpus stale so the next search reloads it",
	}, s.handleInvalidate)
	s.exposed = append(s.exposed, "invalidate_corpus")
}

// handleSearch handles the search_topics tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	matches := s.ports.Search.Search(ctx, input.Query)

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(matches)),
		Count:   len(matches),
	}

	for i := range matches {
		m := matches[i]
		output.Results[i] = SearchResultOutput{
			TopicID:      m.TopicID,
			Title:        m.Title,
			MaterialSlug: m.MaterialSlug,
			MatchType:    string(m.MatchType),
			BlockIndex:   m.BlockIndex,
			Snippet:      m.Snippet,
			Path:         domain.NewNavigationTarget(m).Path(),
			ResourceURI:  topicURI(m.TopicID),
		}
	}

	return nil, output, nil
}

// handleInvalidate handles the invalidate_corpus tool invocation.
func (s *Server) handleInvalidate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ InvalidateInput,
) (*mcp.CallToolResult, InvalidateOutput, error) {
	if s.ports.Corpus == nil {
		return nil, InvalidateOutput{}, ErrMissingCorpusService
	}

	s.ports.Corpus.Invalidate()
	stats := s.ports.Corpus.Stats()

	return nil, InvalidateOutput{
		Invalidated: stats.Invalidated,
		TopicCount:  stats.TopicCount,
		Generation:  stats.Generation,
	}, nil
}
