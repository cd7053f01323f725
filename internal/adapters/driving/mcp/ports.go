package mcp

import (
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides topic search.
	Search driving.SearchService

	// Topics reads topics for the resources.
	Topics driving.TopicService

	// Corpus backs the invalidate_corpus tool.
	Corpus driving.CorpusService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Topics and Corpus are optional
	return nil
}
