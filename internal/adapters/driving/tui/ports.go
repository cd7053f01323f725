// Package tui provides an interactive terminal user interface for KawnHub.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides topic search.
	Search driving.SearchService

	// Topics loads topics for browsing and viewing.
	Topics driving.TopicService

	// Corpus is optional; the browse view uses it to force a reload.
	Corpus driving.CorpusService

	// Debounce is the search quiet period. Zero uses the session default.
	Debounce time.Duration
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	topics driving.TopicService,
	corpus driving.CorpusService,
) *Ports {
	return &Ports{
		Search: search,
		Topics: topics,
		Corpus: corpus,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Topics == nil {
		return ErrMissingTopicService
	}
	return nil
}
