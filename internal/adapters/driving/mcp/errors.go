// Package mcp provides an MCP (Model Context Protocol) server adapter for KawnHub.
// It lets AI assistants search topics and read topic content.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingCorpusService is returned by invalidate_corpus when no corpus service is wired.
	ErrMissingCorpusService = errors.New("mcp: corpus service is not available")
)
