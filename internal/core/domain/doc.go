// Package domain defines the core business entities for KawnHub.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Topic: A lesson or article made of ordered content blocks
//   - ContentBlock: A typed unit of topic content with a BlockPayload
//   - Corpus: The set of topics available to search at a point in time
//   - MatchResult: One search hit with its location and snippet
//   - NavigationTarget: Where a selected hit leads (topic + block anchor)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
