// Package session implements the interactive query session: debouncing
// keystrokes, sequencing search requests, discarding stale responses,
// moving a circular result cursor and resolving the selected result into
// a navigation target.
//
// The Controller is a plain state machine with no timers or goroutines of
// its own. Each call returns an Output telling the adapter what to do next
// (start a debounce timer, issue a search request, navigate, move focus).
// Adapters feed the outcomes back in as calls. It is not safe for
// concurrent use; drive it from a single event loop.
package session
