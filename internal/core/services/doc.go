// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search path is CorpusCache (snapshot of the topic store), Scan
// (pure matching over a snapshot) and SearchService (memoised Scan over
// the current snapshot). TopicService writes invalidate the cache.
package services
