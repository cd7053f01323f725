// Package sqlite provides a SQLite-based implementation of driven.TopicStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Topic content is stored as a JSON array of {"type", "data"} blocks and decoded
// into typed payloads when read.
//
// # Data Location
//
// By default, the database is stored at ~/.kawnhub/data/topics.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
