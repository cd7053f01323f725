// Package memory provides in-memory implementations of the driven ports.
// They back the "memory" store backend and the tests of core services.
package memory
