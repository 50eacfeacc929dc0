// Package inspect serves the protocol codec over HTTP for debugging and
// cross-implementation checks.
//
// Ownership boundary:
// - JSON views of decoded messages
// - encode/decode routes with error-kind status mapping
// - health, readiness and metrics endpoints
package inspect
