// Package idgen generates run and event identifiers. Identifiers are opaque
// strings; tests may replace NewFunc with a deterministic sequence.
package idgen
