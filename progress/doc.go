// Package progress keeps aggregated leaf counters for a single orchestration
// run. The tracker travels in the run context, so every node can report
// without a global registry.
package progress
