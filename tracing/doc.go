// Package tracing wraps OpenTelemetry so that orchestration code can open and
// close spans per composition node without importing the SDK directly. Spans
// are no-ops until Init or InitWithExporter installs a provider.
package tracing
