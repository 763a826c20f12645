// Package instrumentation provides OpenTelemetry metrics and tracing for
// gmailsql.
//
// Provider owns the meter and tracer providers and their exporters
// (Prometheus, OTLP over HTTP, or stdout for development). Metrics is the
// recorder handed to the emails table and the MCP server; it counts provider
// API calls, returned rows, skipped batch items and tool invocations. A
// zero-value Metrics records nothing, so callers never need nil checks.
//
// Configuration is environment-driven, see DefaultConfig.
package instrumentation
