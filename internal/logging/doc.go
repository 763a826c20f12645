// Package logging provides structured logging utilities for gmailsql.
//
// It centralizes attribute naming and PII handling on top of the standard
// library's slog package. Query execution emits one diagnostic line per
// outbound provider call; those lines carry method and parameter attributes
// with the keys defined here so they stay grepable across the codebase.
//
// Email addresses are PII. Log them through UserHash, which hashes the
// address so log entries stay correlatable without exposing the address
// itself.
package logging
