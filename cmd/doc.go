// Package cmd implements the command-line interface for gmailsql.
//
// This package provides the following commands:
//   - auth: Authorize access to a Gmail account and store the OAuth token
//   - query: Select rows from the emails table
//   - send: Send an email by inserting a row into the emails table
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
package cmd
