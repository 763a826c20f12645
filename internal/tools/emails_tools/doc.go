// Package emails_tools provides MCP tools for the emails table.
//
// The tools expose the relational surface of the Gmail provider to AI
// assistants:
//   - emails_query: run a filtered, projected select against the emails table
//   - emails_send: insert a row, composing and sending an email
//   - gmail_check_connection: verify that the Gmail API is reachable
package emails_tools
