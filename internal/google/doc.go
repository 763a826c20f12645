// Package google handles Google OAuth2 credential storage for gmailsql.
//
// This is the credential collaborator: it exchanges an authorization code for
// tokens, caches them under the user cache directory and hands out
// authenticated HTTP clients with automatic refresh. The emails table core
// never touches credentials; it only sees the provider session built on top
// of the HTTP client returned here.
package google
