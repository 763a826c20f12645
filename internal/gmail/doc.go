// Package gmail provides the provider capability consumed by the emails table:
// listing message references, resolving message bodies in bounded batches and
// sending composed messages through the Gmail API.
//
// The Service interface is the injection point. The emails package only ever
// talks to a Service, so the whole table core can be exercised against a fake
// implementation in tests. Client is the real implementation backed by
// google.golang.org/api/gmail/v1 with a token-bucket rate limiter in front of
// every outbound call.
//
// Authentication is not handled here; callers obtain an authenticated HTTP
// client from the google package and hand it to NewClient. Reconnection and
// token refresh are owned entirely by that layer.
package gmail
