package gmail

import (
	"context"

	gmailapi "google.golang.org/api/gmail/v1"
)

// ListParams are the parameters of one users.messages.list call.
// PageToken is an opaque provider-issued cursor and is echoed back verbatim.
type ListParams struct {
	Q                string
	LabelIDs         []string
	IncludeSpamTrash bool
	MaxResults       int64
	PageToken        string
}

// ListPage is one page of a paginated message listing. Messages carries
// lightweight references (id and thread id only); the full records are
// resolved through BatchGetMessages.
type ListPage struct {
	Messages      []*gmailapi.Message
	NextPageToken string
}

// FetchResult is the outcome of one item of a batch fetch bundle.
// Exactly one of Msg or Err is set.
type FetchResult struct {
	ID  string
	Msg *gmailapi.Message
	Err error
}

// OutboundPayload is the wire form of a message to send: the base64url-encoded
// RFC 822 message plus an optional thread to attach it to.
type OutboundPayload struct {
	Raw      string
	ThreadID string
}

// ConnectionStatus reports whether the provider connection is usable.
type ConnectionStatus struct {
	Success bool
	Message string
}

// Service is the capability the emails table is built on. Implementations
// must be safe for use from a single query execution; no state is shared
// across queries.
type Service interface {
	// ListMessages performs one users.messages.list call.
	ListMessages(ctx context.Context, params ListParams) (*ListPage, error)

	// BatchGetMessages resolves full message records for the given ids as one
	// multiplexed bundle. The returned slice has one slot per id, in input
	// order, each tagged with either the message or a per-item error. It never
	// returns an error itself; per-item failures are part of the result.
	BatchGetMessages(ctx context.Context, ids []string) []FetchResult

	// SendMessage performs one users.messages.send call and returns the sent
	// message resource.
	SendMessage(ctx context.Context, payload OutboundPayload) (*gmailapi.Message, error)

	// CheckConnection verifies the session by fetching the user profile.
	CheckConnection(ctx context.Context) ConnectionStatus
}
