package gmail

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const gmailUserID = "me"

const (
	// defaultCallsPerSecond bounds outbound request rate. Gmail grants 250
	// quota units per user per second and messages.get/list cost 5 units each.
	defaultCallsPerSecond = 25

	// defaultConcurrency is the max parallel requests inside one batch bundle.
	defaultConcurrency = 10
)

// Client implements Service on top of the Gmail REST API.
type Client struct {
	svc         *gmailapi.UsersService
	limiter     *rate.Limiter
	concurrency int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithConcurrency sets the max parallel requests for batch operations.
func WithConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithRateLimit sets the outbound calls-per-second limit.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), int(perSecond))
		}
	}
}

// NewClient creates a Gmail API client from an authenticated HTTP client.
// The HTTP client is expected to carry OAuth credentials; see the google
// package for how one is obtained.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...ClientOption) (*Client, error) {
	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	c := &Client{
		svc:         svc.Users,
		limiter:     rate.NewLimiter(rate.Limit(defaultCallsPerSecond), defaultCallsPerSecond),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListMessages performs one users.messages.list call with the given parameters.
func (c *Client) ListMessages(ctx context.Context, params ListParams) (*ListPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := c.svc.Messages.List(gmailUserID).Context(ctx)
	if params.Q != "" {
		call = call.Q(params.Q)
	}
	if len(params.LabelIDs) > 0 {
		call = call.LabelIds(params.LabelIDs...)
	}
	if params.IncludeSpamTrash {
		call = call.IncludeSpamTrash(true)
	}
	if params.MaxResults > 0 {
		call = call.MaxResults(params.MaxResults)
	}
	if params.PageToken != "" {
		call = call.PageToken(params.PageToken)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("messages.list failed: %w", err)
	}

	return &ListPage{
		Messages:      res.Messages,
		NextPageToken: res.NextPageToken,
	}, nil
}

// BatchGetMessages resolves full message records for the given ids. All ids
// are dispatched together, capped by the client concurrency, and each result
// slot is tagged with either the message or the per-item failure. The bundle
// itself never fails; a cancelled context marks the unfinished slots.
func (c *Client) BatchGetMessages(ctx context.Context, ids []string) []FetchResult {
	results := make([]FetchResult, len(ids))
	sem := make(chan struct{}, c.concurrency)

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		results[i].ID = id

		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}

			if err := c.limiter.Wait(gctx); err != nil {
				return err
			}

			msg, err := c.svc.Messages.Get(gmailUserID, id).Format("full").Context(gctx).Do()
			if err != nil {
				results[i].Err = fmt.Errorf("messages.get %s failed: %w", id, err)
				return nil
			}
			results[i].Msg = msg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for i := range results {
			if results[i].Msg == nil && results[i].Err == nil {
				results[i].Err = err
			}
		}
	}

	return results
}

// SendMessage performs one users.messages.send call.
func (c *Client) SendMessage(ctx context.Context, payload OutboundPayload) (*gmailapi.Message, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	msg := &gmailapi.Message{
		Raw:      payload.Raw,
		ThreadId: payload.ThreadID,
	}

	sent, err := c.svc.Messages.Send(gmailUserID, msg).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("messages.send failed: %w", err)
	}
	return sent, nil
}

// CheckConnection fetches the user profile to verify the session works.
func (c *Client) CheckConnection(ctx context.Context) ConnectionStatus {
	if err := c.limiter.Wait(ctx); err != nil {
		return ConnectionStatus{Message: err.Error()}
	}

	profile, err := c.svc.GetProfile(gmailUserID).Context(ctx).Do()
	if err != nil {
		return ConnectionStatus{Message: fmt.Sprintf("error connecting to Gmail API: %v", err)}
	}
	if profile.EmailAddress == "" {
		return ConnectionStatus{Message: "Gmail profile has no email address"}
	}

	return ConnectionStatus{
		Success: true,
		Message: fmt.Sprintf("connected as %s", profile.EmailAddress),
	}
}
