package emails

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teemow/gmailsql/internal/gmail"
	"github.com/teemow/gmailsql/internal/instrumentation"
)

// method names the provider calls the controller knows how to drive.
type method string

const (
	methodListMessages method = "list_messages"
	methodSendMessage  method = "send_message"
)

const (
	// maxPageSize caps the page size of one list call.
	maxPageSize = 500

	// queryDeadline bounds one whole query execution, all pages included.
	queryDeadline = 60 * time.Second
)

// fetch drives the provider calls for one query execution and returns the
// assembled rows.
//
// With a result-count limit, each iteration requests min(remaining,
// maxPageSize) results, stops once the limit is met and discards trailing
// overshoot in arrival order. Without one, it pages with maxPageSize until the
// provider stops returning a continuation token. The token is opaque and
// echoed back verbatim; its absence is the termination signal. Exceeding the
// deadline fails the query with ErrTimeout and returns no rows.
func (t *Table) fetch(ctx context.Context, m method, params any, limit *int64) ([]Row, error) {
	var list gmail.ListParams
	var payload gmail.OutboundPayload

	switch m {
	case methodListMessages:
		p, ok := params.(gmail.ListParams)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects list parameters, got %T", ErrUnknownMethod, m, params)
		}
		list = p
	case methodSendMessage:
		p, ok := params.(gmail.OutboundPayload)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects an outbound payload, got %T", ErrUnknownMethod, m, params)
		}
		payload = p
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, m)
	}

	deadline := time.Now().Add(queryDeadline)
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	var rows []Row

loop:
	for {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, queryDeadline)
		}

		if limit != nil {
			remaining := *limit - int64(len(rows))
			if remaining <= 0 {
				rows = rows[:max(*limit, 0)]
				break
			}
			if remaining > maxPageSize {
				list.MaxResults = maxPageSize
			} else {
				list.MaxResults = remaining
			}
		} else if m == methodListMessages {
			list.MaxResults = maxPageSize
		}

		switch m {
		case methodListMessages:
			t.logger.Debug("calling gmail api",
				"method", string(m),
				"q", list.Q,
				"label_ids", strings.Join(list.LabelIDs, ","),
				"include_spam_trash", list.IncludeSpamTrash,
				"max_results", list.MaxResults,
				"page_token", list.PageToken,
			)

			began := time.Now()
			page, err := t.svc.ListMessages(ctx, list)
			if err != nil {
				t.metrics.RecordAPIOperation(ctx, string(m), instrumentation.StatusError, time.Since(began))
				return nil, callError(err)
			}
			t.metrics.RecordAPIOperation(ctx, string(m), instrumentation.StatusSuccess, time.Since(began))

			rows = append(rows, t.resolve(ctx, page.Messages)...)

			if page.NextPageToken == "" {
				break loop
			}
			list.PageToken = page.NextPageToken

		case methodSendMessage:
			t.logger.Debug("calling gmail api", "method", string(m), "thread_id", payload.ThreadID)

			began := time.Now()
			sent, err := t.svc.SendMessage(ctx, payload)
			if err != nil {
				t.metrics.RecordAPIOperation(ctx, string(m), instrumentation.StatusError, time.Since(began))
				return nil, callError(err)
			}
			t.metrics.RecordAPIOperation(ctx, string(m), instrumentation.StatusSuccess, time.Since(began))

			row, err := projectMessage(sent, t.logger)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
			break loop
		}
	}

	// A final page can overshoot the requested count; discard the excess
	// trailing rows rather than re-requesting.
	if limit != nil && int64(len(rows)) > *limit {
		rows = rows[:max(*limit, 0)]
	}

	return rows, nil
}

// callError maps a failed provider call onto the table's error taxonomy:
// deadline exhaustion is a fatal timeout, everything else a provider failure
// surfaced with its transport message.
func callError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrProvider, err)
}
