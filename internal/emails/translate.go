package emails

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teemow/gmailsql/internal/gmail"
	"github.com/teemow/gmailsql/internal/relquery"
)

// Filter fields the emails table recognizes in WHERE conditions.
const (
	fieldQuery            = "query"
	fieldLabelIDs         = "label_ids"
	fieldIncludeSpamTrash = "include_spam_trash"
)

// listParams translates comparison conditions into the parameters of a list
// call. Only equality is supported; OR combinations and unrecognized fields
// are rejected before any network call. The result-count limit is not part of
// the call parameters; the pagination controller owns it and sets MaxResults
// per page.
func listParams(conditions []relquery.Condition) (gmail.ListParams, error) {
	var params gmail.ListParams

	for _, cond := range conditions {
		if cond.Op == relquery.OpOr {
			return params, fmt.Errorf("%w: OR is not supported", ErrUnsupportedPredicate)
		}

		switch cond.Field {
		case fieldQuery, fieldLabelIDs, fieldIncludeSpamTrash:
			if cond.Op != relquery.OpEq {
				return params, fmt.Errorf("%w: operator %q", ErrUnsupportedPredicate, cond.Op)
			}
		default:
			return params, fmt.Errorf("%w: %q", ErrUnsupportedField, cond.Field)
		}

		switch cond.Field {
		case fieldQuery:
			params.Q = fmt.Sprint(cond.Value)
		case fieldLabelIDs:
			params.LabelIDs = strings.Split(fmt.Sprint(cond.Value), ",")
		case fieldIncludeSpamTrash:
			flag, err := toBool(cond.Value)
			if err != nil {
				return params, fmt.Errorf("%w: include_spam_trash: %v", ErrUnsupportedField, err)
			}
			params.IncludeSpamTrash = flag
		}
	}

	return params, nil
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	}
	return false, fmt.Errorf("cannot interpret %T as boolean", value)
}

// projection is the resolved output shape of a select: which schema columns to
// read and what to call them after aliasing.
type projection struct {
	columns []string
	names   []string
}

// projectionFor resolves SELECT targets. A star expands to the full fixed
// schema (lower-cased) and short-circuits the remaining targets; explicit
// column references are taken verbatim, renamed by their alias if one is set.
func projectionFor(targets []relquery.Target) (projection, error) {
	var p projection

	for _, target := range targets {
		switch {
		case target.Star:
			all := Columns()
			return projection{columns: all, names: all}, nil
		case target.Column != "":
			p.columns = append(p.columns, target.Column)
			name := target.Column
			if target.Alias != "" {
				name = target.Alias
			}
			p.names = append(p.names, name)
		default:
			return projection{}, fmt.Errorf("%w: expected column reference or star", ErrUnsupportedProjection)
		}
	}

	return p, nil
}

// OutboundMessage is one email composed from an insert row. It exists only
// until the send call is confirmed; nothing is persisted.
type OutboundMessage struct {
	To        string
	Subject   string
	Body      string
	ThreadID  string
	InReplyTo string
}

// insertColumns the table accepts.
var insertColumns = map[string]bool{
	"message_id": true,
	"thread_id":  true,
	"to_email":   true,
	"subject":    true,
	"body":       true,
}

// outboundMessages translates an insert into one OutboundMessage per value
// row. to_email is mandatory. When both thread_id and message_id are present
// the threading headers are set so the provider threads the reply.
func outboundMessages(query relquery.InsertQuery) ([]OutboundMessage, error) {
	for _, col := range query.Columns {
		if !insertColumns[col] {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedColumn, col)
		}
	}

	messages := make([]OutboundMessage, 0, len(query.Rows))
	for _, row := range query.Rows {
		values := make(map[string]string, len(query.Columns))
		for i, col := range query.Columns {
			if i < len(row) && row[i] != nil {
				values[col] = fmt.Sprint(row[i])
			}
		}

		if values["to_email"] == "" {
			return nil, ErrMissingRecipient
		}

		msg := OutboundMessage{
			To:       values["to_email"],
			Subject:  values["subject"],
			Body:     values["body"],
			ThreadID: values["thread_id"],
		}
		if values["thread_id"] != "" && values["message_id"] != "" {
			msg.InReplyTo = values["message_id"]
		}

		messages = append(messages, msg)
	}

	return messages, nil
}
