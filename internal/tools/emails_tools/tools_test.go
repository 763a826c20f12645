package emails_tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/teemow/gmailsql/internal/gmail"
	"github.com/teemow/gmailsql/internal/relquery"
	"github.com/teemow/gmailsql/internal/server"
)

// fakeService is a scripted gmail.Service for handler tests.
type fakeService struct {
	page      gmail.ListPage
	listCalls []gmail.ListParams
	sent      []gmail.OutboundPayload
	status    gmail.ConnectionStatus
}

func (f *fakeService) ListMessages(ctx context.Context, params gmail.ListParams) (*gmail.ListPage, error) {
	f.listCalls = append(f.listCalls, params)
	page := f.page
	f.page = gmail.ListPage{}
	return &page, nil
}

func (f *fakeService) BatchGetMessages(ctx context.Context, ids []string) []gmail.FetchResult {
	results := make([]gmail.FetchResult, len(ids))
	for i, id := range ids {
		results[i] = gmail.FetchResult{ID: id, Msg: &gmailapi.Message{
			Id:       id,
			ThreadId: "thread-" + id,
			Payload: &gmailapi.MessagePart{
				Headers: []*gmailapi.MessagePartHeader{
					{Name: "From", Value: "alice@example.com"},
					{Name: "Subject", Value: "subject of " + id},
				},
				Parts: []*gmailapi.MessagePart{{
					MimeType: "text/plain",
					Body:     &gmailapi.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte("body of " + id))},
				}},
			},
		}}
	}
	return results
}

func (f *fakeService) SendMessage(ctx context.Context, payload gmail.OutboundPayload) (*gmailapi.Message, error) {
	f.sent = append(f.sent, payload)
	return &gmailapi.Message{Id: "sent-1", ThreadId: payload.ThreadID}, nil
}

func (f *fakeService) CheckConnection(ctx context.Context) gmail.ConnectionStatus {
	return f.status
}

func newTestContext(t *testing.T, svc gmail.Service) *server.ServerContext {
	t.Helper()
	sc := server.NewServerContext(context.Background(), nil, nil)
	sc.SetService(svc)
	t.Cleanup(sc.Shutdown)
	return sc
}

func request(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestSelectQueryFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want relquery.SelectQuery
	}{
		{
			name: "empty args select everything",
			args: map[string]interface{}{},
			want: relquery.SelectQuery{Targets: []relquery.Target{{Star: true}}},
		},
		{
			name: "filters become equality conditions",
			args: map[string]interface{}{
				"query":              "is:unread",
				"label_ids":          "INBOX",
				"include_spam_trash": true,
			},
			want: relquery.SelectQuery{
				Conditions: []relquery.Condition{
					{Field: "query", Op: relquery.OpEq, Value: "is:unread"},
					{Field: "label_ids", Op: relquery.OpEq, Value: "INBOX"},
					{Field: "include_spam_trash", Op: relquery.OpEq, Value: true},
				},
				Targets: []relquery.Target{{Star: true}},
			},
		},
		{
			name: "columns split and trimmed",
			args: map[string]interface{}{"columns": "id, subject ,body"},
			want: relquery.SelectQuery{
				Targets: []relquery.Target{
					{Column: "id"},
					{Column: "subject"},
					{Column: "body"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectQueryFromArgs(tt.args)
			assert.Equal(t, tt.want.Conditions, got.Conditions)
			assert.Equal(t, tt.want.Targets, got.Targets)
			assert.Nil(t, got.Limit)
		})
	}
}

func TestSelectQueryFromArgsLimit(t *testing.T) {
	// JSON numbers arrive as float64
	got := SelectQueryFromArgs(map[string]interface{}{"limit": float64(25)})
	require.NotNil(t, got.Limit)
	assert.Equal(t, int64(25), *got.Limit)
}

func TestHandleQueryEmails(t *testing.T) {
	svc := &fakeService{page: gmail.ListPage{
		Messages: []*gmailapi.Message{{Id: "m1"}, {Id: "m2"}},
	}}
	sc := newTestContext(t, svc)

	result, err := handleQueryEmails(context.Background(),
		request("emails_query", map[string]interface{}{"query": "is:unread"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Columns []string         `json:"columns"`
		Rows    []map[string]any `json:"rows"`
		Count   int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))

	assert.Equal(t, 2, payload.Count)
	require.Len(t, payload.Rows, 2)
	assert.Contains(t, payload.Columns, "subject")
	assert.Equal(t, "m1", payload.Rows[0]["id"])
	assert.Equal(t, "body of m1", payload.Rows[0]["body"])

	require.Len(t, svc.listCalls, 1)
	assert.Equal(t, "is:unread", svc.listCalls[0].Q)
}

func TestHandleQueryEmailsProjection(t *testing.T) {
	svc := &fakeService{page: gmail.ListPage{
		Messages: []*gmailapi.Message{{Id: "m1"}},
	}}
	sc := newTestContext(t, svc)

	result, err := handleQueryEmails(context.Background(),
		request("emails_query", map[string]interface{}{"columns": "id,subject"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Columns []string `json:"columns"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
	assert.Equal(t, []string{"id", "subject"}, payload.Columns)
}

func TestHandleSendEmail(t *testing.T) {
	svc := &fakeService{}
	sc := newTestContext(t, svc)

	result, err := handleSendEmail(context.Background(),
		request("emails_send", map[string]interface{}{
			"to_email":   "bob@example.com",
			"subject":    "Hi",
			"body":       "Hello",
			"thread_id":  "t1",
			"message_id": "<abc@mail.gmail.com>",
		}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "bob@example.com")

	require.Len(t, svc.sent, 1)
	assert.Equal(t, "t1", svc.sent[0].ThreadID)

	raw, decErr := base64.URLEncoding.DecodeString(svc.sent[0].Raw)
	require.NoError(t, decErr)
	assert.Contains(t, string(raw), "In-Reply-To: <abc@mail.gmail.com>")
}

func TestHandleSendEmailMissingRecipient(t *testing.T) {
	svc := &fakeService{}
	sc := newTestContext(t, svc)

	result, err := handleSendEmail(context.Background(),
		request("emails_send", map[string]interface{}{"subject": "Hi"}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Empty(t, svc.sent)
}

func TestHandleCheckConnection(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		sc := newTestContext(t, &fakeService{status: gmail.ConnectionStatus{
			Success: true,
			Message: "connected as alice@example.com",
		}})

		result, err := handleCheckConnection(context.Background(),
			request("gmail_check_connection", nil), sc)
		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), "alice@example.com")
	})

	t.Run("not connected", func(t *testing.T) {
		sc := newTestContext(t, &fakeService{status: gmail.ConnectionStatus{
			Message: "error connecting to Gmail API: 401",
		}})

		result, err := handleCheckConnection(context.Background(),
			request("gmail_check_connection", nil), sc)
		require.NoError(t, err)
		require.True(t, result.IsError)
	})
}
