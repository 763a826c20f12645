package emails_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gmailsql/internal/relquery"
	"github.com/teemow/gmailsql/internal/server"
	"github.com/teemow/gmailsql/internal/tools/common"
)

// RegisterEmailsTools registers the emails table tools with the MCP server.
func RegisterEmailsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	queryTool := mcp.NewTool("emails_query",
		mcp.WithDescription("Query emails as rows of a relational table. Filters are combined with AND."),
		mcp.WithString("query",
			mcp.Description("Gmail search query (e.g., 'from:user@example.com is:unread')"),
		),
		mcp.WithString("label_ids",
			mcp.Description("Comma-separated Gmail label IDs to filter by (e.g., 'INBOX,UNREAD')"),
		),
		mcp.WithBoolean("include_spam_trash",
			mcp.Description("Include messages from SPAM and TRASH (default: false)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of rows to return. Omit to fetch all matching messages."),
		),
		mcp.WithString("columns",
			mcp.Description("Comma-separated columns to return (default: all columns)"),
		),
	)

	s.AddTool(queryTool, common.InstrumentedToolHandler("emails_query", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryEmails(ctx, request, sc)
		}))

	sendTool := mcp.NewTool("emails_send",
		mcp.WithDescription("Send an email by inserting a row into the emails table"),
		mcp.WithString("to_email",
			mcp.Required(),
			mcp.Description("Recipient email address"),
		),
		mcp.WithString("subject",
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Description("Plain text email body"),
		),
		mcp.WithString("thread_id",
			mcp.Description("Thread to reply into. Requires message_id to thread correctly."),
		),
		mcp.WithString("message_id",
			mcp.Description("RFC 2822 Message-ID of the message being replied to"),
		),
	)

	s.AddTool(sendTool, common.InstrumentedToolHandler("emails_send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendEmail(ctx, request, sc)
		}))

	checkTool := mcp.NewTool("gmail_check_connection",
		mcp.WithDescription("Check that the Gmail API is reachable with the stored credentials"),
	)

	s.AddTool(checkTool, common.InstrumentedToolHandler("gmail_check_connection", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCheckConnection(ctx, request, sc)
		}))

	return nil
}

// SelectQueryFromArgs builds a structured select from tool arguments.
func SelectQueryFromArgs(args map[string]interface{}) relquery.SelectQuery {
	var q relquery.SelectQuery

	for _, field := range []string{"query", "label_ids"} {
		if v, ok := args[field].(string); ok && v != "" {
			q.Conditions = append(q.Conditions, relquery.Condition{Field: field, Op: relquery.OpEq, Value: v})
		}
	}
	if v, ok := args["include_spam_trash"].(bool); ok && v {
		q.Conditions = append(q.Conditions, relquery.Condition{Field: "include_spam_trash", Op: relquery.OpEq, Value: v})
	}
	if v, ok := args["limit"].(float64); ok {
		limit := int64(v)
		q.Limit = &limit
	}

	if cols, ok := args["columns"].(string); ok && cols != "" {
		for _, col := range strings.Split(cols, ",") {
			col = strings.TrimSpace(col)
			if col != "" {
				q.Targets = append(q.Targets, relquery.Target{Column: col})
			}
		}
	}
	if len(q.Targets) == 0 {
		q.Targets = []relquery.Target{{Star: true}}
	}

	return q
}

func handleQueryEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	table, err := sc.Table()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Gmail client: %v", err)), nil
	}

	result, err := table.Select(ctx, SelectQueryFromArgs(request.GetArguments()))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Query failed: %v", err)), nil
	}

	rows := make([]map[string]interface{}, 0, len(result.Rows))
	for _, row := range result.Rows {
		obj := make(map[string]interface{}, len(result.Columns))
		for i, col := range result.Columns {
			obj[col] = row[i]
		}
		rows = append(rows, obj)
	}

	payload := map[string]interface{}{
		"columns": result.Columns,
		"rows":    rows,
		"count":   len(rows),
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

func handleSendEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	to, ok := args["to_email"].(string)
	if !ok || to == "" {
		return mcp.NewToolResultError("'to_email' field is required"), nil
	}

	columns := []string{"to_email"}
	row := []interface{}{to}
	for _, field := range []string{"subject", "body", "thread_id", "message_id"} {
		if v, ok := args[field].(string); ok && v != "" {
			columns = append(columns, field)
			row = append(row, v)
		}
	}

	table, err := sc.Table()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Gmail client: %v", err)), nil
	}

	if err := table.Insert(ctx, relquery.InsertQuery{Columns: columns, Rows: [][]interface{}{row}}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send email: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Email sent successfully to %s", to)), nil
}

func handleCheckConnection(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	svc, err := sc.Service()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Gmail client: %v", err)), nil
	}

	status := svc.CheckConnection(ctx)
	if !status.Success {
		return mcp.NewToolResultError(fmt.Sprintf("Connection check failed: %s", status.Message)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Connection OK: %s", status.Message)), nil
}
