package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailsql/internal/logging"
	"github.com/teemow/gmailsql/internal/relquery"
	"github.com/teemow/gmailsql/internal/server"
)

// newCLIContext creates a server context for one-shot CLI commands.
// Instrumentation is not wired up; metrics recording becomes a no-op.
func newCLIContext(ctx context.Context, debug bool) *server.ServerContext {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := logging.Setup(level)
	return server.NewServerContext(ctx, logging.NewSlogAdapter(logger), nil)
}

func newQueryCmd() *cobra.Command {
	var (
		debug            bool
		query            string
		labelIDs         string
		includeSpamTrash bool
		limit            int64
		columns          string
		asJSON           bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Select rows from the emails table",
		Long: `Select rows from the emails table.

Filters translate into Gmail list parameters, the limit bounds the number
of returned rows. Without a limit all matching messages are fetched,
following page tokens until the mailbox is exhausted or the query deadline
is reached.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := newCLIContext(cmd.Context(), debug)
			defer sc.Shutdown()

			var q relquery.SelectQuery
			if query != "" {
				q.Conditions = append(q.Conditions, relquery.Condition{Field: "query", Op: relquery.OpEq, Value: query})
			}
			if labelIDs != "" {
				q.Conditions = append(q.Conditions, relquery.Condition{Field: "label_ids", Op: relquery.OpEq, Value: labelIDs})
			}
			if includeSpamTrash {
				q.Conditions = append(q.Conditions, relquery.Condition{Field: "include_spam_trash", Op: relquery.OpEq, Value: true})
			}
			if cmd.Flags().Changed("limit") {
				q.Limit = &limit
			}
			if columns == "" {
				q.Targets = []relquery.Target{{Star: true}}
			} else {
				for _, col := range strings.Split(columns, ",") {
					col = strings.TrimSpace(col)
					if col != "" {
						q.Targets = append(q.Targets, relquery.Target{Column: col})
					}
				}
			}

			table, err := sc.Table()
			if err != nil {
				return err
			}

			result, err := table.Select(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}

			if asJSON {
				return printJSON(result.Columns, result.Rows)
			}
			return printTable(result.Columns, result.Rows)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query (e.g., 'from:user@example.com is:unread')")
	cmd.Flags().StringVar(&labelIDs, "label-ids", "", "Comma-separated Gmail label IDs to filter by (e.g., 'INBOX,UNREAD')")
	cmd.Flags().BoolVar(&includeSpamTrash, "include-spam-trash", false, "Include messages from SPAM and TRASH")
	cmd.Flags().Int64VarP(&limit, "limit", "l", 0, "Maximum number of rows to return")
	cmd.Flags().StringVar(&columns, "columns", "", "Comma-separated columns to return (default: all columns)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print rows as JSON objects")
	return cmd
}

func printJSON(columns []string, rows [][]any) error {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]any, len(columns))
		for i, col := range columns {
			obj[col] = row[i]
		}
		out = append(out, obj)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printTable(columns []string, rows [][]any) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			cells[i] = strings.ReplaceAll(fmt.Sprint(v), "\n", " ")
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}
