package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailsql/internal/relquery"
)

func newSendCmd() *cobra.Command {
	var (
		debug     bool
		to        string
		subject   string
		body      string
		threadID  string
		messageID string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email by inserting a row into the emails table",
		Long: `Send an email by inserting a row into the emails table.

To reply within an existing thread, pass both --thread-id and --message-id
of the message being replied to. The reply then carries the In-Reply-To and
References headers so mail clients thread it correctly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := newCLIContext(cmd.Context(), debug)
			defer sc.Shutdown()

			columns := []string{"to_email"}
			row := []any{to}
			for _, f := range []struct {
				column string
				value  string
			}{
				{"subject", subject},
				{"body", body},
				{"thread_id", threadID},
				{"message_id", messageID},
			} {
				if f.value != "" {
					columns = append(columns, f.column)
					row = append(row, f.value)
				}
			}

			table, err := sc.Table()
			if err != nil {
				return err
			}

			if err := table.Insert(cmd.Context(), relquery.InsertQuery{
				Columns: columns,
				Rows:    [][]any{row},
			}); err != nil {
				return fmt.Errorf("failed to send email: %w", err)
			}

			fmt.Printf("Email sent to %s\n", to)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&to, "to", "", "Recipient email address (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "Email subject")
	cmd.Flags().StringVar(&body, "body", "", "Plain text email body")
	cmd.Flags().StringVar(&threadID, "thread-id", "", "Thread to reply into (requires --message-id)")
	cmd.Flags().StringVar(&messageID, "message-id", "", "RFC 2822 Message-ID of the message being replied to")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
