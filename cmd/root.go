package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gmailsql application
var rootCmd = &cobra.Command{
	Use:   "gmailsql",
	Short: "Query and send Gmail as rows of a relational table",
	Long: `gmailsql exposes a Gmail mailbox as a relational emails table.

Selects translate into paginated Gmail list and batched get calls, inserts
compose and send messages through the Gmail API.

It can run as:
  - A standalone CLI tool (query, send)
  - An MCP (Model Context Protocol) server for AI assistants (serve)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gmailsql version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
