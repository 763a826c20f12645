package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/gmailsql/internal/gmail"
	"github.com/teemow/gmailsql/internal/google"
)

func newAuthCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to a Gmail account",
		Long: `Authorize gmailsql to access a Gmail account via OAuth.

Run without flags to print the authorization URL. Open it in a browser,
approve the requested scopes and re-run the command with --code to store
the token.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET to be set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if code != "" {
				if err := google.SaveToken(cmd.Context(), code); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}

				httpClient, err := google.GetHTTPClient(cmd.Context())
				if err != nil {
					return err
				}
				client, err := gmail.NewClient(cmd.Context(), httpClient)
				if err != nil {
					return err
				}
				status := client.CheckConnection(cmd.Context())
				if !status.Success {
					return fmt.Errorf("token saved but connection check failed: %s", status.Message)
				}

				fmt.Printf("Token saved, %s\n", status.Message)
				return nil
			}

			if google.HasToken() {
				fmt.Println("A token is already stored. Re-authorize with --code to replace it.")
			}

			url, err := google.GetAuthURL()
			if err != nil {
				return err
			}
			fmt.Println("Open the following URL in a browser and authorize access:")
			fmt.Println()
			fmt.Println("  " + url)
			fmt.Println()
			fmt.Println("Then run: gmailsql auth --code <authorization-code>")
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code from the OAuth consent flow")
	return cmd
}
