package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WorksphereAI/worksphereai-sub002/internal/assistant"
)

var askUserID string

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask the assistant a one-shot question",
	Long: `Ask the assistant a one-shot question against the configured store and
print the response envelope as JSON.

Example:
  worksphere ask --user u-123 "show my pending tasks"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if OpenBackend == nil {
			return fmt.Errorf("backend not initialized")
		}

		ctx := context.Background()
		be, err := OpenBackend(ctx)
		if err != nil {
			return fmt.Errorf("opening backend: %w", err)
		}
		defer be.Close()

		user, err := be.Gateway.UserByID(ctx, askUserID)
		if err != nil {
			return fmt.Errorf("resolving user %s: %w", askUserID, err)
		}

		env, _, err := be.Dispatcher.Dispatch(ctx, user, args[0], nil)
		if err != nil {
			return fmt.Errorf("answering query: %w", err)
		}

		out, err := json.MarshalIndent(assistant.Assemble(env), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askUserID, "user", "", "user ID to ask as (required)")
	_ = askCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(askCmd)
}
