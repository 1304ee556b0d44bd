// Package cli defines the worksphere command tree: serve (HTTP server),
// mcp serve (MCP stdio server), ask (one-shot query), and version.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "worksphere",
	Short: "WorkSphere assistant - intent-routed productivity answers",
	Long: `worksphere runs the backend of the WorkSphere AI assistant: it answers
free-text productivity queries (tasks, messages, files, approvals, meetings,
daily summaries) from the WorkSphere relational store.

The assistant is exposed three ways: an HTTP endpoint (serve), an MCP stdio
server for desktop AI clients (mcp serve), and a one-shot CLI query (ask).`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("worksphere %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
