package task

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tasks",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, "list")
	},
}

var findCmd = &cobra.Command{
	Use:   "find <text>",
	Short: "Find tasks whose description contains text",
	Long: `Find tasks whose description contains text. Matching is case-sensitive.

Examples:
  orion task find book`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, "find", args...)
	},
}
