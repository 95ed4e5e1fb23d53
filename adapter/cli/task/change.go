package task

import (
	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:     "mark <n>",
	Short:   "Mark task n as done",
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, "mark", args...)
	},
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <n>",
	Short: "Mark task n as not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, "unmark", args...)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <n>",
	Short:   "Delete task n",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, "delete", args...)
	},
}
