package task

import (
	"github.com/spf13/cobra"
)

var (
	deadlineBy string
	eventFrom  string
	eventTo    string
)

var todoCmd = &cobra.Command{
	Use:   "todo <description>",
	Short: "Add a todo",
	Long: `Add a todo.

Examples:
  orion task todo read book`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, "todo", args...)
	},
}

var deadlineCmd = &cobra.Command{
	Use:   "deadline <description> [/by <date>]",
	Short: "Add a deadline",
	Long: `Add a deadline. The date uses the yyyy-mm-dd format and can be given
inline or with --by.

Examples:
  orion task deadline submit report /by 2024-05-10
  orion task deadline submit report --by 2024-05-10`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if deadlineBy != "" {
			args = append(args, "/by", deadlineBy)
		}
		return execute(cmd, "deadline", args...)
	},
}

var eventCmd = &cobra.Command{
	Use:   "event <description> [/from <date> /to <date>]",
	Short: "Add an event",
	Long: `Add an event spanning two dates (inclusive). Dates use the yyyy-mm-dd
format and can be given inline or with --from and --to.

Examples:
  orion task event trip /from 2024-05-10 /to 2024-05-12
  orion task event trip --from 2024-05-10 --to 2024-05-12`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if eventFrom != "" {
			args = append(args, "/from", eventFrom)
		}
		if eventTo != "" {
			args = append(args, "/to", eventTo)
		}
		return execute(cmd, "event", args...)
	},
}

func init() {
	deadlineCmd.Flags().StringVar(&deadlineBy, "by", "", "due date (yyyy-mm-dd)")
	eventCmd.Flags().StringVar(&eventFrom, "from", "", "start date (yyyy-mm-dd)")
	eventCmd.Flags().StringVar(&eventTo, "to", "", "end date (yyyy-mm-dd)")
}
