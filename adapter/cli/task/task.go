// Package task provides one-shot task commands. Each builds the same line
// the interactive session accepts, so parsing, validation and persistence
// behave identically.
package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/orion/adapter/cli"
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Add, list, find, mark and delete tasks without starting a session.`,

	SilenceUsage: true,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(findCmd)
	Cmd.AddCommand(todoCmd)
	Cmd.AddCommand(deadlineCmd)
	Cmd.AddCommand(eventCmd)
	Cmd.AddCommand(markCmd)
	Cmd.AddCommand(unmarkCmd)
	Cmd.AddCommand(deleteCmd)
}

// execute runs keyword followed by args and prints the response.
func execute(cmd *cobra.Command, keyword string, args ...string) error {
	app := cli.GetApp()
	if app == nil {
		return fmt.Errorf("application not initialized")
	}

	if notice := app.TakeNotice(); notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
	}

	line := strings.TrimSpace(keyword + " " + strings.Join(args, " "))
	res, err := app.Run(cmd.Context(), line)
	if err != nil {
		return fmt.Errorf("%s", cli.UserMessage(err))
	}
	if res.SaveErr != nil {
		return fmt.Errorf("failed to save tasks: %w", res.SaveErr)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Output)
	return nil
}
