package commands

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
)

func farewellMessage() string {
	return "Bye. Hope to see you again soon!"
}

func addedMessage(t task.Task, count int) string {
	return "Got it. I've added this task:\n  " + t.String() + "\n" + countLine(count)
}

func markedMessage(t task.Task) string {
	return "Nice! I've marked this task as done:\n  " + t.String()
}

func unmarkedMessage(t task.Task) string {
	return "OK, I've marked this task as not done yet:\n  " + t.String()
}

func deletedMessage(t task.Task, count int) string {
	return "Noted. I've removed this task:\n  " + t.String() + "\n" + countLine(count)
}

func listMessage(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "Your task list is empty."
	}
	return "Here are the tasks in your list:\n" + numbered(tasks)
}

func findMessage(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No matching tasks found."
	}
	return "Here are the matching tasks in your list:\n" + numbered(tasks)
}

func countLine(count int) string {
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	return fmt.Sprintf("Now you have %d %s in the list.", count, noun)
}

// numbered renders tasks one per line as "1.[ ] description".
func numbered(tasks []task.Task) string {
	var sb strings.Builder
	for i, t := range tasks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d.%s", i+1, t.String())
	}
	return sb.String()
}
