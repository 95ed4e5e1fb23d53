// Package commands defines the parsed command values and the dispatcher that
// executes them against the task list.
package commands

import (
	"errors"
	"strings"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
)

var (
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrEmptyQuery       = errors.New("search text cannot be empty")
)

// Command is one parsed line of input. The set of implementations is closed.
type Command interface {
	// Name is the keyword that produced the command.
	Name() string
	// Mutates reports whether executing the command changes the task list.
	Mutates() bool

	command()
}

type readOnly struct{}

func (readOnly) Mutates() bool { return false }
func (readOnly) command()      {}

type mutating struct{}

func (mutating) Mutates() bool { return true }
func (mutating) command()      {}

// ExitCommand ends the session.
type ExitCommand struct{ readOnly }

func (ExitCommand) Name() string { return "bye" }

// EmptyCommand is a blank line.
type EmptyCommand struct{ readOnly }

func (EmptyCommand) Name() string { return "" }

// ListCommand shows every task.
type ListCommand struct{ readOnly }

func (ListCommand) Name() string { return "list" }

// MarkCommand marks the task at Index as done.
type MarkCommand struct {
	mutating
	Index int
}

func (MarkCommand) Name() string { return "mark" }

// UnmarkCommand marks the task at Index as not done.
type UnmarkCommand struct {
	mutating
	Index int
}

func (UnmarkCommand) Name() string { return "unmark" }

// DeleteCommand removes the task at Index.
type DeleteCommand struct {
	mutating
	Index int
}

func (DeleteCommand) Name() string { return "delete" }

// TodoCommand adds a todo.
type TodoCommand struct {
	mutating
	Description string
}

func (TodoCommand) Name() string { return "todo" }

// DeadlineCommand adds a deadline.
type DeadlineCommand struct {
	mutating
	Description string
	By          task.Date
}

func (DeadlineCommand) Name() string { return "deadline" }

// EventCommand adds an event spanning From..To.
type EventCommand struct {
	mutating
	Description string
	From        task.Date
	To          task.Date
}

func (EventCommand) Name() string { return "event" }

// FindCommand searches descriptions for Query.
type FindCommand struct {
	readOnly
	Query string
}

func (FindCommand) Name() string { return "find" }

// NewMarkCommand builds a MarkCommand (done=true) or UnmarkCommand (done=false).
func NewMarkCommand(index int, done bool) Command {
	if done {
		return MarkCommand{Index: index}
	}
	return UnmarkCommand{Index: index}
}

// NewDeleteCommand builds a DeleteCommand.
func NewDeleteCommand(index int) DeleteCommand {
	return DeleteCommand{Index: index}
}

// NewTodoCommand validates and builds a TodoCommand.
func NewTodoCommand(description string) (TodoCommand, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return TodoCommand{}, ErrEmptyDescription
	}
	return TodoCommand{Description: description}, nil
}

// NewDeadlineCommand validates and builds a DeadlineCommand.
func NewDeadlineCommand(description string, by task.Date) (DeadlineCommand, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return DeadlineCommand{}, ErrEmptyDescription
	}
	return DeadlineCommand{Description: description, By: by}, nil
}

// NewEventCommand validates and builds an EventCommand.
func NewEventCommand(description string, from, to task.Date) (EventCommand, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return EventCommand{}, ErrEmptyDescription
	}
	if to.Before(from) {
		return EventCommand{}, task.ErrEventEndBeforeStart
	}
	return EventCommand{Description: description, From: from, To: to}, nil
}

// NewFindCommand validates and builds a FindCommand.
func NewFindCommand(query string) (FindCommand, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return FindCommand{}, ErrEmptyQuery
	}
	return FindCommand{Query: query}, nil
}
