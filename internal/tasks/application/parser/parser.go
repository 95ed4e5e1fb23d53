// Package parser turns a raw input line into a commands.Command.
package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/felixgeelhaar/orion/internal/tasks/application/commands"
	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("parse error")

// ParseError carries a message meant to be shown to the user as-is.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// Is lets errors.Is match ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func fail(msg string) error {
	return &ParseError{Message: "Oops!!! " + msg}
}

// failDate reports an unparseable date for a deadline or event.
func failDate(kind string) error {
	return &ParseError{Message: "Oops!! the date format of " + kind + " is incorrect, please use the format yyyy-mm-dd"}
}

// Command keywords.
const (
	KeywordBye      = "bye"
	KeywordList     = "list"
	KeywordMark     = "mark"
	KeywordUnmark   = "unmark"
	KeywordTodo     = "todo"
	KeywordDeadline = "deadline"
	KeywordEvent    = "event"
	KeywordDelete   = "delete"
	KeywordFind     = "find"
)

// Delimiters match anywhere in the text, including inside words.
var (
	byDelimiter     = regexp.MustCompile(`/by`)
	periodDelimiter = regexp.MustCompile(`/from|/to`)
)

// Parse converts line into a command. It never panics: every input yields a
// command or a *ParseError.
func Parse(line string) (commands.Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return commands.EmptyCommand{}, nil
	}

	keyword, rest := splitKeyword(line)

	switch keyword {
	case KeywordBye:
		return parseBye(rest)
	case KeywordList:
		return parseList(rest)
	case KeywordMark:
		idx, err := parseIndex(rest, "a mark")
		if err != nil {
			return nil, err
		}
		return commands.NewMarkCommand(idx, true), nil
	case KeywordUnmark:
		idx, err := parseIndex(rest, "an unmark")
		if err != nil {
			return nil, err
		}
		return commands.NewMarkCommand(idx, false), nil
	case KeywordDelete:
		idx, err := parseIndex(rest, "a delete")
		if err != nil {
			return nil, err
		}
		return commands.NewDeleteCommand(idx), nil
	case KeywordTodo:
		return parseTodo(rest)
	case KeywordDeadline:
		return parseDeadline(rest)
	case KeywordEvent:
		return parseEvent(rest)
	case KeywordFind:
		return parseFind(rest)
	default:
		return nil, fail("I'm sorry, but I don't know what that means :-(")
	}
}

// splitKeyword splits on the first run of whitespace. line must be trimmed.
func splitKeyword(line string) (string, string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

func parseBye(rest string) (commands.Command, error) {
	if rest != "" {
		return nil, fail("The bye command should not be followed by any description")
	}
	return commands.ExitCommand{}, nil
}

func parseList(rest string) (commands.Command, error) {
	if rest != "" {
		return nil, fail("The list command should not be followed by any description")
	}
	return commands.ListCommand{}, nil
}

// parseIndex accepts exactly one integer token.
func parseIndex(rest, what string) (int, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return 0, fail("Invalid argument of " + what + " command")
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fail("Invalid argument of " + what + " command")
	}
	return idx, nil
}

func parseTodo(rest string) (commands.Command, error) {
	cmd, err := commands.NewTodoCommand(rest)
	if err != nil {
		return nil, fail("The description of a todo task cannot be empty")
	}
	return cmd, nil
}

func parseDeadline(rest string) (commands.Command, error) {
	parts := split(byDelimiter, rest)
	if len(parts) < 2 {
		return nil, fail("You forgot to provide a deadline for the deadline task")
	}

	description := strings.TrimSpace(parts[0])
	by := strings.TrimSpace(parts[1])
	if description == "" {
		return nil, fail("The description of a deadline task cannot be empty")
	}
	if by == "" {
		return nil, fail("You forgot to provide a deadline for the deadline task")
	}

	date, err := task.ParseDate(by)
	if err != nil {
		return nil, failDate("deadline")
	}

	cmd, err := commands.NewDeadlineCommand(description, date)
	if err != nil {
		return nil, fail("The description of a deadline task cannot be empty")
	}
	return cmd, nil
}

func parseEvent(rest string) (commands.Command, error) {
	parts := split(periodDelimiter, rest)
	if len(parts) < 3 {
		return nil, fail("Please provide a proper period for the event task")
	}

	description := strings.TrimSpace(parts[0])
	start := strings.TrimSpace(parts[1])
	end := strings.TrimSpace(parts[2])
	if description == "" {
		return nil, fail("The description of an event task cannot be empty")
	}
	if start == "" || end == "" {
		return nil, fail("Please provide a proper period for the event task")
	}

	from, err := task.ParseDate(start)
	if err != nil {
		return nil, failDate("event")
	}
	to, err := task.ParseDate(end)
	if err != nil {
		return nil, failDate("event")
	}

	cmd, err := commands.NewEventCommand(description, from, to)
	if err != nil {
		if errors.Is(err, task.ErrEventEndBeforeStart) {
			return nil, fail("End date of an event should not be earlier than the start date.")
		}
		return nil, fail("The description of an event task cannot be empty")
	}
	return cmd, nil
}

func parseFind(rest string) (commands.Command, error) {
	cmd, err := commands.NewFindCommand(rest)
	if err != nil {
		return nil, fail("Please provide an input to find")
	}
	return cmd, nil
}

// split splits s around every match of re and drops trailing empty strings,
// so "desc /by" yields one part rather than two.
func split(re *regexp.Regexp, s string) []string {
	parts := re.Split(s, -1)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
