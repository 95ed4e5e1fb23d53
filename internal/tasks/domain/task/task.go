// Package task holds the task variants and the ordered task list that owns them.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyDescription    = errors.New("task description cannot be empty")
	ErrEventEndBeforeStart = errors.New("event end date is earlier than its start date")
)

// doneMark is shown between the brackets of a completed task.
const doneMark = "✗"

// Kind identifies a task variant.
type Kind int

const (
	KindTodo Kind = iota
	KindDeadline
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "Todo"
	case KindDeadline:
		return "Deadline"
	case KindEvent:
		return "Event"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Todo":
		return KindTodo, nil
	case "Deadline":
		return KindDeadline, nil
	case "Event":
		return KindEvent, nil
	default:
		return 0, errors.New("unknown task kind: " + s)
	}
}

// Task is the capability set shared by Todo, Deadline and Event. The set of
// implementations is closed; callers switch on the concrete type.
type Task interface {
	ID() uuid.UUID
	Kind() Kind
	Description() string
	SetDescription(description string) error
	IsDone() bool
	Mark(done bool)
	CreatedAt() time.Time
	String() string

	sealed()
}

// base carries the fields every variant has.
type base struct {
	id          uuid.UUID
	description string
	done        bool
	createdAt   time.Time
}

func newBase(description string) (base, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return base{}, ErrEmptyDescription
	}
	return base{
		id:          uuid.New(),
		description: description,
		createdAt:   time.Now().UTC(),
	}, nil
}

func rehydrateBase(id uuid.UUID, description string, done bool, createdAt time.Time) base {
	return base{
		id:          id,
		description: description,
		done:        done,
		createdAt:   createdAt,
	}
}

func (b *base) ID() uuid.UUID        { return b.id }
func (b *base) Description() string  { return b.description }
func (b *base) IsDone() bool         { return b.done }
func (b *base) CreatedAt() time.Time { return b.createdAt }

// Mark sets the completion status. Marking twice is a no-op.
func (b *base) Mark(done bool) {
	b.done = done
}

// SetDescription replaces the description.
func (b *base) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}
	b.description = description
	return nil
}

func (b *base) render() string {
	mark := " "
	if b.done {
		mark = doneMark
	}
	return "[" + mark + "] " + b.description
}

func (*base) sealed() {}

// Todo is a task with no date attached.
type Todo struct {
	base
}

// NewTodo creates a pending todo.
func NewTodo(description string) (*Todo, error) {
	b, err := newBase(description)
	if err != nil {
		return nil, err
	}
	return &Todo{base: b}, nil
}

// RehydrateTodo recreates a todo from persisted state.
func RehydrateTodo(id uuid.UUID, description string, done bool, createdAt time.Time) *Todo {
	return &Todo{base: rehydrateBase(id, description, done, createdAt)}
}

func (t *Todo) Kind() Kind      { return KindTodo }
func (t *Todo) String() string { return t.render() }

// Deadline is a task due by a date.
type Deadline struct {
	base
	by Date
}

// NewDeadline creates a pending deadline due on by.
func NewDeadline(description string, by Date) (*Deadline, error) {
	b, err := newBase(description)
	if err != nil {
		return nil, err
	}
	return &Deadline{base: b, by: by}, nil
}

// RehydrateDeadline recreates a deadline from persisted state.
func RehydrateDeadline(id uuid.UUID, description string, done bool, createdAt time.Time, by Date) *Deadline {
	return &Deadline{base: rehydrateBase(id, description, done, createdAt), by: by}
}

func (d *Deadline) Kind() Kind { return KindDeadline }
func (d *Deadline) By() Date   { return d.by }

func (d *Deadline) String() string {
	return d.render() + " (by: " + d.by.String() + ")"
}

// Event is a task spanning an inclusive date range.
type Event struct {
	base
	from Date
	to   Date
}

// NewEvent creates a pending event. to must not be earlier than from.
func NewEvent(description string, from, to Date) (*Event, error) {
	if to.Before(from) {
		return nil, ErrEventEndBeforeStart
	}
	b, err := newBase(description)
	if err != nil {
		return nil, err
	}
	return &Event{base: b, from: from, to: to}, nil
}

// RehydrateEvent recreates an event from persisted state.
func RehydrateEvent(id uuid.UUID, description string, done bool, createdAt time.Time, from, to Date) (*Event, error) {
	if to.Before(from) {
		return nil, ErrEventEndBeforeStart
	}
	return &Event{base: rehydrateBase(id, description, done, createdAt), from: from, to: to}, nil
}

func (e *Event) Kind() Kind { return KindEvent }
func (e *Event) From() Date { return e.from }
func (e *Event) To() Date   { return e.to }

func (e *Event) String() string {
	return e.render() + " (from: " + e.from.String() + " to: " + e.to.String() + ")"
}
