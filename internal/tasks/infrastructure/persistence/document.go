package persistence

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// SchemaVersion is the version written to every document.
const SchemaVersion = 1

// Document is the stored and exported form of a task list.
type Document struct {
	SchemaVersion int      `json:"schema_version" yaml:"schema_version"`
	Tasks         []Record `json:"tasks" yaml:"tasks"`
}

// Record is one task in a Document. Date fields use the YYYY-MM-DD form.
type Record struct {
	Type        string    `json:"type" yaml:"type"`
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	Description string    `json:"description" yaml:"description"`
	Done        bool      `json:"done" yaml:"done"`
	By          string    `json:"by,omitempty" yaml:"by,omitempty"`
	From        string    `json:"from,omitempty" yaml:"from,omitempty"`
	To          string    `json:"to,omitempty" yaml:"to,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}

// NewDocument snapshots the tasks of m in order.
func NewDocument(m *task.Manager) Document {
	tasks := m.List()
	doc := Document{SchemaVersion: SchemaVersion, Tasks: make([]Record, 0, len(tasks))}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, NewRecord(t))
	}
	return doc
}

// Manager rebuilds a task list from the document.
func (d Document) Manager() (*task.Manager, error) {
	tasks := make([]task.Task, 0, len(d.Tasks))
	for i, r := range d.Tasks {
		t, err := r.Task()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return task.NewManager(tasks...), nil
}

// NewRecord converts a task into its stored form.
func NewRecord(t task.Task) Record {
	r := Record{
		Type:        t.Kind().String(),
		ID:          t.ID().String(),
		Description: t.Description(),
		Done:        t.IsDone(),
		CreatedAt:   t.CreatedAt().UTC(),
	}
	switch v := t.(type) {
	case *task.Deadline:
		r.By = v.By().String()
	case *task.Event:
		r.From = v.From().String()
		r.To = v.To().String()
	}
	return r
}

// Task converts the record back into a task. A missing id or creation time
// is filled in.
func (r Record) Task() (task.Task, error) {
	kind, err := task.ParseKind(r.Type)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	if r.ID != "" {
		if id, err = uuid.Parse(r.ID); err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", r.ID, err)
		}
	}

	description := strings.TrimSpace(r.Description)
	if description == "" {
		return nil, task.ErrEmptyDescription
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	switch kind {
	case task.KindDeadline:
		by, err := task.ParseDate(r.By)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline date: %w", err)
		}
		return task.RehydrateDeadline(id, description, r.Done, createdAt, by), nil
	case task.KindEvent:
		from, err := task.ParseDate(r.From)
		if err != nil {
			return nil, fmt.Errorf("invalid event start: %w", err)
		}
		to, err := task.ParseDate(r.To)
		if err != nil {
			return nil, fmt.Errorf("invalid event end: %w", err)
		}
		return task.RehydrateEvent(id, description, r.Done, createdAt, from, to)
	default:
		return task.RehydrateTodo(id, description, r.Done, createdAt), nil
	}
}
