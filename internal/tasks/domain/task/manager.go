package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("task index out of range")

// IndexError reports a 1-based index outside [1, Size].
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("there is no task %d, the list is empty", e.Index)
	}
	return fmt.Sprintf("there is no task %d, pick a number between 1 and %d", e.Index, e.Size)
}

// Is lets errors.Is match ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// Manager owns the ordered task list. Positions are 1-based at the API and
// 0-based in storage; the translation happens only here.
type Manager struct {
	tasks []Task
}

// NewManager creates a manager holding tasks in the given order.
func NewManager(tasks ...Task) *Manager {
	m := &Manager{tasks: make([]Task, 0, len(tasks))}
	m.tasks = append(m.tasks, tasks...)
	return m
}

// Len returns the number of tasks.
func (m *Manager) Len() int {
	return len(m.tasks)
}

// Add appends t and returns the new count.
func (m *Manager) Add(t Task) int {
	m.tasks = append(m.tasks, t)
	return len(m.tasks)
}

// Get returns the task at a 1-based index.
func (m *Manager) Get(index int) (Task, error) {
	if err := m.checkIndex(index); err != nil {
		return nil, err
	}
	return m.tasks[index-1], nil
}

// Mark sets the done state of the task at a 1-based index.
func (m *Manager) Mark(index int, done bool) (Task, error) {
	if err := m.checkIndex(index); err != nil {
		return nil, err
	}
	t := m.tasks[index-1]
	t.Mark(done)
	return t, nil
}

// Delete removes the task at a 1-based index. Later tasks move up by one.
func (m *Manager) Delete(index int) (Task, error) {
	if err := m.checkIndex(index); err != nil {
		return nil, err
	}
	removed := m.tasks[index-1]
	m.tasks = slices.Delete(m.tasks, index-1, index)
	return removed, nil
}

// List returns the tasks in insertion order. The slice is a copy.
func (m *Manager) List() []Task {
	out := make([]Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Find returns tasks whose description contains substring (case-sensitive).
func (m *Manager) Find(substring string) []Task {
	matches := make([]Task, 0)
	for _, t := range m.tasks {
		if strings.Contains(t.Description(), substring) {
			matches = append(matches, t)
		}
	}
	return matches
}

func (m *Manager) checkIndex(index int) error {
	if index < 1 || index > len(m.tasks) {
		return &IndexError{Index: index, Size: len(m.tasks)}
	}
	return nil
}
