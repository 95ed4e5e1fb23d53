package persistence

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleManager holds one task of every kind, the middle one done.
func sampleManager(t *testing.T) *task.Manager {
	t.Helper()

	todo, err := task.NewTodo("read book")
	require.NoError(t, err)
	deadline, err := task.NewDeadline("submit report", task.MustParseDate("2024-05-10"))
	require.NoError(t, err)
	deadline.Mark(true)
	event, err := task.NewEvent("trip", task.MustParseDate("2024-05-10"), task.MustParseDate("2024-05-12"))
	require.NoError(t, err)

	return task.NewManager(todo, deadline, event)
}

func assertSameTasks(t *testing.T, want, got *task.Manager) {
	t.Helper()

	require.Equal(t, want.Len(), got.Len())
	for i, w := range want.List() {
		g := got.List()[i]
		assert.Equal(t, w.ID(), g.ID())
		assert.Equal(t, w.Kind(), g.Kind())
		assert.Equal(t, w.Description(), g.Description())
		assert.Equal(t, w.IsDone(), g.IsDone())
		assert.Equal(t, w.String(), g.String())
		assert.WithinDuration(t, w.CreatedAt(), g.CreatedAt(), time.Microsecond)
	}
}
