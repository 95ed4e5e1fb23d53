package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_DeleteReleasesRemovedTask(t *testing.T) {
	var tasks []Task
	for _, d := range []string{"a", "b", "c"} {
		todo, err := NewTodo(d)
		require.NoError(t, err)
		tasks = append(tasks, todo)
	}
	m := NewManager(tasks...)

	_, err := m.Delete(1)
	require.NoError(t, err)

	// The vacated slot past the new length must not keep a task reachable.
	tail := m.tasks[:len(m.tasks)+1]
	assert.Nil(t, tail[len(m.tasks)])
}
