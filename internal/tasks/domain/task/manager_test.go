package task_test

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManagerWith(t *testing.T, descriptions ...string) *task.Manager {
	t.Helper()
	m := task.NewManager()
	for _, d := range descriptions {
		todo, err := task.NewTodo(d)
		require.NoError(t, err)
		m.Add(todo)
	}
	return m
}

func descriptions(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Description())
	}
	return out
}

func TestManager_Add(t *testing.T) {
	m := task.NewManager()

	todo, _ := task.NewTodo("read book")
	assert.Equal(t, 1, m.Add(todo))

	deadline, _ := task.NewDeadline("return book", task.MustParseDate("2024-06-01"))
	assert.Equal(t, 2, m.Add(deadline))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"read book", "return book"}, descriptions(m.List()))
}

func TestManager_Mark(t *testing.T) {
	m := newManagerWith(t, "a", "b", "c")

	for i := 1; i <= m.Len(); i++ {
		marked, err := m.Mark(i, true)
		require.NoError(t, err)
		assert.True(t, marked.IsDone())
		assert.True(t, m.List()[i-1].IsDone())

		unmarked, err := m.Mark(i, false)
		require.NoError(t, err)
		assert.False(t, unmarked.IsDone())
		assert.False(t, m.List()[i-1].IsDone())
	}
}

func TestManager_InvalidIndex(t *testing.T) {
	m := newManagerWith(t, "a", "b")

	for _, idx := range []int{0, -1, 3, 100} {
		_, err := m.Mark(idx, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, task.ErrIndexOutOfRange)

		var indexErr *task.IndexError
		require.True(t, errors.As(err, &indexErr))
		assert.Equal(t, idx, indexErr.Index)
		assert.Equal(t, 2, indexErr.Size)

		_, err = m.Delete(idx)
		assert.ErrorIs(t, err, task.ErrIndexOutOfRange)

		_, err = m.Get(idx)
		assert.ErrorIs(t, err, task.ErrIndexOutOfRange)
	}

	assert.Equal(t, 2, m.Len())
	for _, tk := range m.List() {
		assert.False(t, tk.IsDone())
	}
}

func TestManager_InvalidIndex_EmptyList(t *testing.T) {
	m := task.NewManager()

	_, err := m.Delete(1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestManager_Delete(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		removed string
		remain  []string
	}{
		{"first", 1, "a", []string{"b", "c"}},
		{"middle", 2, "b", []string{"a", "c"}},
		{"last", 3, "c", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManagerWith(t, "a", "b", "c")

			removed, err := m.Delete(tt.index)

			require.NoError(t, err)
			assert.Equal(t, tt.removed, removed.Description())
			assert.Equal(t, 2, m.Len())
			assert.Equal(t, tt.remain, descriptions(m.List()))

			// Remaining tasks are renumbered contiguously from 1.
			for i, want := range tt.remain {
				got, err := m.Get(i + 1)
				require.NoError(t, err)
				assert.Equal(t, want, got.Description())
			}
		})
	}
}

func TestManager_Find(t *testing.T) {
	m := newManagerWith(t, "read book", "return Book", "buy milk")

	assert.Equal(t, []string{"read book"}, descriptions(m.Find("book")))
	assert.Equal(t, []string{"return Book"}, descriptions(m.Find("Book")))
	assert.Equal(t, []string{"read book", "return Book"}, descriptions(m.Find("re")))
	assert.Empty(t, m.Find("eggs"))
}

func TestManager_Find_EmptyManager(t *testing.T) {
	m := task.NewManager()

	matches := m.Find("anything")

	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestManager_ListIsACopy(t *testing.T) {
	m := newManagerWith(t, "a")

	list := m.List()
	list[0] = nil

	got, err := m.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Description())
}
