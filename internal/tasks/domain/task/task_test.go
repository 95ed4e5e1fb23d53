package task_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTodo(t *testing.T) {
	todo, err := task.NewTodo("read book")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, todo.ID())
	assert.Equal(t, task.KindTodo, todo.Kind())
	assert.Equal(t, "read book", todo.Description())
	assert.False(t, todo.IsDone())
	assert.False(t, todo.CreatedAt().IsZero())
}

func TestNewTodo_EmptyDescription(t *testing.T) {
	tests := []string{"", "   ", "\t\n"}
	for _, desc := range tests {
		t.Run(desc, func(t *testing.T) {
			_, err := task.NewTodo(desc)
			require.Error(t, err)
			assert.ErrorIs(t, err, task.ErrEmptyDescription)
		})
	}
}

func TestTask_Render(t *testing.T) {
	by := task.MustParseDate("2024-05-10")
	from := task.MustParseDate("2024-05-10")
	to := task.MustParseDate("2024-05-12")

	todo, err := task.NewTodo("read book")
	require.NoError(t, err)
	deadline, err := task.NewDeadline("submit report", by)
	require.NoError(t, err)
	event, err := task.NewEvent("trip", from, to)
	require.NoError(t, err)

	assert.Equal(t, "[ ] read book", todo.String())
	assert.Equal(t, "[ ] submit report (by: 2024-05-10)", deadline.String())
	assert.Equal(t, "[ ] trip (from: 2024-05-10 to: 2024-05-12)", event.String())

	todo.Mark(true)
	deadline.Mark(true)
	event.Mark(true)

	assert.Equal(t, "[✗] read book", todo.String())
	assert.Equal(t, "[✗] submit report (by: 2024-05-10)", deadline.String())
	assert.Equal(t, "[✗] trip (from: 2024-05-10 to: 2024-05-12)", event.String())
}

func TestTask_MarkIsIdempotent(t *testing.T) {
	todo, _ := task.NewTodo("water plants")

	todo.Mark(true)
	todo.Mark(true)
	assert.True(t, todo.IsDone())

	todo.Mark(false)
	todo.Mark(false)
	assert.False(t, todo.IsDone())
}

func TestTask_SetDescription(t *testing.T) {
	todo, _ := task.NewTodo("Original")

	require.NoError(t, todo.SetDescription("Updated"))
	assert.Equal(t, "Updated", todo.Description())

	err := todo.SetDescription("  ")
	assert.ErrorIs(t, err, task.ErrEmptyDescription)
	assert.Equal(t, "Updated", todo.Description())
}

func TestNewEvent_SameDayIsAllowed(t *testing.T) {
	day := task.MustParseDate("2024-05-10")

	event, err := task.NewEvent("workshop", day, day)

	require.NoError(t, err)
	assert.True(t, event.From().Equal(event.To()))
}

func TestNewEvent_EndBeforeStart(t *testing.T) {
	_, err := task.NewEvent("trip", task.MustParseDate("2024-05-10"), task.MustParseDate("2024-05-05"))

	assert.ErrorIs(t, err, task.ErrEventEndBeforeStart)
}

func TestRehydrate(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	todo := task.RehydrateTodo(id, "read book", true, created)
	assert.Equal(t, id, todo.ID())
	assert.True(t, todo.IsDone())
	assert.Equal(t, created, todo.CreatedAt())

	deadline := task.RehydrateDeadline(id, "file taxes", false, created, task.MustParseDate("2024-04-15"))
	assert.Equal(t, "2024-04-15", deadline.By().String())

	_, err := task.RehydrateEvent(id, "trip", false, created, task.MustParseDate("2024-05-10"), task.MustParseDate("2024-05-01"))
	assert.ErrorIs(t, err, task.ErrEventEndBeforeStart)
}

func TestKind_RoundTrip(t *testing.T) {
	for _, k := range []task.Kind{task.KindTodo, task.KindDeadline, task.KindEvent} {
		parsed, err := task.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := task.ParseKind("Chore")
	assert.Error(t, err)
}
