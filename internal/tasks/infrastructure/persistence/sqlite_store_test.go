package persistence

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "orion.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupSQLiteStore(t)

	want := sampleManager(t)
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertSameTasks(t, want, got)
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	m, err := setupSQLiteStore(t).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestSQLiteStore_SaveReplacesRows(t *testing.T) {
	ctx := context.Background()
	store := setupSQLiteStore(t)

	m := sampleManager(t)
	require.NoError(t, store.Save(ctx, m))

	_, err := m.Delete(1)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, m))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertSameTasks(t, m, got)

	var count int
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSQLiteStore_ReopenKeepsTasks(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orion.db")

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	want := sampleManager(t)
	require.NoError(t, store.Save(ctx, want))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assertSameTasks(t, want, got)
}

func TestSQLiteStore_LoadCorruptRow(t *testing.T) {
	ctx := context.Background()
	store := setupSQLiteStore(t)

	_, err := store.DB().ExecContext(ctx, `
		INSERT INTO tasks (id, position, type, description, done, by_date, created_at)
		VALUES ('6f1c1f0e-8d55-4a39-9a43-3c6a5d1e2f11', 0, 'Deadline', 'x', 0, 'someday', '2024-05-10T00:00:00Z')`)
	require.NoError(t, err)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestSQLiteStore_SaveRollsBackOnCanceledContext(t *testing.T) {
	ctx := context.Background()
	store := setupSQLiteStore(t)
	want := sampleManager(t)
	require.NoError(t, store.Save(ctx, want))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, store.Save(canceled, task.NewManager()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertSameTasks(t, want, got)
}

func TestSQLiteStore_Quarantine(t *testing.T) {
	ctx := context.Background()
	store := setupSQLiteStore(t)

	_, err := store.DB().ExecContext(ctx, `
		INSERT INTO tasks (id, position, type, description, done, by_date, created_at)
		VALUES ('6f1c1f0e-8d55-4a39-9a43-3c6a5d1e2f11', 0, 'Deadline', 'x', 0, 'someday', '2024-05-10T00:00:00Z')`)
	require.NoError(t, err)
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, ErrCorruptData)

	dest, err := store.Quarantine(ctx)
	require.NoError(t, err)
	require.Contains(t, dest, "#tasks_corrupt_")
	table := dest[strings.LastIndex(dest, "#")+1:]

	var kept int
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&kept))
	assert.Equal(t, 1, kept)

	m, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	want := sampleManager(t)
	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertSameTasks(t, want, got)

	var indexTable string
	require.NoError(t, store.DB().QueryRowContext(ctx,
		`SELECT tbl_name FROM sqlite_master WHERE type = 'index' AND name = 'idx_tasks_position'`).Scan(&indexTable))
	assert.Equal(t, "tasks", indexTable)
}
