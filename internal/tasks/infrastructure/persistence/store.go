// Package persistence stores the task list between sessions, either as a JSON
// document or in a SQLite database.
package persistence

import (
	"context"
	"fmt"
	"io"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/felixgeelhaar/orion/pkg/config"
)

// Store saves and loads the whole task list.
type Store interface {
	Save(ctx context.Context, m *task.Manager) error
	Load(ctx context.Context) (*task.Manager, error)
}

// ClosableStore is a Store holding resources that must be released.
type ClosableStore interface {
	Store
	io.Closer
}

// Quarantiner moves unreadable stored data aside so that the next save
// cannot overwrite it. Quarantine returns where the data went.
type Quarantiner interface {
	Quarantine(ctx context.Context) (string, error)
}

var (
	_ ClosableStore = (*JSONStore)(nil)
	_ ClosableStore = (*SQLiteStore)(nil)
	_ Quarantiner   = (*JSONStore)(nil)
	_ Quarantiner   = (*SQLiteStore)(nil)
)

// Open returns the store selected by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (ClosableStore, error) {
	switch cfg.Storage {
	case config.StorageJSON, "":
		return NewJSONStore(cfg.DataDir, cfg.DataFile)
	case config.StorageSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage)
	}
}
