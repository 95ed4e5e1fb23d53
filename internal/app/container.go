// Package app wires orion's components together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/orion/internal/tasks/application/commands"
	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/felixgeelhaar/orion/internal/tasks/infrastructure/persistence"
	"github.com/felixgeelhaar/orion/pkg/config"
	"github.com/felixgeelhaar/orion/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics

	Store      persistence.ClosableStore
	Tasks      *task.Manager
	Dispatcher *commands.Dispatcher

	// Recovered is set when stored data was unreadable and the session
	// started from an empty list. QuarantinedTo names where the unreadable
	// data was moved.
	Recovered     bool
	QuarantinedTo string

	session *observability.Timer
}

// MetricSession times a whole session, from load to Close.
const MetricSession = "orion.session"

// NewContainer opens the configured store and loads the task list. Failing to
// open the store is fatal. Corrupt stored data is moved aside and the session
// starts from an empty list; if it cannot be moved, startup fails.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = observability.DiscardLogger()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		session: observability.StartTimer(MetricSession),
	}

	store, err := persistence.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage, err)
	}
	c.Store = store

	log := observability.LogOperation(logger, "load",
		"storage", cfg.Storage,
		"path", cfg.StoragePath(),
	)
	log.Debug("store opened")

	tasks, err := store.Load(ctx)
	switch {
	case err == nil:
		log.Debug("tasks loaded", "tasks", tasks.Len())
	case errors.Is(err, persistence.ErrCorruptData):
		dest, qerr := quarantine(ctx, store)
		if qerr != nil {
			store.Close()
			return nil, fmt.Errorf("stored tasks are unreadable and could not be moved aside: %w", errors.Join(err, qerr))
		}
		log.Warn("stored tasks are unreadable, starting with an empty list",
			"moved_to", dest,
			observability.ErrorKey, err,
		)
		tasks = task.NewManager()
		c.Recovered = true
		c.QuarantinedTo = dest
	default:
		store.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	c.Tasks = tasks

	c.Dispatcher = commands.NewDispatcher(tasks, store,
		commands.WithLogger(logger),
		commands.WithMetrics(c.Metrics),
	)
	return c, nil
}

func quarantine(ctx context.Context, store persistence.Store) (string, error) {
	q, ok := store.(persistence.Quarantiner)
	if !ok {
		return "", errors.New("store cannot move data aside")
	}
	return q.Quarantine(ctx)
}

// Close records the session metrics, logs a summary at debug level and
// releases the store.
func (c *Container) Close() {
	if c.session != nil {
		c.session.WithMetrics(c.Metrics).Stop()
		c.Logger.Debug("session metrics", "counters", c.Metrics.Counters())
		c.session = nil
	}
	if c.Store == nil {
		return
	}
	if err := c.Store.Close(); err != nil {
		c.Logger.Warn("error closing store", observability.ErrorKey, err)
	}
}
