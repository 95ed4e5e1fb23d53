package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/felixgeelhaar/orion/pkg/observability"
)

// Metric names recorded by the dispatcher.
const (
	MetricCommands        = "orion.commands"
	MetricPersistFailures = "orion.persist.failures"
	MetricPersistSave     = "orion.persist.save"
)

// Saver persists the whole task list.
type Saver interface {
	Save(ctx context.Context, m *task.Manager) error
}

// Result is the outcome of executing one command.
type Result struct {
	// Output is the user-facing response. Empty for EmptyCommand.
	Output string
	// Exit is set when the session should end.
	Exit bool
	// Saved reports whether a save was attempted and succeeded.
	Saved bool
	// SaveErr holds a save failure. The in-memory change is kept regardless.
	SaveErr error
}

// Dispatcher executes commands against a task list and persists after every
// successful mutation.
type Dispatcher struct {
	tasks   *task.Manager
	store   Saver
	logger  *slog.Logger
	metrics observability.Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(metrics observability.Metrics) Option {
	return func(d *Dispatcher) {
		if metrics != nil {
			d.metrics = metrics
		}
	}
}

// NewDispatcher creates a Dispatcher over tasks, saving through store.
func NewDispatcher(tasks *task.Manager, store Saver, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		tasks:   tasks,
		store:   store,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tasks returns the task list the dispatcher operates on.
func (d *Dispatcher) Tasks() *task.Manager {
	return d.tasks
}

// Execute runs cmd. Domain failures (such as *task.IndexError) are returned as
// errors and leave the task list unchanged. Save failures are not returned;
// they are logged and reported in Result.SaveErr.
func (d *Dispatcher) Execute(ctx context.Context, cmd Command) (*Result, error) {
	if _, ok := cmd.(EmptyCommand); !ok {
		d.metrics.Counter(MetricCommands, 1, observability.T("command", cmd.Name()))
	}

	switch c := cmd.(type) {
	case ExitCommand:
		return &Result{Output: farewellMessage(), Exit: true}, nil

	case EmptyCommand:
		return &Result{}, nil

	case ListCommand:
		return &Result{Output: listMessage(d.tasks.List())}, nil

	case FindCommand:
		return &Result{Output: findMessage(d.tasks.Find(c.Query))}, nil

	case MarkCommand:
		t, err := d.tasks.Mark(c.Index, true)
		if err != nil {
			return nil, err
		}
		return d.persist(ctx, cmd, markedMessage(t))

	case UnmarkCommand:
		t, err := d.tasks.Mark(c.Index, false)
		if err != nil {
			return nil, err
		}
		return d.persist(ctx, cmd, unmarkedMessage(t))

	case DeleteCommand:
		t, err := d.tasks.Delete(c.Index)
		if err != nil {
			return nil, err
		}
		return d.persist(ctx, cmd, deletedMessage(t, d.tasks.Len()))

	case TodoCommand:
		t, err := task.NewTodo(c.Description)
		if err != nil {
			return nil, err
		}
		return d.add(ctx, cmd, t)

	case DeadlineCommand:
		t, err := task.NewDeadline(c.Description, c.By)
		if err != nil {
			return nil, err
		}
		return d.add(ctx, cmd, t)

	case EventCommand:
		t, err := task.NewEvent(c.Description, c.From, c.To)
		if err != nil {
			return nil, err
		}
		return d.add(ctx, cmd, t)

	default:
		return nil, fmt.Errorf("unsupported command %T", cmd)
	}
}

func (d *Dispatcher) add(ctx context.Context, cmd Command, t task.Task) (*Result, error) {
	count := d.tasks.Add(t)
	return d.persist(ctx, cmd, addedMessage(t, count))
}

func (d *Dispatcher) persist(ctx context.Context, cmd Command, output string) (*Result, error) {
	result := &Result{Output: output}
	if d.store == nil {
		return result, nil
	}

	timer := observability.StartTimer(MetricPersistSave).
		WithLogger(d.logger).
		WithMetrics(d.metrics).
		WithTags(observability.T("command", cmd.Name()))
	err := d.store.Save(ctx, d.tasks)
	timer.StopWithError(err)

	if err != nil {
		d.metrics.Counter(MetricPersistFailures, 1)
		d.logger.ErrorContext(ctx, "failed to save tasks, in-memory list kept",
			"command", cmd.Name(),
			"tasks", d.tasks.Len(),
			observability.ErrorKey, err,
		)
		result.SaveErr = err
		return result, nil
	}

	result.Saved = true
	return result, nil
}
