package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/orion/internal/tasks/application/commands"
	"github.com/felixgeelhaar/orion/internal/tasks/application/parser"
	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/felixgeelhaar/orion/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	Dispatcher *commands.Dispatcher
	// Notice, if set, is shown once before any command output.
	Notice  string
	closeFn func()
}

// NewApp creates a new CLI application. closeFn, if set, runs on Close.
func NewApp(dispatcher *commands.Dispatcher, closeFn func()) *App {
	return &App{Dispatcher: dispatcher, closeFn: closeFn}
}

// Tasks returns the live task list.
func (a *App) Tasks() *task.Manager {
	return a.Dispatcher.Tasks()
}

// Run parses line and executes it. Logs written while executing carry the
// command keyword as their operation.
func (a *App) Run(ctx context.Context, line string) (*commands.Result, error) {
	cmd, err := parser.Parse(line)
	if err != nil {
		return nil, err
	}
	ctx = observability.WithOperation(ctx, cmd.Name())
	return a.Dispatcher.Execute(ctx, cmd)
}

// TakeNotice returns the pending notice and clears it.
func (a *App) TakeNotice() string {
	n := a.Notice
	a.Notice = ""
	return n
}

// Close releases application resources.
func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// UserMessage renders err the way it is shown to the user.
func UserMessage(err error) string {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Message
	}
	return fmt.Sprintf("Oops!!! %v", err)
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
