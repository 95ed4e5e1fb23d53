package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/felixgeelhaar/orion/internal/tasks/application/commands"
	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/felixgeelhaar/orion/pkg/observability"
	"github.com/stretchr/testify/require"
)

// newTestApp returns an in-memory application and installs it globally.
func newTestApp(t *testing.T, tasks ...task.Task) *App {
	t.Helper()

	d := commands.NewDispatcher(task.NewManager(tasks...), nil,
		commands.WithLogger(observability.DiscardLogger()))
	a := NewApp(d, nil)
	SetApp(a)
	t.Cleanup(func() { SetApp(nil) })
	return a
}

// executeRoot runs the root command with args and stdin, returning stdout.
func executeRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile, verbose, dataDir, dataFile = "", false, "", ""
	exportFormat, exportOutput = "ics", ""
	SetLogger(observability.DiscardLogger())

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustTodo(t *testing.T, description string) *task.Todo {
	t.Helper()
	todo, err := task.NewTodo(description)
	require.NoError(t, err)
	return todo
}
