package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/orion/pkg/observability"
	"github.com/spf13/cobra"
)

// skipAppAnnotation marks commands that run without loading any tasks.
const skipAppAnnotation = "orion/skip-app"

var (
	cfgFile  string
	verbose  bool
	dataDir  string
	dataFile string
	logger   *slog.Logger
)

type commandContext struct {
	correlationID string
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orion",
	Short: "Orion - a line-oriented task tracker",
	Long: `Orion keeps a list of todos, deadlines and events.

Run without arguments to start an interactive session, or use the task
subcommands for one-shot changes from scripts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if needsApp(cmd) {
			if err := ensureApp(cmd.Context()); err != nil {
				return err
			}
		}
		if logger == nil {
			logger = slog.Default()
		}

		ctx := observability.WithCorrelationID(cmd.Context(), "")
		info := commandContext{
			correlationID: observability.CorrelationIDFromContext(ctx),
			startedAt:     time.Now(),
		}
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.DebugContext(ctx, "command start", "command", cmd.CommandPath())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.DebugContext(cmd.Context(), "command end",
			"command", cmd.CommandPath(),
			observability.DurationKey, time.Since(info.startedAt).Milliseconds(),
		)
	},
	RunE: runChat,
}

// Options carries the global flags to the bootstrapper.
type Options struct {
	ConfigFile string
	Verbose    bool
	DataDir    string
	DataFile   string
}

// Bootstrapper builds the application once flags are parsed.
type Bootstrapper func(ctx context.Context, opts Options) (*App, error)

var bootstrap Bootstrapper

// SetBootstrapper sets the function used to build the application.
func SetBootstrapper(b Bootstrapper) {
	bootstrap = b
}

// needsApp reports whether cmd works on the task list. Help and shell
// completion never do.
func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipAppAnnotation] != "" {
			return false
		}
		switch c.Name() {
		case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
			return false
		}
	}
	return true
}

func ensureApp(ctx context.Context) error {
	if app != nil {
		return nil
	}
	if bootstrap == nil {
		return errors.New("application not initialized")
	}
	a, err := bootstrap(ctx, Options{
		ConfigFile: cfgFile,
		Verbose:    verbose,
		DataDir:    dataDir,
		DataFile:   dataFile,
	})
	if err != nil {
		return err
	}
	SetApp(a)
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// RootCommand returns the root command.
func RootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the task file")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "", "task file name")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}
