package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/orion/adapter/cli"
	"github.com/felixgeelhaar/orion/adapter/cli/task"
	"github.com/felixgeelhaar/orion/internal/app"
	"github.com/felixgeelhaar/orion/pkg/config"
	"github.com/felixgeelhaar/orion/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.SetLogger(observability.NewLogger(observability.DefaultLogConfig()))
	cli.SetBootstrapper(bootstrap)
	cli.AddCommand(task.Cmd)

	err := cli.Execute(ctx)
	if a := cli.GetApp(); a != nil {
		a.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration, applies flag overrides and builds the
// application container.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.App, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.DataFile != "" {
		cfg.DataFile = opts.DataFile
	}
	if opts.Verbose {
		cfg.LogLevel = string(observability.LogLevelDebug)
	}

	logger := newLogger(cfg)
	cli.SetLogger(logger)
	slog.SetDefault(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	a := cli.NewApp(container.Dispatcher, container.Close)
	if container.Recovered {
		a.Notice = recoveredNotice(container.QuarantinedTo)
	}
	return a, nil
}

func recoveredNotice(movedTo string) string {
	return fmt.Sprintf("Oops!!! Your saved tasks could not be read, so they were moved to %s.\n"+
		"Starting with an empty list.", movedTo)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(logConfig(cfg))
}

// logConfig maps application config onto the logger. Development adds source
// locations; production always logs JSON.
func logConfig(cfg *config.Config) observability.LogConfig {
	logCfg := observability.DefaultLogConfig()
	if level, ok := observability.ParseLogLevel(cfg.LogLevel); ok {
		logCfg.Level = level
	}
	if cfg.LogFormat == string(observability.LogFormatJSON) || cfg.IsProduction() {
		logCfg.Format = observability.LogFormatJSON
	}
	if cfg.IsDevelopment() {
		logCfg.AddSource = true
	}
	logCfg.ServiceVersion = cli.Version
	return logCfg
}
