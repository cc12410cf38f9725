package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/observability"
	"github.com/kbukum/linqkit/version"
)

// App represents a command-line tool with uniform lifecycle management.
// The type parameter C is the config type.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger
	// Metrics is set once telemetry has started; nil when it is disabled.
	Metrics *observability.Metrics

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetToolConfig()
	if base.Version == "" {
		base.Version = version.GetShortVersion()
	}

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 10 * time.Second,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		logger.RegisterDefaults("config", "recipe", "observability")
		app.Logger = logger.GetGlobalLogger().WithComponent(base.Name)
	}

	return app, nil
}

// ObserveOptions returns the options that attach the app's telemetry to an
// observed query.
func (a *App[C]) ObserveOptions() []observability.ObserveOption {
	opts := []observability.ObserveOption{
		observability.WithLogger(logger.Get("observability")),
	}
	if a.Metrics != nil {
		opts = append(opts, observability.WithMetrics(a.Metrics))
	}
	return opts
}

// RunTask executes a finite task with the full lifecycle: telemetry, OnStart
// hooks, the task itself, then OnStop hooks. The task context is canceled
// on SIGINT or SIGTERM.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		// Hooks registered before the failure still need to run.
		_ = a.stop()
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	start := time.Now()
	taskErr := task(taskCtx)
	fields := logger.MergeWithDuration(nil, time.Since(start))
	if taskErr != nil {
		a.Logger.WithError(taskErr).Debug("Task failed", fields)
	} else {
		a.Logger.Debug("Task finished", fields)
	}

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// startup logs the build, starts telemetry and runs the OnStart hooks.
func (a *App[C]) startup(ctx context.Context) error {
	fields := version.GetVersionInfo().Fields()
	fields["name"] = a.Name
	fields["environment"] = a.Cfg.GetToolConfig().Environment
	a.Logger.Debug("Starting", fields)

	if err := a.setupTelemetry(ctx); err != nil {
		return fmt.Errorf("telemetry setup failed: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	return nil
}

// Shutdown runs the OnStop hooks. Use when managing your own lifecycle.
func (a *App[C]) Shutdown() error {
	return a.stop()
}

// stop runs the OnStop hooks within the graceful timeout. Hooks run once.
func (a *App[C]) stop() error {
	hooks := a.onStop
	a.onStop = nil
	if len(hooks) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if err := runStopHooks(ctx, hooks); err != nil {
		a.Logger.Error("OnStop hook error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}
