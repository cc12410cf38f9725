package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback that runs during startup or shutdown.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run after telemetry is set up and before
// the task starts.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnStop registers hooks that run after the task returns. They run in
// reverse registration order so later setup is torn down first.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks executes hooks sequentially, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}

// runStopHooks executes every hook in reverse order and returns the first
// error; a failing hook does not prevent the others from running.
func runStopHooks(ctx context.Context, hooks []Hook) error {
	var first error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil && first == nil {
			first = fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return first
}
