package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/linqkit/config"
	"github.com/kbukum/linqkit/logger"
)

// testConfig embeds ToolConfig the way a tool with extra settings would.
type testConfig struct {
	config.ToolConfig
}

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ToolConfig: config.ToolConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
			Query:       config.QueryConfig{Recipe: "recipe.yaml"},
		},
	}
}

func newBufferLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.New(&logger.Config{Level: "debug", Format: "json", Writer: &buf}, "test"), &buf
}

func TestNewApp(t *testing.T) {
	cfg := newTestConfig("test-tool", "1.0.0")
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "test-tool" {
		t.Errorf("expected name 'test-tool', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Logger == nil {
		t.Error("expected non-nil logger")
	}
	if app.Metrics != nil {
		t.Error("expected no metrics before telemetry starts")
	}
	// Config is typed and defaulted
	if app.Cfg.Query.Input != "-" {
		t.Errorf("expected default input '-', got %q", app.Cfg.Query.Input)
	}
}

func TestNewApp_DefaultsVersion(t *testing.T) {
	app, err := NewApp(newTestConfig("test", ""), WithLogger(logger.NewDefault("test")))
	if err != nil {
		t.Fatal(err)
	}
	if app.Version == "" {
		t.Error("expected a version from build info")
	}
}

func TestNewAppValidation(t *testing.T) {
	cfg := newTestConfig("test", "1.0")
	cfg.Query.Recipe = ""
	if _, err := NewApp(cfg); err == nil {
		t.Error("expected error for missing recipe")
	}
}

func TestNewAppWithOptions(t *testing.T) {
	l, _ := newBufferLogger()
	app, err := NewApp(newTestConfig("test", "1.0"),
		WithGracefulTimeout(30*time.Second),
		WithLogger(l),
	)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.gracefulTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", app.gracefulTimeout)
	}
	if app.Logger != l {
		t.Error("expected custom logger")
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	l, buf := newBufferLogger()
	app, _ := NewApp(newTestConfig("test", "1.0"), WithLogger(l))

	var order []string
	app.OnStart(func(ctx context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnStop(
		func(ctx context.Context) error { order = append(order, "stop-1"); return nil },
		func(ctx context.Context) error { order = append(order, "stop-2"); return nil },
	)

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := "start,task,stop-2,stop-1"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if !strings.Contains(buf.String(), "Task finished") {
		t.Errorf("expected a task log line, got %q", buf.String())
	}

	// Stop hooks run once.
	if err := app.Shutdown(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(order) != 4 {
		t.Errorf("expected hooks not to run again, got %v", order)
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	l, _ := newBufferLogger()
	app, _ := NewApp(newTestConfig("test", "1.0"), WithLogger(l))
	taskErr := errors.New("task failed")
	app.OnStop(func(ctx context.Context) error { return errors.New("stop failed") })

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return taskErr })
	if !errors.Is(err, taskErr) {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTask_StopError(t *testing.T) {
	l, _ := newBufferLogger()
	app, _ := NewApp(newTestConfig("test", "1.0"), WithLogger(l))
	stopErr := errors.New("stop failed")
	ran := false
	app.OnStop(
		func(ctx context.Context) error { ran = true; return nil },
		func(ctx context.Context) error { return stopErr },
	)

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if !errors.Is(err, stopErr) {
		t.Errorf("expected stop error, got %v", err)
	}
	if !ran {
		t.Error("expected the remaining stop hook to run")
	}
}

func TestRunTask_StartFailureSkipsTask(t *testing.T) {
	l, _ := newBufferLogger()
	app, _ := NewApp(newTestConfig("test", "1.0"), WithLogger(l))
	app.OnStart(func(ctx context.Context) error { return errors.New("boom") })
	stopped := false
	app.OnStop(func(ctx context.Context) error { stopped = true; return nil })

	called := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Errorf("expected onStart failure, got %v", err)
	}
	if called {
		t.Error("task must not run when startup fails")
	}
	if !stopped {
		t.Error("expected stop hooks to run after a failed startup")
	}
}

func TestRunTask_ContextCancel(t *testing.T) {
	l, _ := newBufferLogger()
	app, _ := NewApp(newTestConfig("test", "1.0"), WithLogger(l))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := app.RunTask(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestObserveOptions(t *testing.T) {
	l, _ := newBufferLogger()
	app, _ := NewApp(newTestConfig("test", "1.0"), WithLogger(l))
	if got := len(app.ObserveOptions()); got != 1 {
		t.Errorf("expected only the logger option without telemetry, got %d", got)
	}
}
