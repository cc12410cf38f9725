// Package bootstrap runs a linqkit command-line task with a uniform
// lifecycle.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := recipe.Run(ctx, r, source, app.ObserveOptions()...)
//	    return err
//	})
//
// NewApp applies config defaults, validates and initialises the global
// logger. RunTask starts telemetry when the config enables it, runs the
// OnStart hooks, cancels the task on SIGINT or SIGTERM and finally runs the
// OnStop hooks within the graceful timeout.
package bootstrap
