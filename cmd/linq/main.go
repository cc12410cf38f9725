// Command linq runs a declarative query recipe over JSON-lines input.
//
//	linq --recipe adults.yaml people.jsonl
//	cat people.jsonl | linq -r adults.yaml --pretty
//
// Configuration is read from config.yml, .env, LINQ_* environment variables
// and flags, in increasing order of precedence.
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/linqkit/bootstrap"
	"github.com/kbukum/linqkit/config"
	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/query"
	"github.com/kbukum/linqkit/recipe"
	"github.com/kbukum/linqkit/version"
)

const toolName = "linq"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// newFlags returns the full flag set and the subset bound into the config.
func newFlags(stderr io.Writer) (*pflag.FlagSet, *pflag.FlagSet) {
	cfgFlags := pflag.NewFlagSet("config", pflag.ContinueOnError)
	cfgFlags.StringP("input", "i", "", `JSON-lines input file, "-" for stdin`)
	cfgFlags.StringP("recipe", "r", "", "recipe file or name")
	cfgFlags.Bool("pretty", false, "indent JSON output")
	cfgFlags.Int("limit", 0, "read at most this many input records")
	cfgFlags.String("log-level", "", "log level (debug, info, warn, error)")
	cfgFlags.String("log-format", "", "log format (json, console, pretty)")
	cfgFlags.Bool("telemetry", false, "export traces and metrics over OTLP")
	cfgFlags.String("otlp-endpoint", "", "OTLP HTTP endpoint host:port")

	fs := pflag.NewFlagSet(toolName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringP("config", "c", "", "config file path")
	fs.String("env-file", "", ".env file path")
	fs.BoolP("version", "v", false, "print version and exit")
	fs.AddFlagSet(cfgFlags)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [input]\n\n", toolName)
		fs.PrintDefaults()
	}
	return fs, cfgFlags
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs, cfgFlags := newFlags(stderr)
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if show, _ := fs.GetBool("version"); show {
		fmt.Fprintln(stdout, toolName, version.GetFullVersion())
		return exitOK
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "at most one input file may be given")
		return exitUsage
	}
	if fs.NArg() == 1 {
		_ = fs.Set("input", fs.Arg(0))
	}

	configFile, _ := fs.GetString("config")
	envFile, _ := fs.GetString("env-file")

	cfg := &config.ToolConfig{}
	err := config.LoadConfig(toolName, cfg,
		config.WithConfigFile(configFile),
		config.WithEnvFile(envFile),
		config.WithFlags(cfgFlags),
	)
	if err != nil {
		printError(stderr, err)
		return exitUsage
	}
	cfg.Logging.Writer = stderr

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		printError(stderr, err)
		return exitUsage
	}

	err = app.RunTask(ctx, func(ctx context.Context) error {
		return execute(ctx, app, stdin, stdout)
	})
	if err != nil {
		printError(stderr, err)
		return exitFailure
	}
	return exitOK
}

func execute(ctx context.Context, app *bootstrap.App[*config.ToolConfig], stdin io.Reader, stdout io.Writer) error {
	qc := app.Cfg.Query

	r, err := recipe.NewFileLoader(".", "recipes").Load(qc.Recipe)
	if err != nil {
		return err
	}

	in, err := openInput(ctx, qc.Input, stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	source := query.From[recipe.Record](in)
	if qc.Limit > 0 {
		source = source.Take(qc.Limit)
	}

	res, err := recipe.Run(ctx, r, source, app.ObserveOptions()...)
	if err != nil {
		return err
	}
	return writeJSON(stdout, res.Value, qc.Pretty)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// printError writes err to w as a JSON error response.
func printError(w io.Writer, err error) {
	qe, ok := errors.AsQueryError(err)
	if !ok {
		qe = errors.New(errors.ErrCodeInternal, err.Error())
	}
	resp := qe.ToResponse()
	resp.Error.Message = err.Error()
	_ = writeJSON(w, resp, false)
}
