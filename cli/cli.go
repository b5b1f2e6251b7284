package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/jsone/cli/cmd"
	"github.com/ardnew/jsone/cli/cmd/repl"
	"github.com/ardnew/jsone/log"
	"github.com/ardnew/jsone/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config.yaml"

// CLI is the top-level command-line interface for jsone.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Eval     cmd.Eval     `cmd:"" default:"withargs" help:"Evaluate expressions"`
	Builtins cmd.Builtins `cmd:""                    help:"List builtin functions"`
	Repl     cmd.Repl     `cmd:""                    help:"Start an interactive session"`
	Init     cmd.Init     `cmd:""                    help:"Write a configuration file holding the current flags"`
	Version  cmd.Version  `cmd:""                    help:"Print version"`
}

// Run executes the jsone CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := pkg.MkdirAll(); err != nil {
		return err
	}

	configFile := pkg.ConfigPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"history":            pkg.CachePath(repl.BaseHistory),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that parse errors are
	// already logged in the requested format.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, configFile+".json"),
		kong.Configuration(resolve, configFile),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// no-op unless built with tag pprof and a mode is selected
	defer cli.Pprof.start(ctx)()

	log.TraceContext(ctx, "run",
		slog.String("command", ktx.Command()),
		slog.String("config", configFile),
	)

	return ktx.Run(ctx)
}
