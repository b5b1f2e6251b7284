package cmd

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/jsone/log"
	"github.com/ardnew/jsone/profile"
)

// Init writes a configuration file holding the current global flag values.
type Init struct {
	File  string `default:"${config}" help:"Configuration file to write"             type:"path"`
	Force bool   `                    help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath := i.File

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	buf, err := yaml.Marshal(flagValues(ktx))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err).With(slog.String("file", confPath))
	}

	if err := os.WriteFile(confPath, buf, 0o600); err != nil {
		return ErrWriteConfig.Wrap(err).With(slog.String("file", confPath))
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// flagValues collects the non-zero values of the application's global
// flags, keyed by flag name. Help and profiling flags are omitted.
func flagValues(ktx *kong.Context) map[string]any {
	ignore := []string{"help", profile.Tag}
	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := ktx.FlagValue(flag)
		if val == nil {
			continue
		}

		rv := reflect.ValueOf(val)

		switch rv.Kind() {
		case reflect.String:
			if rv.Len() > 0 {
				values[flag.Name] = rv.String()
			}

		case reflect.Bool:
			values[flag.Name] = rv.Bool()

		case reflect.Slice:
			if rv.Len() > 0 {
				values[flag.Name] = val
			}

		default:
			if !rv.IsZero() {
				values[flag.Name] = val
			}
		}
	}

	return values
}
