package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/jsone/builtin"
)

// Builtins lists the builtin functions and their signatures.
type Builtins struct {
	Output string `help:"Output format" default:"text" short:"o" enum:"text,json,yaml"`

	Name []string `arg:"" help:"Builtin name(s) to describe (default all)" name:"name" optional:""`
}

// Run executes the builtins command.
func (b *Builtins) Run(ctx context.Context) error {
	names := b.Name
	if len(names) == 0 {
		names = builtin.Names()
	}

	sigs := make(map[string]any, len(names))

	for _, name := range names {
		fn, ok := builtin.Lookup(name)
		if !ok {
			return ErrUnknownBuiltin.With(
				slog.String("command", "builtins"),
				slog.String("builtin", name),
			)
		}

		sigs[name] = fn.Signature()
	}

	out := outputFrom(ctx)

	if b.Output != OutputText {
		return render(out, b.Output, sigs)
	}

	for _, name := range names {
		if err := render(out, OutputText, sigs[name]); err != nil {
			return err
		}
	}

	return nil
}
