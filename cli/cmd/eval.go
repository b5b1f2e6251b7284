package cmd

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/jsone/eval"
	"github.com/ardnew/jsone/log"
)

// Eval evaluates expressions against the builtins and the given context.
type Eval struct {
	Context []string `help:"YAML or JSON file of context bindings, or '-' for stdin" placeholder:"FILE" short:"c"`
	Output  string   `help:"Output format"                                           default:"text"     short:"o" enum:"text,json,yaml"`
	Now     string   `help:"RFC 3339 timestamp bound to 'now' (default current time)" placeholder:"TIME"`

	Expr []string `arg:"" help:"Expression(s) to evaluate" name:"expr"`
}

// Run executes the eval command.
//
// Expressions are evaluated concurrently and their results written in
// argument order. The first failure cancels the remaining evaluations.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	vars, err := loadContext(ctx, e.Context)
	if err != nil {
		return err
	}

	opts := []eval.Option{eval.WithLogger(log.Default())}

	if e.Now != "" {
		now, err := time.Parse(time.RFC3339Nano, e.Now)
		if err != nil {
			return ErrEvaluate.Wrap(err).
				With(slog.String("command", "eval"), slog.String("now", e.Now))
		}

		opts = append(opts, eval.WithNow(now))
	}

	results := make([]any, len(e.Expr))

	group, gctx := errgroup.WithContext(ctx)

	for i, source := range e.Expr {
		group.Go(func() error {
			res, err := eval.Evaluate(gctx, source, vars, opts...)
			if err != nil {
				return ErrEvaluate.Wrap(err).
					With(slog.String("command", "eval"), slog.String("expr", source))
			}

			results[i] = res

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	out := outputFrom(ctx)

	for _, res := range results {
		if err := render(out, e.Output, res); err != nil {
			return err
		}
	}

	log.DebugContext(ctx, "evaluated",
		slog.Int("expressions", len(e.Expr)),
		slog.Int("bindings", len(vars)),
	)

	return nil
}
