// Package eval evaluates expressions against the builtin registry using
// expr-lang as the host expression engine.
//
// The builtin catalog is merged with the caller's bindings (caller bindings
// win), every builtin is bound to a [builtin.Context] holding the merged
// bindings, and the result is handed to expr-lang. Builtins replace any
// expr-lang builtin of the same name, so max, len, split and friends follow
// json-e semantics.
package eval

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/expr-lang/expr"

	"github.com/ardnew/jsone/builtin"
	"github.com/ardnew/jsone/fromnow"
	"github.com/ardnew/jsone/log"
)

// nullKey names the null literal in expressions.
const nullKey = "null"

// Option configures an evaluation.
type Option func(*options)

type options struct {
	logger log.Logger
	now    func() time.Time
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNow fixes the timestamp bound to "now" when the bindings lack one.
func WithNow(now time.Time) Option {
	return func(o *options) {
		o.now = func() time.Time { return now }
	}
}

func makeOptions(opts ...Option) options {
	o := options{now: time.Now}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Context returns the builtin context for vars: the catalog merged with vars,
// plus a "now" binding when vars has none.
func Context(vars map[string]any, opts ...Option) *builtin.Context {
	o := makeOptions(opts...)

	return builtin.NewContext(bindings(vars, o))
}

func bindings(vars map[string]any, o options) map[string]any {
	merged := builtin.Merge(vars)

	if _, ok := merged[builtin.NowKey]; !ok {
		merged[builtin.NowKey] = o.now().UTC().Format(fromnow.Layout)
	}

	return merged
}

// Evaluate compiles and runs source with the catalog merged with vars.
func Evaluate(
	ctx context.Context,
	source string,
	vars map[string]any,
	opts ...Option,
) (any, error) {
	o := makeOptions(opts...)
	merged := bindings(vars, o)
	bctx := builtin.NewContext(merged)

	var (
		env     = make(map[string]any, len(merged))
		fns     []expr.Option
		callErr error
	)

	for _, name := range slices.Sorted(maps.Keys(merged)) {
		b, ok := merged[name].(*builtin.Builtin)
		if !ok {
			env[name] = merged[name]

			continue
		}

		fns = append(fns,
			expr.DisableBuiltin(name),
			expr.Function(name, func(args ...any) (any, error) {
				res, err := b.Call(bctx, args...)
				if err != nil {
					callErr = err
				}

				return res, err
			}),
		)
	}

	// expr-lang spells the null literal nil
	if _, ok := env[nullKey]; !ok {
		env[nullKey] = nil
	}

	o.logger.TraceContext(ctx, "eval compile",
		slog.String("source", source),
		slog.Int("bindings", len(env)),
	)

	program, err := expr.Compile(source, append([]expr.Option{expr.Env(env)}, fns...)...)
	if err != nil {
		return nil, ErrCompile.Wrap(err).
			With(slog.String("source", source))
	}

	result, err := expr.Run(program, env)
	if err != nil {
		if callErr != nil {
			err = callErr
		}

		return nil, ErrEvaluate.Wrap(err).
			With(slog.String("source", source))
	}

	o.logger.TraceContext(ctx, "eval result",
		slog.String("source", source),
		slog.String("kind", builtin.KindOf(result).String()),
	)

	return result, nil
}

// Names returns the sorted names visible to an expression evaluated with
// vars: every builtin plus every binding.
func Names(vars map[string]any) []string {
	return slices.Sorted(maps.Keys(builtin.Merge(vars)))
}

// IsBuiltinError reports whether err was raised by a builtin's argument
// validation.
func IsBuiltinError(err error) bool {
	var be *builtin.Error

	return errors.As(err, &be)
}
