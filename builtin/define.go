package builtin

import (
	"log/slog"
	"strconv"
	"strings"
)

// Invoker is a native builtin implementation. It is satisfied by [Plain]
// and [Contextual]; the choice of type decides whether the implementation
// receives the evaluation context.
type Invoker interface {
	invoke(ctx *Context, args []any) (any, error)
}

// Plain is an implementation that ignores the evaluation context.
type Plain func(args ...any) (any, error)

func (f Plain) invoke(_ *Context, args []any) (any, error) { return f(args...) }

// Contextual is an implementation that receives the evaluation context as
// its first parameter.
type Contextual func(ctx *Context, args ...any) (any, error)

func (f Contextual) invoke(ctx *Context, args []any) (any, error) {
	return f(ctx, args...)
}

// Spec describes the arguments accepted by a builtin and its implementation.
type Spec struct {
	// Args holds one signature per fixed positional argument. It is ignored
	// when Variadic is set.
	Args []Signature

	// MinArgs is the minimum number of arguments. Zero means no minimum
	// beyond len(Args).
	MinArgs int

	// Variadic, when non-zero, constrains every argument regardless of
	// position.
	Variadic Signature

	// Invoke is the native implementation.
	Invoke Invoker
}

func isNilInvoker(inv Invoker) bool {
	switch f := inv.(type) {
	case nil:
		return true
	case Plain:
		return f == nil
	case Contextual:
		return f == nil
	default:
		return false
	}
}

// IsVariadic reports whether s accepts any number of arguments.
func (s Spec) IsVariadic() bool { return !s.Variadic.IsZero() }

// NeedsContext reports whether the implementation receives the context.
func (s Spec) NeedsContext() bool {
	_, ok := s.Invoke.(Contextual)

	return ok
}

// Builtin is a validated native function registered by [Define].
type Builtin struct {
	name string
	spec Spec
}

// Define wraps spec into a validated callable, stores it in target under
// name (when target is non-nil), and returns it. It panics if spec has no
// implementation.
func Define(name string, target map[string]any, spec Spec) *Builtin {
	if isNilInvoker(spec.Invoke) {
		panic("builtin: " + name + ": missing implementation")
	}

	b := &Builtin{name: name, spec: spec}

	if target != nil {
		target[name] = b
	}

	return b
}

// Name returns the name the builtin was defined with.
func (b *Builtin) Name() string { return b.name }

// Spec returns the builtin's declaration.
func (b *Builtin) Spec() Spec { return b.spec }

// IsBuiltin marks b as a builtin rather than a user-supplied function.
func (*Builtin) IsBuiltin() bool { return true }

// IsBuiltin reports whether v is a callable registered by [Define].
func IsBuiltin(v any) bool {
	b, ok := v.(interface{ IsBuiltin() bool })

	return ok && b.IsBuiltin()
}

// Signature returns a human-readable call signature, for example
// "join(array, string|number)" or "max(number...)".
func (b *Builtin) Signature() string {
	var sb strings.Builder

	sb.WriteString(b.name)
	sb.WriteByte('(')

	if b.spec.IsVariadic() {
		sb.WriteString(b.spec.Variadic.String())
		sb.WriteString("...")
	} else {
		for i, sig := range b.spec.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(sig.String())
		}
	}

	sb.WriteByte(')')

	return sb.String()
}

// Call validates args against the builtin's spec and invokes the native
// implementation. The context is always accepted and only forwarded to
// [Contextual] implementations.
//
// Arguments beyond a fixed signature's length are passed through unchecked.
func (b *Builtin) Call(ctx *Context, args ...any) (any, error) {
	spec := b.spec

	if !spec.IsVariadic() && len(args) < len(spec.Args) {
		return nil, ErrArity.
			With(
				slog.String("builtin", b.name),
				slog.Int("expected", len(spec.Args)),
				slog.Int("got", len(args)),
			)
	}

	if spec.MinArgs > 0 && len(args) < spec.MinArgs {
		return nil, ErrArity.
			WithMessage("expected at least " + strconv.Itoa(spec.MinArgs) +
				" arguments").
			With(
				slog.String("builtin", b.name),
				slog.Int("expected", spec.MinArgs),
				slog.Int("got", len(args)),
			)
	}

	for i, arg := range args {
		var sig Signature

		switch {
		case spec.IsVariadic():
			sig = spec.Variadic
		case i < len(spec.Args):
			sig = spec.Args[i]
		default:
			continue
		}

		if !sig.Accepts(arg) {
			return nil, ErrType.
				With(
					slog.String("builtin", b.name),
					slog.Int("position", i+1),
					slog.String("expected", sig.String()),
					slog.String("found", KindOf(arg).String()),
				)
		}
	}

	return spec.Invoke.invoke(ctx, args)
}
