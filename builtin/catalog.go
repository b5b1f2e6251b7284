package builtin

// This file declares the process-wide catalog of builtins. The catalog is
// lazily built once and cloned on every access so callers may mutate the
// returned map without affecting the shared catalog.

import (
	"log/slog"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ardnew/jsone/fromnow"
)

//nolint:gochecknoglobals
var (
	catalogOnce sync.Once
	catalog     map[string]any
)

// Catalog returns a copy of the registry mapping every builtin name to its
// *Builtin.
func Catalog() map[string]any {
	catalogOnce.Do(func() {
		catalog = make(map[string]any)
		declare(catalog)
	})

	return maps.Clone(catalog)
}

// Names returns the sorted names of all builtins.
func Names() []string {
	return slices.Sorted(maps.Keys(Catalog()))
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (*Builtin, bool) {
	b, ok := Catalog()[name].(*Builtin)

	return b, ok
}

// Merge returns the catalog combined with vars. Bindings in vars override
// builtins of the same name. Neither vars nor the catalog is modified.
func Merge(vars map[string]any) map[string]any {
	merged := Catalog()
	maps.Copy(merged, vars)

	return merged
}

//nolint:gochecknoglobals
var (
	sigNumber   = MustSignature("number")
	sigString   = MustSignature("string")
	sigArray    = MustSignature("array")
	sigStrNum   = MustSignature("string|number")
	sigScalar   = MustSignature("string|number|boolean|null")
	sigSized    = MustSignature("string|array")
	sigAnything = MustSignature(
		"string|number|boolean|array|object|null|function",
	)
)

// typeofOrder is the order in which typeof tests kinds. Null is tested last.
//
//nolint:gochecknoglobals
var typeofOrder = []Kind{
	KindString,
	KindNumber,
	KindBoolean,
	KindArray,
	KindObject,
	KindFunction,
}

// declare defines every builtin in target.
func declare(target map[string]any) {
	// Math

	for name, pick := range map[string]func(x, y float64) float64{
		"max": math.Max,
		"min": math.Min,
	} {
		Define(name, target, Spec{
			MinArgs:  1,
			Variadic: sigNumber,
			Invoke: Plain(func(args ...any) (any, error) {
				res := toFloat(args[0])
				for _, arg := range args[1:] {
					res = pick(res, toFloat(arg))
				}

				return res, nil
			}),
		})
	}

	for name, fn := range map[string]func(float64) float64{
		"sqrt":  math.Sqrt,
		"ceil":  math.Ceil,
		"floor": math.Floor,
		"abs":   math.Abs,
	} {
		Define(name, target, Spec{
			Args: []Signature{sigNumber},
			Invoke: Plain(func(args ...any) (any, error) {
				return fn(toFloat(args[0])), nil
			}),
		})
	}

	// Strings

	Define("lowercase", target, Spec{
		Args: []Signature{sigString},
		Invoke: Plain(func(args ...any) (any, error) {
			return cases.Lower(language.Und).String(Text(args[0])), nil
		}),
	})

	Define("uppercase", target, Spec{
		Args: []Signature{sigString},
		Invoke: Plain(func(args ...any) (any, error) {
			return cases.Upper(language.Und).String(Text(args[0])), nil
		}),
	})

	Define("str", target, Spec{
		Args: []Signature{sigScalar},
		Invoke: Plain(func(args ...any) (any, error) {
			return Text(args[0]), nil
		}),
	})

	Define("number", target, Spec{
		Args: []Signature{sigString},
		Invoke: Plain(func(args ...any) (any, error) {
			return parseNumber(Text(args[0])), nil
		}),
	})

	Define("len", target, Spec{
		Args: []Signature{sigSized},
		Invoke: Plain(func(args ...any) (any, error) {
			if IsString(args[0]) {
				return utf8.RuneCountInString(Text(args[0])), nil
			}

			return reflect.ValueOf(args[0]).Len(), nil
		}),
	})

	for name, trim := range map[string]func(string, func(rune) bool) string{
		"strip":  strings.TrimFunc,
		"lstrip": strings.TrimLeftFunc,
		"rstrip": strings.TrimRightFunc,
	} {
		Define(name, target, Spec{
			Args: []Signature{sigString},
			Invoke: Plain(func(args ...any) (any, error) {
				return trim(Text(args[0]), isSpace), nil
			}),
		})
	}

	Define("split", target, Spec{
		MinArgs:  1,
		Variadic: sigStrNum,
		Invoke: Plain(func(args ...any) (any, error) {
			subject := Text(args[0])
			if len(args) < 2 {
				return []any{subject}, nil
			}

			parts := strings.Split(subject, Text(args[1]))
			res := make([]any, len(parts))

			for i, part := range parts {
				res[i] = part
			}

			return res, nil
		}),
	})

	Define("join", target, Spec{
		Args: []Signature{sigArray, sigStrNum},
		Invoke: Plain(func(args ...any) (any, error) {
			return joinArray(args[0], Text(args[1])), nil
		}),
	})

	// Miscellaneous

	Define("fromNow", target, Spec{
		MinArgs:  1,
		Variadic: sigString,
		Invoke: Contextual(func(ctx *Context, args ...any) (any, error) {
			var reference string
			if len(args) > 1 {
				reference = Text(args[1])
			}

			if reference == "" {
				reference, _ = ctx.Now()
			}

			return fromnow.Resolve(Text(args[0]), reference)
		}),
	})

	Define("typeof", target, Spec{
		Args: []Signature{sigAnything},
		Invoke: Plain(func(args ...any) (any, error) {
			for _, k := range typeofOrder {
				if k.Is(args[0]) {
					return k.String(), nil
				}
			}

			if IsNull(args[0]) {
				return KindNull.String(), nil
			}

			return nil, ErrInvalidKind.
				WithMessage("argument to be a valid json-e type").
				With(slog.String("builtin", "typeof"))
		}),
	})

	Define("defined", target, Spec{
		Args: []Signature{sigString},
		Invoke: Contextual(func(ctx *Context, args ...any) (any, error) {
			return ctx.Has(Text(args[0])), nil
		}),
	})
}
