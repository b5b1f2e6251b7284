package eval

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/jsone/builtin"
)

var fixedNow = time.Date(2017, 1, 19, 16, 27, 20, 974e6, time.UTC)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		source string
		vars   map[string]any
		want   any
	}{
		{"max", "max(1, 5, 3)", nil, 5.0},
		{"min over bindings", "min(a, b)", map[string]any{"a": 2, "b": -4.5}, -4.5},
		{"len string", `len("abc")`, nil, 3},
		{"len array", "len([1, 2, 3, 4])", nil, 4},
		{"round trip", `split(join(["a", "b"], ","), ",")`, nil, []any{"a", "b"}},
		{"defined", `defined("x")`, map[string]any{"x": 1}, true},
		{"not defined", `defined("y")`, map[string]any{"x": 1}, false},
		{"shadowed", "uppercase", map[string]any{"uppercase": "mine"}, "mine"},
		{"typeof now", "typeof(now)", nil, "string"},
		{"fromNow", `fromNow("1 day")`, nil, "2017-01-20T16:27:20.974Z"},
		{"fromNow explicit", `fromNow("1 day", "2000-01-01T00:00:00Z")`, nil, "2000-01-02T00:00:00.000Z"},
		{"bound now", `fromNow("-1 hour")`, map[string]any{"now": "2020-06-01T12:00:00Z"}, "2020-06-01T11:00:00.000Z"},
		{"nested", `str(number("1" + "5") + 1)`, nil, "16"},
		{"typeof null", "typeof(null)", nil, "null"},
		{"str null", "str(null)", nil, "null"},
		{"bound null", "null", map[string]any{"null": "mine"}, "mine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(context.Background(), tt.source, tt.vars, WithNow(fixedNow))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluate_CompileError(t *testing.T) {
	_, err := Evaluate(context.Background(), "1 +", nil)
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("expected ErrCompile, got %v", err)
	}

	if errors.Is(err, ErrEvaluate) {
		t.Error("expected compile error to be distinct from ErrEvaluate")
	}
}

func TestEvaluate_BuiltinError(t *testing.T) {
	tests := []struct {
		source string
		want   error
	}{
		{"len(42)", builtin.ErrType},
		{"sqrt()", builtin.ErrArity},
		{`max(1, "2")`, builtin.ErrType},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := Evaluate(context.Background(), tt.source, nil)
			if !errors.Is(err, ErrEvaluate) {
				t.Fatalf("expected ErrEvaluate, got %v", err)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v in chain, got %v", tt.want, err)
			}

			if !IsBuiltinError(err) {
				t.Error("expected IsBuiltinError to report true")
			}
		})
	}
}

func TestContext(t *testing.T) {
	ctx := Context(map[string]any{"x": 1}, WithNow(fixedNow))

	if now, ok := ctx.Now(); !ok || now != "2017-01-19T16:27:20.974Z" {
		t.Errorf("expected default now binding, got %q, %v", now, ok)
	}

	if !ctx.Has("x") || !ctx.Has("max") {
		t.Error("expected context to hold both bindings and builtins")
	}

	ctx = Context(map[string]any{"now": "fixed"})
	if now, _ := ctx.Now(); now != "fixed" {
		t.Errorf("expected caller now to win, got %q", now)
	}
}

func TestNames(t *testing.T) {
	names := Names(map[string]any{"zeta": true})

	for _, want := range []string{"zeta", "max", "fromNow", "typeof"} {
		if !slices.Contains(names, want) {
			t.Errorf("expected %q in %v", want, names)
		}
	}

	if !slices.IsSorted(names) {
		t.Errorf("expected sorted names, got %v", names)
	}
}
