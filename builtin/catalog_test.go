package builtin

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func call(t *testing.T, ctx *Context, name string, args ...any) (any, error) {
	t.Helper()

	b, ok := Lookup(name)
	if !ok {
		t.Fatalf("builtin %q not found", name)
	}

	return b.Call(ctx, args...)
}

func mustCall(t *testing.T, ctx *Context, name string, args ...any) any {
	t.Helper()

	res, err := call(t, ctx, name, args...)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}

	return res
}

func TestCatalog_Names(t *testing.T) {
	want := []string{
		"abs", "ceil", "defined", "floor", "fromNow", "join", "len",
		"lowercase", "lstrip", "max", "min", "number", "rstrip", "split",
		"sqrt", "str", "strip", "typeof", "uppercase",
	}

	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("catalog names mismatch (-want +got):\n%s", diff)
	}

	for name, v := range Catalog() {
		if !IsBuiltin(v) {
			t.Errorf("catalog entry %q is not marked as builtin", name)
		}
	}
}

func TestCatalog_Math(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want float64
	}{
		{"max", []any{1, 5, 3}, 5},
		{"min", []any{1, 5, 3}, 1},
		{"max", []any{-2.5}, -2.5},
		{"min", []any{int64(4), 2.5, uint8(9)}, 2.5},
		{"sqrt", []any{16}, 4},
		{"ceil", []any{1.2}, 2},
		{"floor", []any{-1.2}, -2},
		{"abs", []any{-7}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCall(t, nil, tt.name, tt.args...)
			if got != tt.want {
				t.Errorf("%s(%v) = %v, want %v", tt.name, tt.args, got, tt.want)
			}
		})
	}
}

func TestCatalog_Math_Errors(t *testing.T) {
	if _, err := call(t, nil, "max"); !errors.Is(err, ErrArity) {
		t.Errorf("max(): expected ErrArity, got %v", err)
	}

	if _, err := call(t, nil, "min", 1, "2"); !errors.Is(err, ErrType) {
		t.Errorf("min(1, \"2\"): expected ErrType, got %v", err)
	}

	if _, err := call(t, nil, "sqrt"); !errors.Is(err, ErrArity) {
		t.Errorf("sqrt(): expected ErrArity, got %v", err)
	}
}

// sqrt of a negative number follows IEEE 754 and yields NaN without error.
func TestCatalog_SqrtNegative_IsNaN(t *testing.T) {
	got, ok := mustCall(t, nil, "sqrt", -1).(float64)
	if !ok || !math.IsNaN(got) {
		t.Errorf("expected NaN, got %v", got)
	}
}

func TestCatalog_Strings(t *testing.T) {
	tests := []struct {
		name string
		arg  any
		want string
	}{
		{"lowercase", "ÀBC", "àbc"},
		{"uppercase", "straße", "STRASSE"},
		{"strip", " \t a b \n", "a b"},
		{"lstrip", " \t a b \n", "a b \n"},
		{"rstrip", " \t a b \n", " \t a b"},
		{"strip", "\ufeff\u2028x\u3000", "x"},
		{"strip", "\u0085x\u0085", "\u0085x\u0085"},
		{"lstrip", "\u0085 x", "\u0085 x"},
		{"strip", " x ", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustCall(t, nil, tt.name, tt.arg); got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, tt.arg, got, tt.want)
			}
		})
	}

	if _, err := call(t, nil, "uppercase", 1); !errors.Is(err, ErrType) {
		t.Errorf("uppercase(1): expected ErrType, got %v", err)
	}
}

func TestCatalog_Str(t *testing.T) {
	tests := []struct {
		arg  any
		want string
	}{
		{nil, "null"},
		{42, "42"},
		{true, "true"},
		{false, "false"},
		{"text", "text"},
		{1.5, "1.5"},
		{3.0, "3"},
		{-0.0, "0"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{0.000001, "0.000001"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
		{float32(0.1), "0.1"},
	}

	for _, tt := range tests {
		if got := mustCall(t, nil, "str", tt.arg); got != tt.want {
			t.Errorf("str(%v) = %q, want %q", tt.arg, got, tt.want)
		}
	}

	if _, err := call(t, nil, "str", []any{}); !errors.Is(err, ErrType) {
		t.Errorf("str([]): expected ErrType, got %v", err)
	}
}

func TestCatalog_Number(t *testing.T) {
	tests := []struct {
		arg  string
		want float64
	}{
		{"42", 42},
		{" 12.5\n", 12.5},
		{"", 0},
		{"-3e2", -300},
		{".5", 0.5},
		{"0x1f", 31},
		{"0b101", 5},
		{"0o17", 15},
		{"0x10000000000000000", 18446744073709551616},
		{"0x1fffffffffffffffff", 0x1fffffffffffffffff},
		{"Infinity", math.Inf(1)},
	}

	for _, tt := range tests {
		if got := mustCall(t, nil, "number", tt.arg); got != tt.want {
			t.Errorf("number(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}

	for _, arg := range []string{"abc", "1,000", "inf", "NaN", "0x", "1_000", "12px", "0x-1", "0xg", "0b2"} {
		got, ok := mustCall(t, nil, "number", arg).(float64)
		if !ok || !math.IsNaN(got) {
			t.Errorf("number(%q) = %v, want NaN", arg, got)
		}
	}
}

func TestCatalog_Len(t *testing.T) {
	tests := []struct {
		arg  any
		want int
	}{
		{"abc", 3},
		{"héllo", 5},
		{"", 0},
		{[]any{1, 2, 3}, 3},
		{[]string{"a"}, 1},
	}

	for _, tt := range tests {
		if got := mustCall(t, nil, "len", tt.arg); got != tt.want {
			t.Errorf("len(%v) = %v, want %d", tt.arg, got, tt.want)
		}
	}

	_, err := call(t, nil, "len", 42)
	if !errors.Is(err, ErrType) {
		t.Fatalf("len(42): expected ErrType, got %v", err)
	}

	if !strings.Contains(err.Error(), "argument 1 to be string|array") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestCatalog_Split(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want []any
	}{
		{"delimiter", []any{"a,b,c", ","}, []any{"a", "b", "c"}},
		{"no delimiter", []any{"a,b"}, []any{"a,b"}},
		{"empty delimiter", []any{"héy", ""}, []any{"h", "é", "y"}},
		{"numeric delimiter", []any{"1020", 0}, []any{"1", "2", ""}},
		{"numeric subject", []any{123, 2}, []any{"1", "3"}},
		{"extra arguments ignored", []any{"a-b", "-", "x"}, []any{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCall(t, nil, "split", tt.args...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("split mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := call(t, nil, "split"); !errors.Is(err, ErrArity) {
		t.Errorf("split(): expected ErrArity, got %v", err)
	}

	if _, err := call(t, nil, "split", "a", true); !errors.Is(err, ErrType) {
		t.Errorf("split(a, true): expected ErrType, got %v", err)
	}
}

func TestCatalog_Join(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{"strings", []any{[]any{"a", "b"}, "-"}, "a-b"},
		{"numeric separator", []any{[]any{"a", "b"}, 0}, "a0b"},
		{"mixed elements", []any{[]any{1, "x", nil, true}, ","}, "1,x,,true"},
		{"nested array", []any{[]any{[]any{1, 2}, 3}, ";"}, "1,2;3"},
		{"object element", []any{[]any{map[string]any{"a": 1}}, ""}, `{"a":1}`},
		{"empty", []any{[]any{}, ","}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustCall(t, nil, "join", tt.args...); got != tt.want {
				t.Errorf("join = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := call(t, nil, "join", "ab", ","); !errors.Is(err, ErrType) {
		t.Errorf("join(\"ab\", \",\"): expected ErrType, got %v", err)
	}
}

func TestCatalog_SplitJoin_RoundTrip(t *testing.T) {
	tests := []struct {
		items []any
		sep   string
	}{
		{[]any{"a", "b", "c"}, ","},
		{[]any{"alpha", "", "gamma"}, "::"},
		{[]any{"single"}, "|"},
		{[]any{"x y", "z"}, " - "},
	}

	for _, tt := range tests {
		joined := mustCall(t, nil, "join", tt.items, tt.sep)
		got := mustCall(t, nil, "split", joined, tt.sep)

		if diff := cmp.Diff(tt.items, got); diff != "" {
			t.Errorf("round trip with %q (-want +got):\n%s", tt.sep, diff)
		}
	}
}

func TestCatalog_Typeof(t *testing.T) {
	mx, _ := Lookup("max")

	tests := []struct {
		arg  any
		want string
	}{
		{"s", "string"},
		{1, "number"},
		{false, "boolean"},
		{[]any{1, 2}, "array"},
		{map[string]any{}, "object"},
		{nil, "null"},
		{mx, "function"},
	}

	for _, tt := range tests {
		if got := mustCall(t, nil, "typeof", tt.arg); got != tt.want {
			t.Errorf("typeof(%#v) = %q, want %q", tt.arg, got, tt.want)
		}
	}

	type opaque struct{}

	if _, err := call(t, nil, "typeof", opaque{}); !errors.Is(err, ErrType) {
		t.Errorf("typeof(struct): expected ErrType, got %v", err)
	}
}

func TestCatalog_Defined(t *testing.T) {
	parent := NewContext(map[string]any{"x": 1})
	child := parent.Child(map[string]any{"y": nil})

	tests := []struct {
		name string
		ctx  *Context
		arg  string
		want bool
	}{
		{"own binding", parent, "x", true},
		{"missing", NewContext(map[string]any{}), "x", false},
		{"inherited binding is not own", child, "x", false},
		{"nil-valued own binding", child, "y", true},
		{"nil context", nil, "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustCall(t, tt.ctx, "defined", tt.arg); got != tt.want {
				t.Errorf("defined(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestCatalog_FromNow(t *testing.T) {
	ctx := NewContext(map[string]any{NowKey: "2017-01-19T16:27:20.974Z"})

	tests := []struct {
		name string
		ctx  *Context
		args []any
		want string
	}{
		{"context now", ctx, []any{"1 day"}, "2017-01-20T16:27:20.974Z"},
		{"negative", ctx, []any{"-2 hours"}, "2017-01-19T14:27:20.974Z"},
		{
			"explicit reference",
			ctx,
			[]any{"1 week", "2020-02-01T00:00:00.000Z"},
			"2020-02-08T00:00:00.000Z",
		},
		{
			"inherited now",
			ctx.Child(nil),
			[]any{"30 seconds"},
			"2017-01-19T16:27:50.974Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustCall(t, tt.ctx, "fromNow", tt.args...); got != tt.want {
				t.Errorf("fromNow = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := call(t, ctx, "fromNow"); !errors.Is(err, ErrArity) {
		t.Errorf("fromNow(): expected ErrArity, got %v", err)
	}

	if _, err := call(t, ctx, "fromNow", "soon"); err == nil {
		t.Error("fromNow(soon): expected error")
	}
}

func TestMerge_ContextWins(t *testing.T) {
	user := map[string]any{"max": "shadowed", "x": 1}
	merged := Merge(user)

	if merged["max"] != "shadowed" {
		t.Errorf("expected user binding to shadow builtin, got %v", merged["max"])
	}

	if merged["x"] != 1 {
		t.Errorf("expected user binding x, got %v", merged["x"])
	}

	if !IsBuiltin(merged["min"]) {
		t.Errorf("expected min to remain a builtin")
	}

	if len(user) != 2 {
		t.Errorf("expected user map to be unchanged, got %v", user)
	}

	if _, ok := Lookup("max"); !ok {
		t.Error("expected catalog to keep max after merge")
	}

	if _, ok := Catalog()["x"]; ok {
		t.Error("expected catalog not to gain user bindings")
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Catalog()
	delete(c, "max")
	c["extra"] = 1

	again := Catalog()
	if _, ok := again["max"]; !ok {
		t.Error("expected mutation of a copy not to affect the catalog")
	}

	if _, ok := again["extra"]; ok {
		t.Error("expected mutation of a copy not to affect the catalog")
	}
}
