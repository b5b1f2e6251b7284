package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}

	return path
}

func sourceNames(srcs []source) []string {
	names := make([]string, len(srcs))
	for i, src := range srcs {
		names[i] = src.name
	}

	return names
}

func TestOpenSources_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "a: 1\n")
	b := writeFile(t, dir, "b.yaml", "b: 2\n")

	link := filepath.Join(dir, "link.yaml")
	if err := os.Symlink(a, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	t.Chdir(dir)

	srcs, closeAll, err := openSources(
		[]string{a, "-", b, "a.yaml", link, "-"},
		strings.NewReader(""),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeAll()

	want := []string{a, b, "-"}
	if diff := cmp.Diff(want, sourceNames(srcs)); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenSources_Empty(t *testing.T) {
	srcs, closeAll, err := openSources(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeAll()

	if len(srcs) != 0 {
		t.Errorf("expected no sources, got %v", sourceNames(srcs))
	}
}

func TestOpenSources_Nonexistent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "a: 1\n")

	_, _, err := openSources([]string{a, filepath.Join(dir, "missing.yaml")}, nil)
	if !errors.Is(err, ErrReadContext) {
		t.Errorf("expected ErrReadContext, got %v", err)
	}
}

func TestDecodeContext(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]any
		wantErr error
	}{
		{"empty", "", map[string]any{}, nil},
		{"null", "null\n", map[string]any{}, nil},
		{"yaml", "name: jo\nlist: [a, b]\n", map[string]any{"name": "jo", "list": []any{"a", "b"}}, nil},
		{"json", `{"ok": true, "nested": {"s": "x"}}`, map[string]any{"ok": true, "nested": map[string]any{"s": "x"}}, nil},
		{"not a mapping", "- 1\n- 2\n", nil, ErrDecodeContext},
		{"scalar", "42\n", nil, ErrNotMapping},
		{"explicit null document", "--- null\n", map[string]any{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeContext(source{name: tt.name, r: strings.NewReader(tt.content)})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("bindings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadContext_LaterFilesWin(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "shared: a\nonlyA: a1\n")
	b := writeFile(t, dir, "b.json", `{"shared": "b", "onlyB": "b1"}`)

	ctx := WithInput(context.Background(), strings.NewReader("shared: stdin\n"))

	got, err := loadContext(ctx, []string{"-", a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{"shared": "stdin", "onlyA": "a1", "onlyB": "b1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestContextAccessors_Defaults(t *testing.T) {
	ctx := context.Background()

	if inputFrom(ctx) != io.Reader(os.Stdin) {
		t.Error("expected stdin by default")
	}

	if outputFrom(ctx) != io.Writer(os.Stdout) {
		t.Error("expected stdout by default")
	}

	if kongContextFrom(ctx) != nil {
		t.Error("expected no kong context by default")
	}
}
