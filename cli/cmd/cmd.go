package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type (
	contextKey struct{}
	inputKey   struct{}
	outputKey  struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithInput returns a new context.Context whose commands read standard input
// from r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithOutput returns a new context.Context whose commands write results
// to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

type source struct {
	name string
	r    io.Reader
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks and relative/absolute paths.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// openSources opens every path in order. Repeated files are opened once, at
// their first position, and all occurrences of "-" collapse into a single
// stdin source placed last. The returned function closes every opened file.
func openSources(
	paths []string,
	stdin io.Reader,
) (srcs []source, closeAll func(), err error) {
	var (
		files    []*os.File
		hasStdin bool
		seen     = make(map[fileKey]struct{})
	)

	closeAll = func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		f, err := os.Open(path)
		if err != nil {
			closeAll()

			return nil, nil, ErrReadContext.Wrap(err).
				With(slog.String("file", path))
		}

		if info, err := f.Stat(); err == nil {
			if key, ok := makeFileKey(info); ok {
				if _, dup := seen[key]; dup {
					_ = f.Close()

					continue
				}

				seen[key] = struct{}{}
			}
		}

		files = append(files, f)
		srcs = append(srcs, source{name: path, r: f})
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdinSource, r: stdin})
	}

	return srcs, closeAll, nil
}

// decodeContext decodes one YAML (or JSON) document of bindings.
// An empty or null document yields no bindings; any other document must be
// a mapping.
func decodeContext(src source) (map[string]any, error) {
	var doc any

	err := yaml.NewDecoder(src.r).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrDecodeContext.Wrap(err).
			With(slog.String("file", src.name))
	}

	switch vars := doc.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return vars, nil
	default:
		return nil, ErrDecodeContext.Wrap(ErrNotMapping).
			With(slog.String("file", src.name))
	}
}

// loadContext decodes the context files named by paths and merges them in
// order; keys in later files replace keys in earlier ones.
func loadContext(ctx context.Context, paths []string) (map[string]any, error) {
	srcs, closeAll, err := openSources(paths, inputFrom(ctx))
	if err != nil {
		return nil, err
	}
	defer closeAll()

	vars := make(map[string]any)

	for _, src := range srcs {
		part, err := decodeContext(src)
		if err != nil {
			return nil, err
		}

		maps.Copy(vars, part)
	}

	return vars, nil
}
