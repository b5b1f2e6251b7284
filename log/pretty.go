package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyHandler writes one styled line per record:
//
//	TIME LEVEL source:line message key=value group.key=value
type prettyHandler struct {
	mu         *sync.Mutex
	w          io.Writer
	level      slog.Leveler
	formatTime FormatTime
	caller     bool
	styles     prettyStyles
	prefix     string // preformatted attributes from WithAttrs
	group      string // dotted key prefix from WithGroup
}

type prettyStyles struct {
	time, source, key lipgloss.Style
	level             map[Level]lipgloss.Style
}

func newPrettyHandler(c config) *prettyHandler {
	// Bind the renderer to the output so color support is detected on the
	// writer actually receiving the log, not on stdout.
	r := lipgloss.NewRenderer(c.output)

	return &prettyHandler{
		mu:         &sync.Mutex{},
		w:          c.output,
		level:      slog.Level(c.level),
		formatTime: c.formatTime,
		caller:     c.caller,
		styles: prettyStyles{
			time:   r.NewStyle().Faint(true),
			source: r.NewStyle().Foreground(lipgloss.Color("6")),
			key:    r.NewStyle().Foreground(lipgloss.Color("8")),
			level: map[Level]lipgloss.Style{
				LevelTrace: r.NewStyle().Foreground(lipgloss.Color("5")),
				LevelDebug: r.NewStyle().Foreground(lipgloss.Color("4")),
				LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("2")),
				LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
				LevelError: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			},
		},
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			b.WriteString(h.styles.time.Render(ts))
			b.WriteByte(' ')
		}
	}

	b.WriteString(h.levelStyle(Level(r.Level)).
		Render(fmt.Sprintf("%-5s", strings.ToUpper(Level(r.Level).String()))))

	if h.caller && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			b.WriteByte(' ')
			b.WriteString(h.styles.source.Render(
				fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)))
		}
	}

	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.prefix)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.group, a)

		return true
	})

	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, b.String())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var b strings.Builder

	for _, a := range attrs {
		h.writeAttr(&b, h.group, a)
	}

	c := *h
	c.prefix += b.String()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.group += name + "."

	return &c
}

func (h *prettyHandler) levelStyle(level Level) lipgloss.Style {
	if s, ok := h.styles.level[level]; ok {
		return s
	}

	return h.styles.key
}

func (h *prettyHandler) writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			group += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(b, group, ga)
		}

		return
	}

	b.WriteByte(' ')
	b.WriteString(h.styles.key.Render(group + a.Key + "="))
	b.WriteString(a.Value.String())
}
