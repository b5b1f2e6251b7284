// Package log provides a leveled structured logger built on [log/slog].
//
// A [Logger] is configured once with functional options and is then
// immutable, so it can be copied and shared freely. The zero value discards
// every message, which lets library code accept a Logger option without
// requiring one.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
//	logger.With(slog.String("builtin", "split")).
//		Debug("call", slog.Int("args", 2))
//
// In addition to the [log/slog] levels, [LevelTrace] sits below
// [LevelDebug] for per-call detail.
//
// Text output is styled with lipgloss unless [WithPretty] disables it.
// Color is only emitted when the output is a terminal.
//
// The package-level functions log through a process-wide default logger
// writing to standard error, reconfigured with [Config].
package log
