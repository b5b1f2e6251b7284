// Package cli contains the command line interface for jsone.
//
// # Usage
//
// Expressions given without a command are evaluated:
//
//	jsone 'max(1, 5, 3)'
//	jsone eval -c vars.yaml -o json 'split(join(items, ","), ",")'
//
// The remaining commands list the builtin functions, start an interactive
// session, write a configuration file, and print the version:
//
//	jsone builtins [name ...]
//	jsone repl [-c vars.yaml]
//	jsone init [-f] [file]
//	jsone version
//
// # Configuration
//
// Flag values are read from a YAML file in the per-user configuration
// directory (see [pkg.ConfigPath]). Keys name flags without leading dashes;
// nested mappings are joined with hyphens. Command-line flags override the
// file. The init command writes the current flag values to that file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Style text output with colors
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o jsone .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
