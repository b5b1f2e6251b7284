// Package cmd implements the jsone subcommands.
//
// Each command is a kong command struct whose Run method receives the
// process [context.Context]. Commands read standard input and write
// standard output through the context (see [WithInput] and [WithOutput]),
// and the running [kong.Context] is available through [WithContext].
package cmd

//nolint:gochecknoglobals
var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
