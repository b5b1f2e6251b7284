// Package profile provides optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag. Without it,
// [Modes] is empty and [Profiler.Start] always returns a no-op [Stopper].
//
//	go build -tags pprof ./...
//	jsone --pprof-mode cpu eval 'max(1, 2)'
//	go tool pprof -http=: ~/.cache/jsone/pprof/cpu.pprof
//
// Profiles are written to [Profiler.Dir], which the command line defaults
// to a "pprof" directory under the per-user cache directory. With the tag
// set, the net/http/pprof handlers are also registered on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
