package profile

// Stopper stops a running profile and flushes it to disk.
type Stopper interface{ Stop() }

// Profiler selects a profiling mode and its output directory.
type Profiler struct {
	// Mode is one of [Modes]. An empty Mode disables profiling.
	Mode string
	// Dir is the output directory. Empty selects a temporary directory.
	Dir string
	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Enabled reports whether profiling support was compiled in.
func Enabled() bool { return enabled }

// Start begins profiling. The returned Stopper is always safe to call, and
// is a no-op when profiling is disabled or p.Mode is empty or unknown.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
