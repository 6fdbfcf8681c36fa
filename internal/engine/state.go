package engine

// RunState is the Engine's own lifecycle state, independent of the
// Configuration it drives: READY (constructed, no run yet), RUNNING
// (inside Simulate), TERMINATED (a result was produced). TERMINATED lasts
// until the next Simulate call moves the engine to RUNNING again.
type RunState int

const (
	// Ready means the engine is constructed and has not yet started a run.
	Ready RunState = iota
	// Running means a Simulate call is in progress.
	Running
	// Terminated means the last Simulate call produced a result.
	Terminated
)

func (s RunState) String() string {
	switch s {
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Terminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}
