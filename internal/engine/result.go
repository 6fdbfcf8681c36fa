package engine

// Result is the terminal classification of a simulation: exactly one of
// Accepted, Rejected, Infinite, Error.
type Result int

const (
	// Accepted means the machine halted in an accept state.
	Accepted Result = iota
	// Rejected means the machine halted with no applicable transition, outside F.
	Rejected
	// Infinite means the step budget was exhausted or a configuration repeated.
	Infinite
	// Error means a structural problem prevented simulation (bad machine, bad input, runtime fault).
	Error
)

// String renders the fixed boundary-compatible token set required by §6.
func (r Result) String() string {
	switch r {
	case Accepted:
		return "ACCEPT"
	case Rejected:
		return "REJECT"
	case Infinite:
		return "INFINITE"
	case Error:
		return "ERROR"
	default:
		return "ERROR"
	}
}

// SimulationResult is the full outcome of one Simulate call: the
// classification, whether INFINITE was caused by a detected fingerprint
// repeat (as opposed to budget exhaustion), the step count reached, and the
// structural error (if Result == Error).
type SimulationResult struct {
	Result       Result
	LoopDetected bool
	Steps        uint64
	Err          error
}
