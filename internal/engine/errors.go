package engine

import "errors"

// Sentinel errors surfaced as the engine's structural ERROR classification.
// RuntimeError and InputError map to these via errors.Is/errors.As; budget
// exhaustion and loop detection are never errors (they are INFINITE).
var (
	// ErrNoMachine is returned when Simulate is called on an engine with no machine.
	ErrNoMachine = errors.New("engine: no machine configured")

	// ErrInvalidMachine is returned when the configured machine fails IsValid.
	ErrInvalidMachine = errors.New("engine: machine failed validation")

	// ErrInputAlphabet is returned whenever the input word contains a symbol outside Sigma;
	// the CLI decides whether to show it as ERROR (--strict) or REJECT.
	ErrInputAlphabet = errors.New("engine: input word contains a symbol outside the input alphabet")

	// ErrAlreadyRunning is returned when Simulate is called while another run is in progress on the same Engine.
	ErrAlreadyRunning = errors.New("engine: simulate called while already running")
)
