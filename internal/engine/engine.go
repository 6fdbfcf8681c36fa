// Package engine drives a Configuration through a Machine's transition
// function until one of four terminal conditions holds: ACCEPTED,
// REJECTED, INFINITE (budget exhaustion or detected loop), or ERROR.
//
// Acceptance is checked before a transition lookup on every iteration, so
// an accept state with an outgoing transition is terminally accepting -
// this is the spec's intended semantics, not a bug (see DESIGN.md Open
// Question #3).
package engine

import (
	"context"
	"fmt"

	"github.com/asphodex/tmsim/internal/configuration"
	"github.com/asphodex/tmsim/internal/machine"
	"go.uber.org/zap"
)

const defaultMaxSteps = 1000

// Engine is the simulation driver for one Machine. It is strictly
// single-threaded and synchronous: one Engine processes one word to a
// terminal state before accepting the next. The Machine is read-only and
// may be shared by multiple Engines; the Configuration, trace buffer,
// visited-set, and last error below are owned exclusively by this Engine.
type Engine struct {
	m        *machine.Machine
	maxSteps uint64
	logger   *zap.Logger

	state     RunState
	config    *configuration.Configuration
	trace     []*configuration.Configuration
	visited   map[string]struct{}
	lastError error
}

// New constructs an Engine bound to m. The default step budget is 1000
// (spec §5); pass WithMaxSteps(0) for unbounded.
func New(m *machine.Machine, opts ...Option) *Engine {
	e := &Engine{
		m:        m,
		maxSteps: defaultMaxSteps,
		logger:   zap.NewNop(),
		state:    Ready,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// State returns the Engine's current lifecycle state.
func (e *Engine) State() RunState {
	return e.state
}

// LastError returns the structural error from the most recent ERROR
// result, or nil.
func (e *Engine) LastError() error {
	return e.lastError
}

// Config returns the live configuration reached by the most recent Simulate
// call, for callers that need to render the final tape(s) (spec §6.2's
// "Cinta final"/"Cintas finales" lines). It is nil before the first call.
func (e *Engine) Config() *configuration.Configuration {
	return e.config
}

// Trace returns the recorded configuration snapshots from the most recent
// Simulate call, in step order starting with the initial configuration.
// It is empty unless that call passed enableTrace = true.
func (e *Engine) Trace() []*configuration.Configuration {
	return e.trace
}

// Simulate drives word through the Engine's machine to a terminal
// condition. ctx cancellation is an additive embedding convenience on top
// of the spec-mandated max_steps budget (see SPEC_FULL.md §4.5); it
// surfaces as an ERROR result wrapping ctx.Err().
func (e *Engine) Simulate(ctx context.Context, word string, enableTrace bool) SimulationResult {
	if e.state == Running {
		return e.fail(ErrAlreadyRunning)
	}

	e.state = Running
	e.lastError = nil

	if e.m == nil {
		return e.fail(ErrNoMachine)
	}

	if err := e.m.IsValid(); err != nil {
		return e.fail(fmt.Errorf("%w: %w", ErrInvalidMachine, err))
	}

	for i := 0; i < len(word); i++ {
		if !e.m.IsInputSymbol(word[i]) {
			return e.fail(fmt.Errorf("%w: %q", ErrInputAlphabet, word[i]))
		}
	}

	e.reset(word)

	if enableTrace {
		e.trace = append(e.trace, e.config.Clone())
	}

	e.visited[e.config.Compact()] = struct{}{}

	for {
		if ctx.Err() != nil {
			return e.fail(fmt.Errorf("engine: %w", ctx.Err()))
		}

		if e.maxSteps > 0 && e.config.StepCount >= e.maxSteps {
			return e.terminate(SimulationResult{Result: Infinite, Steps: e.config.StepCount})
		}

		if e.m.IsAccepting(e.config.State) {
			return e.terminate(SimulationResult{Result: Accepted, Steps: e.config.StepCount})
		}

		read := e.config.ReadTuple()

		t, ok := e.m.Transition(e.config.State, read)
		if !ok {
			return e.terminate(SimulationResult{Result: Rejected, Steps: e.config.StepCount})
		}

		for i, tp := range e.config.Tapes {
			tp.Write(t.WriteSymbols[i])
			tp.Move(t.Movements[i])
		}

		e.config.State = t.ToState
		e.config.StepCount++

		fingerprint := e.config.Compact()
		if _, seen := e.visited[fingerprint]; seen {
			return e.terminate(SimulationResult{Result: Infinite, LoopDetected: true, Steps: e.config.StepCount})
		}

		e.visited[fingerprint] = struct{}{}

		if enableTrace {
			e.trace = append(e.trace, e.config.Clone())
		}
	}
}

// reset reinitializes the live configuration, trace, and visited-set for a
// new word, building a fresh Configuration sized to the machine's tape
// count the first time it is needed.
func (e *Engine) reset(word string) {
	if e.config == nil || len(e.config.Tapes) != e.m.TapeCount() {
		blanks := make([]byte, e.m.TapeCount())
		for i := range blanks {
			blanks[i] = e.m.Blank()
		}

		e.config = configuration.New(e.m.InitialState(), blanks)
	}

	e.config.Reset(e.m.InitialState(), word)
	e.trace = nil
	e.visited = make(map[string]struct{})
}

func (e *Engine) fail(err error) SimulationResult {
	e.lastError = err
	e.logger.Error("simulate failed", zap.Error(err))

	return e.terminate(SimulationResult{Result: Error, Err: err})
}

func (e *Engine) terminate(result SimulationResult) SimulationResult {
	e.state = Terminated
	return result
}
