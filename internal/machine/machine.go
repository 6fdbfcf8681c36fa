// Package machine holds the validated 7-tuple (Q, Sigma, Gamma, delta, q0,
// F, blank) plus tape count k that the Engine executes. k = 1 is the mono
// case; k > 1 is the multi-tape case. Both are served by the same type.
package machine

import (
	"fmt"

	"github.com/asphodex/tmsim/internal/transition"
)

// Machine is an immutable, validated Turing machine definition. Build one
// through MachineBuilder; the zero value is not usable.
type Machine struct {
	tapeCount     int
	states        map[string]struct{}
	inputAlphabet map[byte]struct{}
	tapeAlphabet  map[byte]struct{}
	initialState  string
	acceptStates  map[string]struct{}
	blank         byte
	transitions   map[string]transition.MultiTransition
}

// TapeCount returns k.
func (m *Machine) TapeCount() int {
	return m.tapeCount
}

// States returns the set of declared state names.
func (m *Machine) States() map[string]struct{} {
	return m.states
}

// InputAlphabet returns Sigma.
func (m *Machine) InputAlphabet() map[byte]struct{} {
	return m.inputAlphabet
}

// TapeAlphabet returns Gamma.
func (m *Machine) TapeAlphabet() map[byte]struct{} {
	return m.tapeAlphabet
}

// InitialState returns q0.
func (m *Machine) InitialState() string {
	return m.initialState
}

// AcceptStates returns F.
func (m *Machine) AcceptStates() map[string]struct{} {
	return m.acceptStates
}

// IsAccepting reports whether state belongs to F.
func (m *Machine) IsAccepting(state string) bool {
	_, ok := m.acceptStates[state]
	return ok
}

// Blank returns the blank symbol.
func (m *Machine) Blank() byte {
	return m.blank
}

// IsInputSymbol reports whether sym belongs to Sigma.
func (m *Machine) IsInputSymbol(sym byte) bool {
	_, ok := m.inputAlphabet[sym]
	return ok
}

// Transition looks up the unique edge keyed by (state, read-tuple).
// Multi-tape lookup returns false if the tuple length disagrees with k.
func (m *Machine) Transition(state string, read []byte) (transition.MultiTransition, bool) {
	if len(read) != m.tapeCount {
		return transition.MultiTransition{}, false
	}

	t, ok := m.transitions[transition.Key(state, read)]

	return t, ok
}

// IsValid re-checks the closure invariants I1-I4 against this already-built
// Machine. A Machine produced by MachineBuilder.Build always passes; this
// exists so the Engine's precondition check (spec §4.5) does not have to
// trust its caller blindly, e.g. if a Machine were assembled by hand.
func (m *Machine) IsValid() error {
	return validate(validationInput{
		tapeCount:     m.tapeCount,
		states:        m.states,
		inputAlphabet: m.inputAlphabet,
		tapeAlphabet:  m.tapeAlphabet,
		initialState:  m.initialState,
		initialSet:    true,
		acceptStates:  m.acceptStates,
		blank:         m.blank,
		transitions:   m.transitions,
	}).AsError()
}

// validationInput is the common view of a machine-in-progress (builder) or
// a finished Machine that the I1-I4 checks run against.
type validationInput struct {
	tapeCount     int
	states        map[string]struct{}
	inputAlphabet map[byte]struct{}
	tapeAlphabet  map[byte]struct{}
	initialState  string
	initialSet    bool
	acceptStates  map[string]struct{}
	blank         byte
	transitions   map[string]transition.MultiTransition
}

// validate runs the I1-I4 closure checks shared by MachineBuilder.Build and
// Machine.IsValid, collecting every violation instead of stopping at the
// first.
func validate(in validationInput) *ValidationErrors {
	verrs := &ValidationErrors{}

	if in.tapeCount < 1 {
		verrs.Append(ErrInvalidTapeCount)
	}

	if !in.initialSet {
		verrs.Append(ErrNoInitialState)
	} else if _, ok := in.states[in.initialState]; !ok {
		verrs.Append(fmt.Errorf("machine: initial state %q not in Q", in.initialState))
	}

	if _, ok := in.inputAlphabet[in.blank]; ok {
		verrs.Append(fmt.Errorf("%w: %q", ErrBlankInSigma, in.blank))
	}

	if _, ok := in.tapeAlphabet[in.blank]; !ok {
		verrs.Append(fmt.Errorf("machine: blank symbol %q not in tape alphabet", in.blank))
	}

	for sym := range in.inputAlphabet {
		if _, ok := in.tapeAlphabet[sym]; !ok {
			verrs.Append(fmt.Errorf("machine: input symbol %q not in tape alphabet", sym))
		}
	}

	for accept := range in.acceptStates {
		if _, ok := in.states[accept]; !ok {
			verrs.Append(fmt.Errorf("machine: accept state %q not in Q", accept))
		}
	}

	for _, t := range in.transitions {
		if _, ok := in.states[t.FromState]; !ok {
			verrs.Append(fmt.Errorf("machine: transition from unknown state %q", t.FromState))
		}

		if _, ok := in.states[t.ToState]; !ok {
			verrs.Append(fmt.Errorf("machine: transition to unknown state %q", t.ToState))
		}

		if t.TapeCount() != in.tapeCount {
			verrs.Append(fmt.Errorf("%w: state %q", ErrShapeMismatch, t.FromState))
		}

		for _, sym := range t.ReadSymbols {
			if _, ok := in.tapeAlphabet[sym]; !ok {
				verrs.Append(fmt.Errorf("machine: transition reads unknown symbol %q", sym))
			}
		}

		for _, sym := range t.WriteSymbols {
			if _, ok := in.tapeAlphabet[sym]; !ok {
				verrs.Append(fmt.Errorf("machine: transition writes unknown symbol %q", sym))
			}
		}

		for _, mv := range t.Movements {
			if !mv.IsValid() {
				verrs.Append(fmt.Errorf("machine: transition has invalid movement %v", mv))
			}
		}
	}

	return verrs
}
