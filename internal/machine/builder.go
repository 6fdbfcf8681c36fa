package machine

import (
	"fmt"

	"github.com/asphodex/tmsim/internal/transition"
)

// MachineBuilder incrementally constructs a Machine, enforcing the closure
// invariants (I1-I4) as mutations are applied and again, exhaustively, in
// Build.
//
// Per DESIGN.md's resolution of the spec's first open question, state
// references in AddTransition are always auto-declared (the multi-tape
// discipline), for both mono and multi machines.
type MachineBuilder struct {
	tapeCount     int
	states        map[string]struct{}
	inputAlphabet map[byte]struct{}
	tapeAlphabet  map[byte]struct{}
	initialSet    bool
	initialState  string
	acceptStates  map[string]struct{}
	blank         byte
	blankSet      bool
	transitions   map[string]transition.MultiTransition
}

// NewMachineBuilder starts a builder for a machine with tapeCount tapes.
// tapeCount must be >= 1; a smaller value is rejected at Build time.
func NewMachineBuilder(tapeCount int) *MachineBuilder {
	return &MachineBuilder{
		tapeCount:     tapeCount,
		states:        make(map[string]struct{}),
		inputAlphabet: make(map[byte]struct{}),
		tapeAlphabet:  make(map[byte]struct{}),
		acceptStates:  make(map[string]struct{}),
		transitions:   make(map[string]transition.MultiTransition),
	}
}

// AddState registers a state name.
func (b *MachineBuilder) AddState(name string) *MachineBuilder {
	b.states[name] = struct{}{}
	return b
}

// AddInputSymbol registers an input symbol in Sigma. It is an error to add
// the blank symbol to Sigma (I1); the check is deferred until the blank is
// known, so callers who add symbols before SetBlank get the check at Build
// time via IsValid instead of here.
func (b *MachineBuilder) AddInputSymbol(sym byte) (*MachineBuilder, error) {
	if b.blankSet && sym == b.blank {
		return b, fmt.Errorf("%w: %q", ErrBlankInSigma, sym)
	}

	b.inputAlphabet[sym] = struct{}{}
	b.tapeAlphabet[sym] = struct{}{}

	return b, nil
}

// AddTapeSymbol registers a tape symbol in Gamma without adding it to Sigma.
func (b *MachineBuilder) AddTapeSymbol(sym byte) *MachineBuilder {
	b.tapeAlphabet[sym] = struct{}{}
	return b
}

// SetInitialState sets q0, auto-inserting it into Q.
func (b *MachineBuilder) SetInitialState(name string) *MachineBuilder {
	b.initialSet = true
	b.initialState = name
	b.states[name] = struct{}{}

	return b
}

// AddAcceptState adds a state to F, auto-inserting it into Q.
func (b *MachineBuilder) AddAcceptState(name string) *MachineBuilder {
	b.acceptStates[name] = struct{}{}
	b.states[name] = struct{}{}

	return b
}

// SetBlank sets the blank symbol and inserts it into Gamma. Per DESIGN.md's
// resolution of the spec's second open question, redefining the blank after
// any transition has been added is forbidden.
func (b *MachineBuilder) SetBlank(sym byte) error {
	if len(b.transitions) > 0 {
		return ErrBlankLocked
	}

	b.blank = sym
	b.blankSet = true
	b.tapeAlphabet[sym] = struct{}{}

	return nil
}

// AddTransition adds one delta edge, auto-declaring its states and
// read/write symbols (I1-I2 become a Build-time check; see IsValid).
// It rejects a duplicate (state, read-tuple) key (I3) and a tuple whose
// length disagrees with the builder's tape count (I4).
func (b *MachineBuilder) AddTransition(t transition.MultiTransition) error {
	if t.TapeCount() != b.tapeCount {
		return fmt.Errorf("%w: transition has %d tapes, machine has %d", ErrShapeMismatch, t.TapeCount(), b.tapeCount)
	}

	key := t.Key()
	if _, exists := b.transitions[key]; exists {
		return fmt.Errorf("%w: state %q, read %q", ErrDuplicateTransition, t.FromState, t.ReadSymbols)
	}

	b.states[t.FromState] = struct{}{}
	b.states[t.ToState] = struct{}{}

	for _, sym := range t.ReadSymbols {
		b.tapeAlphabet[sym] = struct{}{}
	}

	for _, sym := range t.WriteSymbols {
		b.tapeAlphabet[sym] = struct{}{}
	}

	b.transitions[key] = t

	return nil
}

// Build validates the accumulated definition against I1-I4 and, if it
// passes, returns an immutable Machine. All violations are reported
// together via ValidationErrors.
func (b *MachineBuilder) Build() (*Machine, error) {
	verrs := validate(validationInput{
		tapeCount:     b.tapeCount,
		states:        b.states,
		inputAlphabet: b.inputAlphabet,
		tapeAlphabet:  b.tapeAlphabet,
		initialState:  b.initialState,
		initialSet:    b.initialSet,
		acceptStates:  b.acceptStates,
		blank:         b.blank,
		transitions:   b.transitions,
	})

	if err := verrs.AsError(); err != nil {
		return nil, err
	}

	return b.toMachine(), nil
}

func (b *MachineBuilder) toMachine() *Machine {
	states := make(map[string]struct{}, len(b.states))
	for s := range b.states {
		states[s] = struct{}{}
	}

	inputAlphabet := make(map[byte]struct{}, len(b.inputAlphabet))
	for s := range b.inputAlphabet {
		inputAlphabet[s] = struct{}{}
	}

	tapeAlphabet := make(map[byte]struct{}, len(b.tapeAlphabet))
	for s := range b.tapeAlphabet {
		tapeAlphabet[s] = struct{}{}
	}

	accept := make(map[string]struct{}, len(b.acceptStates))
	for s := range b.acceptStates {
		accept[s] = struct{}{}
	}

	transitions := make(map[string]transition.MultiTransition, len(b.transitions))
	for k, t := range b.transitions {
		transitions[k] = t
	}

	return &Machine{
		tapeCount:     b.tapeCount,
		states:        states,
		inputAlphabet: inputAlphabet,
		tapeAlphabet:  tapeAlphabet,
		initialState:  b.initialState,
		acceptStates:  accept,
		blank:         b.blank,
		transitions:   transitions,
	}
}
