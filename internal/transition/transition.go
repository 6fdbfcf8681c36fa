// Package transition defines the immutable δ-edge records shared by
// single-tape and multi-tape machines.
package transition

import (
	"errors"
	"fmt"

	"github.com/asphodex/tmsim/internal/movement"
)

// ErrShapeMismatch is returned when a MultiTransition's read/write/movement
// vectors do not share one common non-zero length.
var ErrShapeMismatch = errors.New("transition: read/write/movement vectors must share one non-zero length")

// MultiTransition is one δ edge of a k-tape machine: on (FromState,
// ReadSymbols) it moves to ToState, writing WriteSymbols and applying
// Movements, one entry per tape.
type MultiTransition struct {
	FromState    string
	ReadSymbols  []byte
	ToState      string
	WriteSymbols []byte
	Movements    []movement.Movement
}

// New builds a MultiTransition, rejecting malformed vectors: all three must
// share one common length, and that length must be at least 1 (I4).
func New(from string, read []byte, to string, write []byte, moves []movement.Movement) (MultiTransition, error) {
	k := len(read)
	if k == 0 || len(write) != k || len(moves) != k {
		return MultiTransition{}, fmt.Errorf("%w: got %d read, %d write, %d move", ErrShapeMismatch, len(read), len(write), len(moves))
	}

	return MultiTransition{
		FromState:    from,
		ReadSymbols:  append([]byte(nil), read...),
		ToState:      to,
		WriteSymbols: append([]byte(nil), write...),
		Movements:    append([]movement.Movement(nil), moves...),
	}, nil
}

// NewMono builds the k=1 special case from scalar fields.
func NewMono(from string, read byte, to string, write byte, move movement.Movement) MultiTransition {
	t, err := New(from, []byte{read}, to, []byte{write}, []movement.Movement{move})
	if err != nil {
		// unreachable: scalar inputs always produce matching length-1 vectors.
		panic(err)
	}

	return t
}

// TapeCount returns k, the number of tapes this transition operates over.
func (t MultiTransition) TapeCount() int {
	return len(t.ReadSymbols)
}

// IsApplicable reports whether t fires from state on the given read tuple.
func (t MultiTransition) IsApplicable(state string, read []byte) bool {
	if t.FromState != state || len(read) != len(t.ReadSymbols) {
		return false
	}

	for i, sym := range t.ReadSymbols {
		if read[i] != sym {
			return false
		}
	}

	return true
}

// Key returns the (state, read-tuple) lookup key as a string, used by
// Machine's transition index.
func (t MultiTransition) Key() string {
	return Key(t.FromState, t.ReadSymbols)
}

// Key computes the lookup key for a (state, read-tuple) pair.
func Key(state string, read []byte) string {
	buf := make([]byte, 0, len(state)+1+len(read))
	buf = append(buf, state...)
	buf = append(buf, '|')
	buf = append(buf, read...)

	return string(buf)
}

// Lift promotes a mono transition (acting on tape index target) into a
// k-tape MultiTransition that issues (read blank, write blank, STAY) on
// every other tape. This is a construction convenience for parsers that
// want to express a mono program against a multi-tape machine; it is never
// used as an execution pathway by the Engine.
func Lift(mono MultiTransition, target, k int, blank byte) (MultiTransition, error) {
	if mono.TapeCount() != 1 {
		return MultiTransition{}, fmt.Errorf("%w: Lift requires a mono (k=1) transition", ErrShapeMismatch)
	}

	if target < 0 || target >= k {
		return MultiTransition{}, fmt.Errorf("transition: lift target tape %d out of range [0,%d)", target, k)
	}

	read := make([]byte, k)
	write := make([]byte, k)
	moves := make([]movement.Movement, k)

	for i := 0; i < k; i++ {
		read[i] = blank
		write[i] = blank
		moves[i] = movement.Stay
	}

	read[target] = mono.ReadSymbols[0]
	write[target] = mono.WriteSymbols[0]
	moves[target] = mono.Movements[0]

	return New(mono.FromState, read, mono.ToState, write, moves)
}
