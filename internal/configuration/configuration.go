// Package configuration represents one instantaneous description of a
// machine mid-execution: current state, tape(s), and step counter, plus the
// canonical fingerprint used for loop detection.
package configuration

import (
	"strconv"
	"strings"

	"github.com/asphodex/tmsim/internal/tape"
)

// Configuration is (current state, tapes, step count). The zero value is
// not usable; construct with New.
type Configuration struct {
	State     string
	Tapes     []*tape.Tape
	StepCount uint64
}

// New builds a Configuration with one tape per blank symbol given, all
// tapes starting blank, head at 0.
func New(state string, blanks []byte) *Configuration {
	tapes := make([]*tape.Tape, len(blanks))
	for i, blank := range blanks {
		tapes[i] = tape.New(blank)
	}

	return &Configuration{
		State: state,
		Tapes: tapes,
	}
}

// Reset sets the current state, places word on the first tape (every other
// tape is blanked), and zeros the step counter.
func (c *Configuration) Reset(initialState string, word string) {
	c.State = initialState
	c.StepCount = 0

	for i, t := range c.Tapes {
		if i == 0 {
			t.Reset(word)
		} else {
			t.Reset("")
		}
	}
}

// ReadTuple returns the vector of Read() across every tape, in tape order.
func (c *Configuration) ReadTuple() []byte {
	read := make([]byte, len(c.Tapes))
	for i, t := range c.Tapes {
		read[i] = t.Read()
	}

	return read
}

// Clone deep-copies the configuration, including every tape, for
// independent trace snapshotting (spec's "configuration copying for trace"
// note: sharing tape storage with the live configuration would be wrong).
func (c *Configuration) Clone() *Configuration {
	tapes := make([]*tape.Tape, len(c.Tapes))
	for i, t := range c.Tapes {
		tapes[i] = t.Clone()
	}

	return &Configuration{
		State:     c.State,
		Tapes:     tapes,
		StepCount: c.StepCount,
	}
}

// Compact returns the canonical fingerprint: equal for two configurations
// iff they are observationally equal for the purpose of step transitions.
// Mono form: "<state>|<head>|<content>". Multi form:
// "<state>|<h1>,<h2>,...,<hk>|<c1>|<c2>|...|<ck>".
func (c *Configuration) Compact() string {
	var sb strings.Builder

	sb.WriteString(c.State)
	sb.WriteByte('|')

	for i, t := range c.Tapes {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(strconv.Itoa(t.HeadPosition()))
	}

	for _, t := range c.Tapes {
		sb.WriteByte('|')
		sb.WriteString(t.Content())
	}

	return sb.String()
}
