package configuration_test

import (
	"testing"

	"github.com/asphodex/tmsim/internal/configuration"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_ResetAndReadTuple(t *testing.T) {
	t.Parallel()

	c := configuration.New("q0", []byte{' ', ' '})
	c.Reset("q0", "ab")

	assert.Equal(t, []byte{'a', ' '}, c.ReadTuple())
	assert.Equal(t, uint64(0), c.StepCount)
}

func TestConfiguration_Compact_Mono(t *testing.T) {
	t.Parallel()

	c := configuration.New("q0", []byte{' '})
	c.Reset("q0", "ab")

	assert.Equal(t, "q0|0|ab", c.Compact())
}

func TestConfiguration_Compact_Multi(t *testing.T) {
	t.Parallel()

	c := configuration.New("q0", []byte{' ', ' '})
	c.Reset("q0", "ab")
	c.Tapes[1].Reset("xy")
	c.Tapes[1].SetHeadPosition(1)

	assert.Equal(t, "q0|0,1|ab|xy", c.Compact())
}

func TestConfiguration_Compact_TrailingBlankIgnored(t *testing.T) {
	t.Parallel()

	// Two configurations differing only in a larger trailing blank region
	// on the underlying tape (never reached by the head, never written)
	// must fingerprint identically: Content() never observes unwritten
	// trailing cells.
	a := configuration.New("q0", []byte{' '})
	a.Reset("q0", "x")

	b := configuration.New("q0", []byte{' '})
	b.Reset("q0", "x")
	b.Tapes[0].SetHeadPosition(50)
	b.Tapes[0].SetHeadPosition(0)

	assert.Equal(t, a.Compact(), b.Compact())
}

func TestConfiguration_Compact_DiffersOnState(t *testing.T) {
	t.Parallel()

	a := configuration.New("q0", []byte{' '})
	a.Reset("q0", "x")

	b := configuration.New("q1", []byte{' '})
	b.Reset("q1", "x")

	assert.NotEqual(t, a.Compact(), b.Compact())
}

func TestConfiguration_Clone_Independent(t *testing.T) {
	t.Parallel()

	c := configuration.New("q0", []byte{' '})
	c.Reset("q0", "ab")

	clone := c.Clone()
	clone.State = "q9"
	clone.Tapes[0].Write('Z')

	require.NotEqual(t, c.State, clone.State)

	diff := cmp.Diff(c.ReadTuple(), clone.ReadTuple())
	assert.NotEmpty(t, diff, "read tuples should diverge after cloning and mutating the clone")
	assert.Equal(t, "ab", c.Tapes[0].Content())
	assert.Equal(t, "Zb", clone.Tapes[0].Content())
}
