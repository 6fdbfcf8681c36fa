package movement_test

import (
	"testing"

	"github.com/asphodex/tmsim/internal/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovement_String(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name string
		m    movement.Movement
		want string
	}{
		{"left", movement.Left, "L"},
		{"right", movement.Right, "R"},
		{"stay", movement.Stay, "S"},
		{"invalid", movement.Movement(7), "Movement(7)"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.m.String())
		})
	}
}

func TestMovement_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, movement.Left.IsValid())
	assert.True(t, movement.Right.IsValid())
	assert.True(t, movement.Stay.IsValid())
	assert.False(t, movement.Movement(2).IsValid())
}

func TestParse(t *testing.T) {
	t.Parallel()

	tt := []struct {
		token string
		want  movement.Movement
		ok    bool
	}{
		{"L", movement.Left, true},
		{"l", movement.Left, true},
		{"R", movement.Right, true},
		{"r", movement.Right, true},
		{"S", movement.Stay, true},
		{"s", movement.Stay, true},
		{"X", movement.Stay, false},
		{"", movement.Stay, false},
	}

	for _, tc := range tt {
		t.Run(tc.token, func(t *testing.T) {
			t.Parallel()

			got, ok := movement.Parse(tc.token)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
