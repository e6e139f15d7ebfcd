package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/starfall/internal/application/state"
)

func TestForOutcome(t *testing.T) {
	tests := []struct {
		out    state.Outcome
		want   ID
		wantOK bool
	}{
		{state.OutcomeNone, 0, false},
		{state.OutcomeGameOver, GameOver, true},
		{state.OutcomeOutOfFuel, OutOfFuel, true},
		{state.OutcomeVictory, Victory, true},
		{state.Outcome(42), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.out.String(), func(t *testing.T) {
			id, ok := ForOutcome(tt.out)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestID_String(t *testing.T) {
	assert.Equal(t, "Flight", Flight.String())
	assert.Equal(t, "OutOfFuel", OutOfFuel.String())
	assert.Equal(t, "Unknown", ID(99).String())
}
