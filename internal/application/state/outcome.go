package state

// Outcome is a terminal result raised by a tick. The driver reacts to it
// (usually by loading another scene); the flow core never loads scenes itself.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeGameOver
	OutcomeOutOfFuel
	OutcomeVictory
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeGameOver:
		return "GameOver"
	case OutcomeOutOfFuel:
		return "OutOfFuel"
	case OutcomeVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}
