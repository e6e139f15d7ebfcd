package state

// GameState represents the current phase of the flight loop
type GameState int

const (
	StateStandby GameState = iota
	StateIntro
	StateDialogue
	StateSpawn
	StateRespawn
	StatePlay
	StateDie
	StateWin
	StateGameOver

	stateCount
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateStandby:
		return "Standby"
	case StateIntro:
		return "Intro"
	case StateDialogue:
		return "Dialogue"
	case StateSpawn:
		return "Spawn"
	case StateRespawn:
		return "Respawn"
	case StatePlay:
		return "Play"
	case StateDie:
		return "Die"
	case StateWin:
		return "Win"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the declared states
func (s GameState) Valid() bool {
	return s >= StateStandby && s < stateCount
}

// IsTerminal reports whether no transitions leave s
func (s GameState) IsTerminal() bool {
	return s == StateWin || s == StateGameOver
}

// All returns every declared state in declaration order
func All() []GameState {
	states := make([]GameState, 0, stateCount)
	for s := StateStandby; s < stateCount; s++ {
		states = append(states, s)
	}
	return states
}
