package models

// GamePhase defines where the clock is in its lifecycle.
type GamePhase string

const (
	GamePhasePreGame GamePhase = "PRE_GAME"
	GamePhaseActive  GamePhase = "ACTIVE"
	GamePhasePaused  GamePhase = "PAUSED"
)

func (p GamePhase) String() string {
	return string(p)
}
