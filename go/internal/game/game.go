package game

import (
	"time"

	"github.com/mcdev12/chessclock/go/internal/models"
	"github.com/mcdev12/chessclock/go/internal/player"
)

// Game is the phase plus both player timers. It is created once and reset
// in place.
type Game struct {
	Phase models.GamePhase
	Red   *player.Timer
	Blue  *player.Timer
}

// PlayerSnapshot is a point-in-time view of one timer.
type PlayerSnapshot struct {
	Remaining time.Duration
	Active    bool
}

// Snapshot is a point-in-time view of the game.
type Snapshot struct {
	Phase models.GamePhase
	Red   PlayerSnapshot
	Blue  PlayerSnapshot
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Phase: g.Phase,
		Red:   PlayerSnapshot{Remaining: g.Red.RemainingNow(), Active: g.Red.Active()},
		Blue:  PlayerSnapshot{Remaining: g.Blue.RemainingNow(), Active: g.Blue.Active()},
	}
}
