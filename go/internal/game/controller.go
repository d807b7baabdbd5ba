package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/chessclock/go/internal/clockutil"
	"github.com/mcdev12/chessclock/go/internal/display"
	"github.com/mcdev12/chessclock/go/internal/gpio"
	"github.com/mcdev12/chessclock/go/internal/models"
	"github.com/mcdev12/chessclock/go/internal/player"
	"github.com/rs/zerolog/log"
)

const (
	// TickInterval is how often the display is refreshed while a turn is
	// running and no button event arrives.
	TickInterval = 100 * time.Millisecond

	// Pre-game allowance steps, in minutes.
	pressStepMinutes = 1
	holdStepMinutes  = 5
)

// Clock is the interface we use for time operations.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) clockwork.Timer
}

// LEDs are the three indicator outputs, one per button.
type LEDs struct {
	Red    gpio.Output
	Yellow gpio.Output
	Blue   gpio.Output
}

// Options tune a controller. Zero values fall back to factory defaults.
type Options struct {
	Settings   player.Settings
	Row2Offset uint8
	Metrics    MetricsCollector
}

// Controller owns the game and every output. Nothing else may touch them, so
// no locking is needed: all mutation happens on the goroutine running Run.
type Controller struct {
	game       *Game
	yellowLED  gpio.Output
	sink       display.Sink
	clock      Clock
	row2Offset uint8
	metrics    MetricsCollector
	instanceID string // short ID for logging
}

// NewController creates a controller in PreGame with default allowances.
func NewController(sink display.Sink, leds LEDs, clock Clock, opts Options) *Controller {
	if opts.Settings == (player.Settings{}) {
		opts.Settings = player.DefaultSettings()
	}
	if opts.Row2Offset == 0 {
		opts.Row2Offset = display.DefaultRow2Offset
	}
	if opts.Metrics == nil {
		opts.Metrics = &NoOpMetricsCollector{}
	}

	c := &Controller{
		game: &Game{
			Phase: models.GamePhasePreGame,
			Red:   player.NewTimer(models.ColorRed, leds.Red, clock, opts.Settings),
			Blue:  player.NewTimer(models.ColorBlue, leds.Blue, clock, opts.Settings),
		},
		yellowLED:  leds.Yellow,
		sink:       sink,
		clock:      clock,
		row2Offset: opts.Row2Offset,
		metrics:    opts.Metrics,
		instanceID: uuid.New().String()[:8],
	}
	c.yellowLED.Low()
	return c
}

// Snapshot returns the current game state. Call it from the goroutine
// running Run, or while Run is not running.
func (c *Controller) Snapshot() Snapshot {
	return c.game.Snapshot()
}

// Run consumes events until ctx is done or events is closed. The display is
// refreshed on every iteration; while a turn is running the wait for the next
// event is raced against TickInterval so the countdown keeps moving.
//
// A display error is returned wrapped and is fatal to the caller.
func (c *Controller) Run(ctx context.Context, events <-chan models.ButtonEvent) error {
	log.Info().Str("instance", c.instanceID).Msg("controller started")

	if err := c.sink.Clear(); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}

	for {
		if err := c.refresh(); err != nil {
			return err
		}

		if c.game.Phase != models.GamePhaseActive {
			select {
			case ev, ok := <-events:
				if !ok {
					log.Info().Str("instance", c.instanceID).Msg("event channel closed")
					return nil
				}
				c.HandleEvent(ev)
			case <-ctx.Done():
				log.Info().Str("instance", c.instanceID).Msg("shutdown while idle")
				return nil
			}
			continue
		}

		timer := c.clock.NewTimer(TickInterval)
		select {
		case ev, ok := <-events:
			clockutil.StopAndDrain(timer)
			if !ok {
				log.Info().Str("instance", c.instanceID).Msg("event channel closed")
				return nil
			}
			c.HandleEvent(ev)
		case <-timer.Chan():
		case <-ctx.Done():
			clockutil.StopAndDrain(timer)
			log.Info().Str("instance", c.instanceID).Msg("shutdown during turn")
			return nil
		}
	}
}

// HandleEvent applies one button event to the game. Every (phase, event)
// pair not listed is a no-op.
func (c *Controller) HandleEvent(ev models.ButtonEvent) {
	g := c.game
	log.Debug().
		Str("instance", c.instanceID).
		Str("phase", g.Phase.String()).
		Str("event", ev.String()).
		Msg("handling button event")

	switch g.Phase {
	case models.GamePhasePreGame:
		switch ev {
		case models.Pressed(models.ColorRed):
			c.decrement(g.Red, pressStepMinutes)
		case models.Held(models.ColorRed):
			c.decrement(g.Red, holdStepMinutes)
		case models.Pressed(models.ColorBlue):
			c.decrement(g.Blue, pressStepMinutes)
		case models.Held(models.ColorBlue):
			c.decrement(g.Blue, holdStepMinutes)
		case models.Pressed(models.ColorYellow):
			c.setPhase(models.GamePhasePaused)
		}

	case models.GamePhasePaused:
		switch ev {
		case models.Pressed(models.ColorRed):
			c.startTurn(g.Blue)
			c.setPhase(models.GamePhaseActive)
		case models.Pressed(models.ColorBlue):
			c.startTurn(g.Red)
			c.setPhase(models.GamePhaseActive)
		case models.Held(models.ColorYellow):
			c.reset()
		}

	case models.GamePhaseActive:
		switch ev {
		case models.Pressed(models.ColorRed):
			c.endTurn(g.Red)
			c.startTurn(g.Blue)
		case models.Pressed(models.ColorBlue):
			c.endTurn(g.Blue)
			c.startTurn(g.Red)
		case models.Pressed(models.ColorYellow):
			c.endTurn(g.Red)
			c.endTurn(g.Blue)
			c.setPhase(models.GamePhasePaused)
		case models.Held(models.ColorYellow):
			c.endTurn(g.Red)
			c.endTurn(g.Blue)
			c.reset()
		}
	}
}

func (c *Controller) refresh() error {
	if err := display.Render(c.sink, c.row2Offset, c.game.Red.RemainingNow(), c.game.Blue.RemainingNow()); err != nil {
		return fmt.Errorf("refresh display: %w", err)
	}
	return nil
}

func (c *Controller) decrement(t *player.Timer, minutes int) {
	t.DecrementAllowance(minutes)
	log.Info().
		Str("instance", c.instanceID).
		Str("player", t.Color().String()).
		Str("allowance", player.FormatRemaining(t.RemainingNow())).
		Msg("allowance adjusted")
}

func (c *Controller) startTurn(t *player.Timer) {
	if t.Active() {
		return
	}
	t.StartTurn()
	log.Debug().Str("instance", c.instanceID).Str("player", t.Color().String()).Msg("turn started")
}

func (c *Controller) endTurn(t *player.Timer) {
	if !t.Active() {
		return
	}
	elapsed := t.EndTurn()
	c.metrics.RecordTurn(t.Color(), elapsed)

	remaining := t.RemainingNow()
	// Only the turn that crossed zero counts.
	if remaining < 0 && remaining+elapsed >= 0 {
		c.metrics.RecordOvertime(t.Color())
	}
	log.Debug().
		Str("instance", c.instanceID).
		Str("player", t.Color().String()).
		Dur("elapsed", elapsed).
		Str("remaining", player.FormatRemaining(remaining)).
		Msg("turn ended")
}

// setPhase moves the game to phase and keeps the Yellow LED in step: it is
// lit for the whole Paused phase and only then.
func (c *Controller) setPhase(phase models.GamePhase) {
	from := c.game.Phase
	c.game.Phase = phase
	c.yellowLED.Set(phase == models.GamePhasePaused)

	if from == phase {
		return
	}
	c.metrics.RecordPhaseChange(from, phase)
	log.Info().
		Str("instance", c.instanceID).
		Str("from", from.String()).
		Str("to", phase.String()).
		Msg("phase changed")
}

func (c *Controller) reset() {
	c.game.Red.Reset()
	c.game.Blue.Reset()
	c.setPhase(models.GamePhasePreGame)
	log.Info().Str("instance", c.instanceID).Msg("game reset")
}
