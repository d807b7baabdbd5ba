// Package button turns a bouncing contact into Pressed and Held events.
package button

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/chessclock/go/internal/clockutil"
	"github.com/mcdev12/chessclock/go/internal/events"
	"github.com/mcdev12/chessclock/go/internal/gpio"
	"github.com/mcdev12/chessclock/go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// DebounceDelay is the quiet period after every edge before the line is
	// trusted again.
	DebounceDelay = 20 * time.Millisecond
	// HoldThreshold separates a tap from a hold. Held repeats at this
	// interval while the contact stays closed.
	HoldThreshold = time.Second
)

// Clock is the subset of clockwork.Clock the monitor waits on.
type Clock interface {
	NewTimer(d time.Duration) clockwork.Timer
}

// Monitor watches a single button. It shares no state with other monitors.
type Monitor struct {
	line   gpio.Input
	color  models.Color
	sender events.Sender
	clock  Clock
}

func NewMonitor(line gpio.Input, color models.Color, sender events.Sender, clock Clock) *Monitor {
	return &Monitor{
		line:   line,
		color:  color,
		sender: sender,
		clock:  clock,
	}
}

// Run watches the line until ctx is done. A short tap yields exactly one
// Pressed, a sustained press one or more Held, never both.
func (m *Monitor) Run(ctx context.Context) error {
	log.Debug().Str("button", m.color.String()).Msg("button monitor started")

	for {
		if err := m.line.WaitClosed(ctx); err != nil {
			return m.exit(ctx, err, "wait for press")
		}
		if err := m.sleep(ctx, DebounceDelay); err != nil {
			return m.exit(ctx, err, "debounce press")
		}

		if err := m.pressOrHold(ctx); err != nil {
			return m.exit(ctx, err, "classify press")
		}

		if err := m.sleep(ctx, DebounceDelay); err != nil {
			return m.exit(ctx, err, "debounce release")
		}
	}
}

// pressOrHold races the release of the contact against the hold threshold
// and returns once the line is open again.
func (m *Monitor) pressOrHold(ctx context.Context) error {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	released := make(chan error, 1)
	go func() {
		released <- m.line.WaitOpen(raceCtx)
	}()

	held := false
	for {
		timer := m.clock.NewTimer(HoldThreshold)
		select {
		case err := <-released:
			clockutil.StopAndDrain(timer)
			if err != nil {
				return err
			}
			if held {
				return nil
			}
			return m.emit(ctx, models.Pressed(m.color))
		case <-timer.Chan():
			held = true
			if err := m.emit(ctx, models.Held(m.color)); err != nil {
				return err
			}
		case <-ctx.Done():
			clockutil.StopAndDrain(timer)
			return ctx.Err()
		}
	}
}

// emit blocks until the controller has room for ev.
func (m *Monitor) emit(ctx context.Context, ev models.ButtonEvent) error {
	if err := m.sender.Send(ctx, ev); err != nil {
		return err
	}
	log.Debug().Str("button", m.color.String()).Str("action", string(ev.Action)).Msg("button event sent")
	return nil
}

func (m *Monitor) sleep(ctx context.Context, d time.Duration) error {
	timer := m.clock.NewTimer(d)
	select {
	case <-timer.Chan():
		return nil
	case <-ctx.Done():
		clockutil.StopAndDrain(timer)
		return ctx.Err()
	}
}

// exit maps cancellation to a clean shutdown and wraps anything else.
func (m *Monitor) exit(ctx context.Context, err error, step string) error {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		log.Debug().Str("button", m.color.String()).Msg("button monitor stopped")
		return nil
	}
	return fmt.Errorf("%s button: %s: %w", m.color, step, err)
}
