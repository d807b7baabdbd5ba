package player

import (
	"time"

	"github.com/mcdev12/chessclock/go/internal/gpio"
	"github.com/mcdev12/chessclock/go/internal/models"
)

const (
	DefaultAllowance = 10 * time.Minute
	MaxAllowance     = 60 * time.Minute
)

// Clock is the subset of clockwork.Clock a timer reads.
type Clock interface {
	Now() time.Time
}

// Settings are the allowance bounds used by Reset and DecrementAllowance.
type Settings struct {
	DefaultAllowance time.Duration
	MaxAllowance     time.Duration
}

// DefaultSettings returns the factory allowance bounds.
func DefaultSettings() Settings {
	return Settings{DefaultAllowance: DefaultAllowance, MaxAllowance: MaxAllowance}
}

// Timer is one player's countdown. Remaining time is signed and may go
// negative once a turn overruns.
//
// activatedAt is non-nil iff active, and the LED is high iff active.
type Timer struct {
	color    models.Color
	led      gpio.Output
	clock    Clock
	settings Settings

	remaining   time.Duration
	active      bool
	activatedAt *time.Time
}

// NewTimer creates an inactive timer holding the default allowance.
func NewTimer(color models.Color, led gpio.Output, clock Clock, settings Settings) *Timer {
	t := &Timer{
		color:    color,
		led:      led,
		clock:    clock,
		settings: settings,
	}
	t.Reset()
	return t
}

func (t *Timer) Color() models.Color {
	return t.color
}

func (t *Timer) Active() bool {
	return t.active
}

// StartTurn activates the timer and raises the LED. No-op if already active.
func (t *Timer) StartTurn() {
	if t.active {
		return
	}
	now := t.clock.Now()
	t.activatedAt = &now
	t.active = true
	t.led.High()
}

// EndTurn charges the time spent since StartTurn against the allowance and
// lowers the LED. It returns the time charged; zero when already inactive.
func (t *Timer) EndTurn() time.Duration {
	if !t.active {
		return 0
	}
	elapsed := t.elapsed()
	t.remaining -= elapsed
	t.activatedAt = nil
	t.active = false
	t.led.Low()
	return elapsed
}

// RemainingNow reports the remaining time including any running turn.
func (t *Timer) RemainingNow() time.Duration {
	if !t.active {
		return t.remaining
	}
	return t.remaining - t.elapsed()
}

// DecrementAllowance takes minutes off the allowance during pre-game setup.
// An allowance of minutes or less rotates back to the maximum instead of
// clamping.
func (t *Timer) DecrementAllowance(minutes int) {
	step := time.Duration(minutes) * time.Minute
	if t.remaining > step {
		t.remaining -= step
		return
	}
	t.remaining = t.settings.MaxAllowance
}

// Reset restores the default allowance and stops the timer.
func (t *Timer) Reset() {
	t.remaining = t.settings.DefaultAllowance
	t.active = false
	t.activatedAt = nil
	t.led.Low()
}

// elapsed is whole milliseconds since activation.
func (t *Timer) elapsed() time.Duration {
	return t.clock.Now().Sub(*t.activatedAt).Truncate(time.Millisecond)
}
