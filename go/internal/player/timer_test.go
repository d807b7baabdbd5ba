package player

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/chessclock/go/internal/gpio"
	"github.com/mcdev12/chessclock/go/internal/models"
)

func newTestTimer(t *testing.T) (*Timer, *clockwork.FakeClock, *gpio.SimOutput) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	led := &gpio.SimOutput{}
	return NewTimer(models.ColorRed, led, clock, DefaultSettings()), clock, led
}

func TestNewTimerStartsInactiveWithDefaultAllowance(t *testing.T) {
	timer, _, led := newTestTimer(t)

	if timer.Active() {
		t.Fatalf("expected new timer to be inactive")
	}
	if got := timer.RemainingNow(); got != DefaultAllowance {
		t.Fatalf("remaining = %v, want %v", got, DefaultAllowance)
	}
	if led.Level() {
		t.Fatalf("expected LED low")
	}
}

func TestEndTurnChargesElapsedTime(t *testing.T) {
	for _, elapsed := range []time.Duration{0, time.Millisecond, 3 * time.Second, 11 * time.Minute} {
		t.Run(elapsed.String(), func(t *testing.T) {
			timer, clock, led := newTestTimer(t)
			before := timer.RemainingNow()

			timer.StartTurn()
			if !timer.Active() || !led.Level() {
				t.Fatalf("expected active timer with LED high")
			}
			clock.Advance(elapsed)

			running := timer.RemainingNow()
			charged := timer.EndTurn()
			after := timer.RemainingNow()

			if charged != elapsed {
				t.Errorf("charged = %v, want %v", charged, elapsed)
			}
			if after != running {
				t.Errorf("remaining after EndTurn = %v, while running = %v", after, running)
			}
			if after != before-elapsed {
				t.Errorf("remaining = %v, want %v", after, before-elapsed)
			}
			if timer.Active() || led.Level() {
				t.Errorf("expected inactive timer with LED low")
			}
		})
	}
}

func TestElapsedIsWholeMilliseconds(t *testing.T) {
	timer, clock, _ := newTestTimer(t)

	timer.StartTurn()
	clock.Advance(1500 * time.Microsecond)
	timer.EndTurn()

	if got, want := timer.RemainingNow(), DefaultAllowance-time.Millisecond; got != want {
		t.Fatalf("remaining = %v, want %v", got, want)
	}
}

func TestStartAndEndTurnAreIdempotent(t *testing.T) {
	timer, clock, _ := newTestTimer(t)

	if charged := timer.EndTurn(); charged != 0 {
		t.Fatalf("EndTurn on inactive timer charged %v", charged)
	}

	timer.StartTurn()
	clock.Advance(2 * time.Second)
	timer.StartTurn() // must not move the activation instant
	clock.Advance(time.Second)
	timer.EndTurn()

	if got, want := timer.RemainingNow(), DefaultAllowance-3*time.Second; got != want {
		t.Fatalf("remaining = %v, want %v", got, want)
	}
}

func TestRemainingGoesNegativeOnOvertime(t *testing.T) {
	timer, clock, _ := newTestTimer(t)

	timer.StartTurn()
	clock.Advance(DefaultAllowance + 65*time.Second)

	if got := timer.RemainingNow(); got != -65*time.Second {
		t.Fatalf("running remaining = %v, want -65s", got)
	}
	timer.EndTurn()
	if got := FormatRemaining(timer.RemainingNow()); got != "-01:05" {
		t.Fatalf("formatted = %q, want -01:05", got)
	}
}

func TestDecrementAllowanceWrapsToMaximum(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Duration
		minutes int
		want    time.Duration
	}{
		{name: "one minute", start: 10 * time.Minute, minutes: 1, want: 9 * time.Minute},
		{name: "five minutes", start: 10 * time.Minute, minutes: 5, want: 5 * time.Minute},
		{name: "equal wraps", start: 5 * time.Minute, minutes: 5, want: MaxAllowance},
		{name: "below wraps", start: 3 * time.Minute, minutes: 5, want: MaxAllowance},
		{name: "just above", start: 5*time.Minute + time.Millisecond, minutes: 5, want: time.Millisecond},
		{name: "one minute wraps", start: time.Minute, minutes: 1, want: MaxAllowance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer, _, _ := newTestTimer(t)
			timer.remaining = tt.start

			timer.DecrementAllowance(tt.minutes)

			if got := timer.RemainingNow(); got != tt.want {
				t.Fatalf("remaining = %v, want %v", got, tt.want)
			}
			if got := timer.RemainingNow(); got > MaxAllowance {
				t.Fatalf("remaining %v exceeds maximum", got)
			}
		})
	}
}

func TestDecrementAllowanceCyclesThroughRange(t *testing.T) {
	timer, _, _ := newTestTimer(t)

	// 10 -> 5 -> wrap to 60 -> 55
	timer.DecrementAllowance(5)
	timer.DecrementAllowance(5)
	if got := timer.RemainingNow(); got != MaxAllowance {
		t.Fatalf("remaining = %v, want %v", got, MaxAllowance)
	}
	timer.DecrementAllowance(5)
	if got := timer.RemainingNow(); got != MaxAllowance-5*time.Minute {
		t.Fatalf("remaining = %v, want %v", got, MaxAllowance-5*time.Minute)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	timer, clock, led := newTestTimer(t)

	timer.DecrementAllowance(1)
	timer.StartTurn()
	clock.Advance(time.Minute)
	timer.Reset()

	if timer.Active() || led.Level() {
		t.Fatalf("expected reset timer to be inactive with LED low")
	}
	if timer.activatedAt != nil {
		t.Fatalf("expected activation instant cleared")
	}
	if got := timer.RemainingNow(); got != DefaultAllowance {
		t.Fatalf("remaining = %v, want %v", got, DefaultAllowance)
	}
}

func TestCustomSettings(t *testing.T) {
	clock := clockwork.NewFakeClock()
	settings := Settings{DefaultAllowance: 3 * time.Minute, MaxAllowance: 15 * time.Minute}
	timer := NewTimer(models.ColorBlue, &gpio.SimOutput{}, clock, settings)

	if got := timer.RemainingNow(); got != 3*time.Minute {
		t.Fatalf("remaining = %v, want 3m", got)
	}
	timer.DecrementAllowance(5)
	if got := timer.RemainingNow(); got != 15*time.Minute {
		t.Fatalf("remaining = %v, want 15m", got)
	}
	if timer.Color() != models.ColorBlue {
		t.Fatalf("color = %v, want Blue", timer.Color())
	}
}
