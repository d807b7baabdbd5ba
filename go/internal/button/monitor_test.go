package button

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/chessclock/go/internal/events"
	"github.com/mcdev12/chessclock/go/internal/gpio"
	"github.com/mcdev12/chessclock/go/internal/models"
)

type harness struct {
	t      *testing.T
	ctx    context.Context
	clock  *clockwork.FakeClock
	line   *gpio.SimInput
	events *events.Channel
	done   chan error
	cancel context.CancelFunc
}

func startMonitor(t *testing.T, color models.Color) *harness {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	h := &harness{
		t:      t,
		ctx:    ctx,
		clock:  clockwork.NewFakeClock(),
		line:   gpio.NewSimInput(),
		events: events.NewChannel(),
		done:   make(chan error, 1),
		cancel: cancel,
	}
	m := NewMonitor(h.line, color, h.events, h.clock)
	go func() {
		h.done <- m.Run(ctx)
	}()
	t.Cleanup(h.stop)
	return h
}

func (h *harness) stop() {
	h.cancel()
	select {
	case err := <-h.done:
		if err != nil {
			h.t.Errorf("Run returned error on shutdown: %v", err)
		}
	case <-time.After(time.Second):
		h.t.Errorf("monitor did not stop")
	}
}

// advanceNextTimer waits for the monitor to arm a timer, then moves the clock.
func (h *harness) advanceNextTimer(d time.Duration) {
	h.t.Helper()
	if err := h.clock.BlockUntilContext(h.ctx, 1); err != nil {
		h.t.Fatalf("monitor never armed a timer: %v", err)
	}
	h.clock.Advance(d)
}

func (h *harness) expectEvent(want models.ButtonEvent) {
	h.t.Helper()
	select {
	case got := <-h.events.Events():
		if got != want {
			h.t.Fatalf("event = %v, want %v", got, want)
		}
	case <-time.After(time.Second):
		h.t.Fatalf("timed out waiting for %v", want)
	}
}

func (h *harness) expectNoEvent() {
	h.t.Helper()
	select {
	case got := <-h.events.Events():
		h.t.Fatalf("unexpected event %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTapEmitsSinglePressed(t *testing.T) {
	h := startMonitor(t, models.ColorRed)

	h.line.Press()
	h.advanceNextTimer(DebounceDelay)
	// Hold timer is armed; release before it elapses.
	if err := h.clock.BlockUntilContext(h.ctx, 1); err != nil {
		t.Fatalf("hold timer never armed: %v", err)
	}
	h.line.Release()

	h.expectEvent(models.Pressed(models.ColorRed))
	h.advanceNextTimer(DebounceDelay)
	h.expectNoEvent()
}

func TestPressedOnlyAfterRelease(t *testing.T) {
	h := startMonitor(t, models.ColorBlue)

	h.line.Press()
	h.advanceNextTimer(DebounceDelay)
	h.advanceNextTimer(HoldThreshold - time.Millisecond)
	h.expectNoEvent()

	h.line.Release()
	h.expectEvent(models.Pressed(models.ColorBlue))
}

func TestHoldEmitsRepeatingHeldAndNoPressed(t *testing.T) {
	h := startMonitor(t, models.ColorYellow)

	h.line.Press()
	h.advanceNextTimer(DebounceDelay)
	h.advanceNextTimer(HoldThreshold)
	h.expectEvent(models.Held(models.ColorYellow))

	h.advanceNextTimer(HoldThreshold)
	h.expectEvent(models.Held(models.ColorYellow))

	h.line.Release()
	h.expectNoEvent()
}

func TestNoEventsWithoutContact(t *testing.T) {
	h := startMonitor(t, models.ColorRed)

	h.clock.Advance(10 * HoldThreshold)
	h.expectNoEvent()
}

func TestSecondTapAfterReleaseDebounce(t *testing.T) {
	h := startMonitor(t, models.ColorRed)

	for i := 0; i < 2; i++ {
		h.line.Press()
		h.advanceNextTimer(DebounceDelay)
		if err := h.clock.BlockUntilContext(h.ctx, 1); err != nil {
			t.Fatalf("hold timer never armed: %v", err)
		}
		h.line.Release()
		h.expectEvent(models.Pressed(models.ColorRed))
		h.advanceNextTimer(DebounceDelay)
	}
}

func TestContactChatterYieldsSinglePressed(t *testing.T) {
	h := startMonitor(t, models.ColorRed)

	// Bounce while the closing edge settles.
	h.line.Press()
	if err := h.clock.BlockUntilContext(h.ctx, 1); err != nil {
		t.Fatalf("settle timer never armed: %v", err)
	}
	h.line.Release()
	h.line.Press()
	h.clock.Advance(DebounceDelay)

	if err := h.clock.BlockUntilContext(h.ctx, 1); err != nil {
		t.Fatalf("hold timer never armed: %v", err)
	}
	h.line.Release()
	h.expectEvent(models.Pressed(models.ColorRed))

	// Bounce while the opening edge settles.
	if err := h.clock.BlockUntilContext(h.ctx, 1); err != nil {
		t.Fatalf("release timer never armed: %v", err)
	}
	h.line.Press()
	h.line.Release()
	h.clock.Advance(DebounceDelay)

	h.expectNoEvent()
	h.clock.Advance(2 * HoldThreshold)
	h.expectNoEvent()
}

func TestHeldBlocksUntilControllerReceives(t *testing.T) {
	h := startMonitor(t, models.ColorBlue)
	// Occupy the only slot.
	if err := h.events.Send(h.ctx, models.Pressed(models.ColorRed)); err != nil {
		t.Fatalf("prefill: %v", err)
	}

	h.line.Press()
	h.advanceNextTimer(DebounceDelay)
	h.advanceNextTimer(HoldThreshold)

	// The monitor is stuck sending Held; the queued event is still first.
	h.expectEvent(models.Pressed(models.ColorRed))
	h.expectEvent(models.Held(models.ColorBlue))
}

type failingInput struct {
	err error
}

func (f failingInput) WaitClosed(context.Context) error { return f.err }
func (f failingInput) WaitOpen(context.Context) error   { return f.err }
func (f failingInput) IsClosed() bool                   { return false }

func TestRunWrapsLineErrors(t *testing.T) {
	errLine := errors.New("pin not configured")
	m := NewMonitor(failingInput{err: errLine}, models.ColorYellow, events.NewChannel(), clockwork.NewFakeClock())

	err := m.Run(context.Background())
	if !errors.Is(err, errLine) {
		t.Fatalf("expected wrapped line error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Yellow") {
		t.Fatalf("expected error to name the button, got %q", err)
	}
}
