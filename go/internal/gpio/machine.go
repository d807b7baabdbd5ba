//go:build tinygo

package gpio

import (
	"context"
	"machine"
)

// Pin is a button line backed by a microcontroller pin with edge interrupts.
type Pin struct {
	pin       machine.Pin
	activeLow bool
	edges     chan struct{}
}

// NewPin configures pin as an input. Active-high buttons get a pull-down and
// active-low buttons a pull-up.
func NewPin(pin machine.Pin, activeLow bool) (*Pin, error) {
	mode := machine.PinInputPulldown
	if activeLow {
		mode = machine.PinInputPullup
	}
	pin.Configure(machine.PinConfig{Mode: mode})

	p := &Pin{pin: pin, activeLow: activeLow, edges: make(chan struct{}, 1)}
	err := pin.SetInterrupt(machine.PinRising|machine.PinFalling, func(machine.Pin) {
		// Interrupt context: never block.
		select {
		case p.edges <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pin) IsClosed() bool {
	return p.pin.Get() != p.activeLow
}

func (p *Pin) WaitClosed(ctx context.Context) error {
	return p.wait(ctx, true)
}

func (p *Pin) WaitOpen(ctx context.Context) error {
	return p.wait(ctx, false)
}

func (p *Pin) wait(ctx context.Context, closed bool) error {
	for p.IsClosed() != closed {
		select {
		case <-p.edges:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// LED is an output pin.
type LED struct {
	pin machine.Pin
}

func NewLED(pin machine.Pin) LED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return LED{pin: pin}
}

func (l LED) High()       { l.pin.High() }
func (l LED) Low()        { l.pin.Low() }
func (l LED) Set(on bool) { l.pin.Set(on) }
