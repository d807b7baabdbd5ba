package models

import "fmt"

// ButtonAction defines what a button monitor observed.
type ButtonAction string

const (
	ButtonPressed ButtonAction = "PRESSED"
	ButtonHeld    ButtonAction = "HELD"
)

// ButtonEvent is a single semantic event emitted by a button monitor.
type ButtonEvent struct {
	Action ButtonAction `json:"action"`
	Color  Color        `json:"color"`
}

// Pressed builds a short tap event.
func Pressed(c Color) ButtonEvent {
	return ButtonEvent{Action: ButtonPressed, Color: c}
}

// Held builds a hold (or hold auto-repeat) event.
func Held(c Color) ButtonEvent {
	return ButtonEvent{Action: ButtonHeld, Color: c}
}

func (e ButtonEvent) String() string {
	return fmt.Sprintf("%s(%s)", e.Action, e.Color)
}
