// Package events carries button events from the monitors to the controller.
package events

import (
	"context"

	"github.com/mcdev12/chessclock/go/internal/models"
)

// Capacity is the number of events that may wait for the controller. A
// producer blocks while the slot is occupied; events are never dropped.
const Capacity = 1

// Sender is what a button monitor needs from the channel.
type Sender interface {
	Send(ctx context.Context, ev models.ButtonEvent) error
}

// Channel is a single-slot, single-consumer handoff queue.
type Channel struct {
	ch chan models.ButtonEvent
}

func NewChannel() *Channel {
	return &Channel{ch: make(chan models.ButtonEvent, Capacity)}
}

// Send blocks until ev is accepted or ctx is done.
func (c *Channel) Send(ctx context.Context, ev models.ButtonEvent) error {
	select {
	case c.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events is the receive side, owned by the controller.
func (c *Channel) Events() <-chan models.ButtonEvent {
	return c.ch
}
