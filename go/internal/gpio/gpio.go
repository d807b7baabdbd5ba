// Package gpio describes the digital lines the clock core depends on and
// provides in-memory implementations used by the host simulator and tests.
package gpio

import "context"

// Input is a debounced-by-the-caller button line. Polarity is resolved by the
// implementation, so "closed" always means the contact is made.
type Input interface {
	// WaitClosed blocks until the contact is closed or ctx is done.
	WaitClosed(ctx context.Context) error
	// WaitOpen blocks until the contact is open or ctx is done.
	WaitOpen(ctx context.Context) error
	IsClosed() bool
}

// Output is a set/clear-only LED line.
type Output interface {
	High()
	Low()
	Set(on bool)
}
