package gpio

import (
	"context"
	"sync"
)

// SimInput is an Input whose contact is driven by Press and Release.
type SimInput struct {
	mu      sync.Mutex
	closed  bool
	changed chan struct{}
}

func NewSimInput() *SimInput {
	return &SimInput{changed: make(chan struct{})}
}

// Press closes the contact.
func (s *SimInput) Press() {
	s.set(true)
}

// Release opens the contact.
func (s *SimInput) Release() {
	s.set(false)
}

func (s *SimInput) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *SimInput) WaitClosed(ctx context.Context) error {
	return s.wait(ctx, true)
}

func (s *SimInput) WaitOpen(ctx context.Context) error {
	return s.wait(ctx, false)
}

func (s *SimInput) set(closed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed == closed {
		return
	}
	s.closed = closed
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *SimInput) wait(ctx context.Context, want bool) error {
	for {
		s.mu.Lock()
		if s.closed == want {
			s.mu.Unlock()
			return nil
		}
		ch := s.changed
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// SimOutput records the level of an LED line. OnChange, when set, is called
// after every level transition.
type SimOutput struct {
	mu       sync.Mutex
	level    bool
	OnChange func(on bool)
}

func (o *SimOutput) High() {
	o.Set(true)
}

func (o *SimOutput) Low() {
	o.Set(false)
}

func (o *SimOutput) Set(on bool) {
	o.mu.Lock()
	changed := o.level != on
	o.level = on
	cb := o.OnChange
	o.mu.Unlock()

	if changed && cb != nil {
		cb(on)
	}
}

// Level reports whether the line is currently driven high.
func (o *SimOutput) Level() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.level
}
