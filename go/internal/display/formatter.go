// Package display renders both players' clocks for a 16x2 character display.
package display

import (
	"fmt"
	"time"

	"github.com/mcdev12/chessclock/go/internal/player"
)

const (
	Columns = 16
	Header  = "Red         Blue"

	// DefaultRow2Offset is where an HD44780 in 2-line mode starts its
	// second row.
	DefaultRow2Offset uint8 = 40
)

// Sink is a character display addressed by linear cursor position.
type Sink interface {
	// Clear blanks the display and homes the cursor.
	Clear() error
	// Home moves the cursor to position 0 without clearing.
	Home() error
	SetCursor(pos uint8) error
	Write(s string) error
}

// Lines returns the header and the clock line, each Columns wide. Red is
// left-justified and Blue right-justified in 8-character fields.
func Lines(red, blue time.Duration) [2]string {
	return [2]string{
		Header,
		fmt.Sprintf("%-8s%8s", player.FormatRemaining(red), player.FormatRemaining(blue)),
	}
}

// Render writes both lines to sink. row2Offset is the linear address of the
// second row, which depends on the controller chip.
func Render(sink Sink, row2Offset uint8, red, blue time.Duration) error {
	lines := Lines(red, blue)

	if err := sink.Home(); err != nil {
		return fmt.Errorf("home cursor: %w", err)
	}
	if err := sink.Write(lines[0]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := sink.SetCursor(row2Offset); err != nil {
		return fmt.Errorf("set cursor to row 2: %w", err)
	}
	if err := sink.Write(lines[1]); err != nil {
		return fmt.Errorf("write clocks: %w", err)
	}
	return nil
}
