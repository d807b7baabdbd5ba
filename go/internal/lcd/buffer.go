// Package lcd provides character display sinks: an in-memory DDRAM model
// and an HD44780 driver for a PCF8574 I2C backpack.
package lcd

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// DDRAMSize is the number of addressable character cells on an HD44780.
const DDRAMSize = 80

var ErrCursorRange = errors.New("cursor position out of range")

// Buffer is an in-memory display with linear addressing. Only the first
// Columns cells of each row are visible.
type Buffer struct {
	mu         sync.Mutex
	cells      [DDRAMSize]byte
	cursor     int
	columns    int
	row2Offset int
}

func NewBuffer(columns int, row2Offset uint8) *Buffer {
	b := &Buffer{columns: columns, row2Offset: int(row2Offset)}
	b.clear()
	return b
}

func (b *Buffer) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clear()
	return nil
}

func (b *Buffer) Home() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = 0
	return nil
}

func (b *Buffer) SetCursor(pos uint8) error {
	if int(pos) >= DDRAMSize {
		return fmt.Errorf("%w: %d", ErrCursorRange, pos)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = int(pos)
	return nil
}

// Write stores s at the cursor. The cursor wraps at the end of DDRAM like
// the real controller does.
func (b *Buffer) Write(s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < len(s); i++ {
		b.cells[b.cursor] = s[i]
		b.cursor = (b.cursor + 1) % DDRAMSize
	}
	return nil
}

// Rows returns the visible text of both rows.
func (b *Buffer) Rows() [2]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return [2]string{
		b.window(0),
		b.window(b.row2Offset),
	}
}

func (b *Buffer) String() string {
	rows := b.Rows()
	return strings.Join(rows[:], "\n")
}

func (b *Buffer) clear() {
	for i := range b.cells {
		b.cells[i] = ' '
	}
	b.cursor = 0
}

func (b *Buffer) window(start int) string {
	out := make([]byte, b.columns)
	for i := range out {
		out[i] = b.cells[(start+i)%DDRAMSize]
	}
	return string(out)
}
