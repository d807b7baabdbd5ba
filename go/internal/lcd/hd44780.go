package lcd

import (
	"fmt"
	"time"
)

// DefaultAddress is the usual PCF8574 backpack address.
const DefaultAddress uint16 = 0x27

// HD44780 instruction set
const (
	cmdClear       byte = 0x01
	cmdHome        byte = 0x02
	cmdEntryMode   byte = 0x04
	cmdDisplayCtrl byte = 0x08
	cmdFunctionSet byte = 0x20
	cmdSetDDRAM    byte = 0x80

	entryIncrement byte = 0x02
	displayOn      byte = 0x04
	twoLines       byte = 0x08
)

// PCF8574 expander bits
const (
	bitRS        byte = 0x01
	bitEnable    byte = 0x04
	bitBacklight byte = 0x08
)

// Bus is an I2C controller. machine.I2C satisfies it.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// HD44780 drives a character LCD in 4-bit mode through an I2C expander.
type HD44780 struct {
	bus     Bus
	address uint16
	delay   func(time.Duration)
}

func NewHD44780(bus Bus, address uint16) *HD44780 {
	return &HD44780{bus: bus, address: address, delay: time.Sleep}
}

// Init runs the power-on sequence that forces the controller into 4-bit
// mode regardless of its state, then clears the display.
func (d *HD44780) Init() error {
	d.delay(50 * time.Millisecond)
	if err := d.bus.Tx(d.address, []byte{bitBacklight}, nil); err != nil {
		return fmt.Errorf("hd44780: detect expander at 0x%02x: %w", d.address, err)
	}

	for _, wait := range []time.Duration{4500 * time.Microsecond, 4500 * time.Microsecond, 150 * time.Microsecond} {
		if err := d.writeNibble(0x30); err != nil {
			return fmt.Errorf("hd44780: reset: %w", err)
		}
		d.delay(wait)
	}
	if err := d.writeNibble(0x20); err != nil {
		return fmt.Errorf("hd44780: enter 4-bit mode: %w", err)
	}

	for _, cmd := range []byte{
		cmdFunctionSet | twoLines,
		cmdDisplayCtrl | displayOn,
		cmdEntryMode | entryIncrement,
	} {
		if err := d.command(cmd); err != nil {
			return fmt.Errorf("hd44780: configure: %w", err)
		}
	}
	return d.Clear()
}

func (d *HD44780) Clear() error {
	if err := d.command(cmdClear); err != nil {
		return fmt.Errorf("hd44780: clear: %w", err)
	}
	d.delay(2 * time.Millisecond)
	return nil
}

func (d *HD44780) Home() error {
	if err := d.command(cmdHome); err != nil {
		return fmt.Errorf("hd44780: home: %w", err)
	}
	d.delay(2 * time.Millisecond)
	return nil
}

func (d *HD44780) SetCursor(pos uint8) error {
	if int(pos) >= DDRAMSize {
		return fmt.Errorf("hd44780: %w: %d", ErrCursorRange, pos)
	}
	if err := d.command(cmdSetDDRAM | pos); err != nil {
		return fmt.Errorf("hd44780: set cursor: %w", err)
	}
	return nil
}

func (d *HD44780) Write(s string) error {
	for i := 0; i < len(s); i++ {
		if err := d.send(s[i], bitRS); err != nil {
			return fmt.Errorf("hd44780: write %q: %w", s, err)
		}
	}
	return nil
}

func (d *HD44780) command(cmd byte) error {
	return d.send(cmd, 0)
}

// send writes a byte as two nibbles, high first.
func (d *HD44780) send(value, mode byte) error {
	if err := d.writeNibble(value&0xF0 | mode); err != nil {
		return err
	}
	return d.writeNibble((value<<4)&0xF0 | mode)
}

// writeNibble latches the upper four bits by pulsing Enable.
func (d *HD44780) writeNibble(b byte) error {
	b |= bitBacklight
	return d.bus.Tx(d.address, []byte{b | bitEnable, b &^ bitEnable}, nil)
}
