// Package config holds the pin assignment and tunables of the clock.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/chessclock/go/internal/display"
	"github.com/mcdev12/chessclock/go/internal/lcd"
	"github.com/mcdev12/chessclock/go/internal/models"
	"github.com/mcdev12/chessclock/go/internal/player"
)

var ErrInvalidAllowance = errors.New("invalid allowance")

// ButtonPins is the input and LED pin of one button.
type ButtonPins struct {
	Button uint8 `yaml:"button"`
	LED    uint8 `yaml:"led"`
}

type Pins struct {
	Red    ButtonPins `yaml:"red"`
	Yellow ButtonPins `yaml:"yellow"`
	Blue   ButtonPins `yaml:"blue"`
	// ActiveLow buttons close to ground and use a pull-up.
	ActiveLow bool  `yaml:"active_low"`
	SDA       uint8 `yaml:"sda"`
	SCL       uint8 `yaml:"scl"`
}

// For returns the pins wired to a button color.
func (p Pins) For(c models.Color) ButtonPins {
	switch c {
	case models.ColorRed:
		return p.Red
	case models.ColorYellow:
		return p.Yellow
	default:
		return p.Blue
	}
}

type LCD struct {
	Address uint16 `yaml:"address"`
	// Row2Offset is the linear DDRAM address of the second row.
	Row2Offset uint8 `yaml:"row2_offset"`
}

type Clock struct {
	DefaultAllowance time.Duration `yaml:"default_allowance"`
	MaxAllowance     time.Duration `yaml:"max_allowance"`
}

type Config struct {
	Pins     Pins   `yaml:"pins"`
	LCD      LCD    `yaml:"lcd"`
	Clock    Clock  `yaml:"clock"`
	LogLevel string `yaml:"log_level"`
}

// Default matches the reference board: LEDs on GP16/18/17, buttons on
// GP15/13/14 with pull-downs, and a PCF8574 backpack on I2C0.
func Default() Config {
	return Config{
		Pins: Pins{
			Red:    ButtonPins{Button: 15, LED: 16},
			Yellow: ButtonPins{Button: 13, LED: 18},
			Blue:   ButtonPins{Button: 14, LED: 17},
			SDA:    0,
			SCL:    1,
		},
		LCD: LCD{
			Address:    lcd.DefaultAddress,
			Row2Offset: display.DefaultRow2Offset,
		},
		Clock: Clock{
			DefaultAllowance: player.DefaultAllowance,
			MaxAllowance:     player.MaxAllowance,
		},
		LogLevel: "info",
	}
}

func (c Config) Validate() error {
	if c.Clock.DefaultAllowance <= 0 || c.Clock.MaxAllowance <= 0 {
		return fmt.Errorf("%w: allowances must be positive", ErrInvalidAllowance)
	}
	if c.Clock.DefaultAllowance > c.Clock.MaxAllowance {
		return fmt.Errorf("%w: default %v exceeds maximum %v", ErrInvalidAllowance, c.Clock.DefaultAllowance, c.Clock.MaxAllowance)
	}
	if c.LCD.Row2Offset < display.Columns {
		return fmt.Errorf("row 2 offset %d overlaps the %d-column header", c.LCD.Row2Offset, display.Columns)
	}
	if int(c.LCD.Row2Offset)+display.Columns > lcd.DDRAMSize {
		return fmt.Errorf("row 2 offset %d outside DDRAM", c.LCD.Row2Offset)
	}
	return nil
}

// PlayerSettings returns the allowance bounds for the player timers.
func (c Config) PlayerSettings() player.Settings {
	return player.Settings{
		DefaultAllowance: c.Clock.DefaultAllowance,
		MaxAllowance:     c.Clock.MaxAllowance,
	}
}
