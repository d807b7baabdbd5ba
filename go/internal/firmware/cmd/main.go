//go:build tinygo

package main

import (
	"context"
	"machine"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/chessclock/go/internal/button"
	"github.com/mcdev12/chessclock/go/internal/config"
	"github.com/mcdev12/chessclock/go/internal/events"
	"github.com/mcdev12/chessclock/go/internal/game"
	"github.com/mcdev12/chessclock/go/internal/gpio"
	"github.com/mcdev12/chessclock/go/internal/lcd"
	"github.com/mcdev12/chessclock/go/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(machine.Serial).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.Default()
	clock := clockwork.NewRealClock()

	// Set up the display or fail
	display, err := setupDisplay(cfg)
	if err != nil {
		log.Error().Err(err).Msg("display init failed")
		failLoop()
	}

	leds := game.LEDs{
		Red:    gpio.NewLED(machine.Pin(cfg.Pins.Red.LED)),
		Yellow: gpio.NewLED(machine.Pin(cfg.Pins.Yellow.LED)),
		Blue:   gpio.NewLED(machine.Pin(cfg.Pins.Blue.LED)),
	}

	ctx := context.Background()
	ch := events.NewChannel()
	for _, c := range models.Colors {
		pin, err := gpio.NewPin(machine.Pin(cfg.Pins.For(c).Button), cfg.Pins.ActiveLow)
		if err != nil {
			log.Error().Err(err).Str("button", c.String()).Msg("button init failed")
			failLoop()
		}
		m := button.NewMonitor(pin, c, ch, clock)
		go func() {
			if err := m.Run(ctx); err != nil {
				log.Error().Err(err).Msg("button monitor failed")
				failLoop()
			}
		}()
	}

	ctrl := game.NewController(display, leds, clock, game.Options{
		Settings:   cfg.PlayerSettings(),
		Row2Offset: cfg.LCD.Row2Offset,
	})
	if err := ctrl.Run(ctx, ch.Events()); err != nil {
		log.Error().Err(err).Msg("controller failed")
	}
	failLoop()
}

func setupDisplay(cfg config.Config) (*lcd.HD44780, error) {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		SDA: machine.Pin(cfg.Pins.SDA),
		SCL: machine.Pin(cfg.Pins.SCL),
	})
	if err != nil {
		return nil, err
	}

	display := lcd.NewHD44780(i2c, cfg.LCD.Address)
	if err := display.Init(); err != nil {
		return nil, err
	}
	return display, nil
}

// failLoop signals an unrecoverable hardware fault on the on-board LED.
func failLoop() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.Low()
		time.Sleep(100 * time.Millisecond)
		led.High()
		time.Sleep(100 * time.Millisecond)
	}
}
