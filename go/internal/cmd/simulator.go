package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/chessclock/go/internal/button"
	"github.com/mcdev12/chessclock/go/internal/config"
	"github.com/mcdev12/chessclock/go/internal/display"
	"github.com/mcdev12/chessclock/go/internal/events"
	"github.com/mcdev12/chessclock/go/internal/game"
	"github.com/mcdev12/chessclock/go/internal/gpio"
	"github.com/mcdev12/chessclock/go/internal/lcd"
	"github.com/mcdev12/chessclock/go/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	tapDuration  = 50 * time.Millisecond
	holdDuration = button.HoldThreshold + 200*time.Millisecond
	pauseCommand = 250 * time.Millisecond
	pollDisplay  = 50 * time.Millisecond
)

var errQuit = errors.New("quit requested")

// commands maps console keys to buttons. Lower case taps, upper case holds.
var commands = map[rune]models.Color{
	'r': models.ColorRed,
	'y': models.ColorYellow,
	'b': models.ColorBlue,
}

// run wires the simulated board and blocks until the console quits, input
// ends or ctx is done.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	clock := clockwork.NewRealClock()
	ch := events.NewChannel()
	buf := lcd.NewBuffer(display.Columns, cfg.LCD.Row2Offset)

	inputs := make(map[models.Color]*gpio.SimInput, len(models.Colors))
	leds := make(map[models.Color]*gpio.SimOutput, len(models.Colors))
	for _, c := range models.Colors {
		inputs[c] = gpio.NewSimInput()
		leds[c] = &gpio.SimOutput{OnChange: func(on bool) {
			log.Info().Str("led", c.String()).Bool("on", on).Msg("led changed")
		}}
	}

	ctrl := game.NewController(buf, game.LEDs{
		Red:    leds[models.ColorRed],
		Yellow: leds[models.ColorYellow],
		Blue:   leds[models.ColorBlue],
	}, clock, game.Options{
		Settings:   cfg.PlayerSettings(),
		Row2Offset: cfg.LCD.Row2Offset,
		Metrics:    &game.LogMetricsCollector{},
	})

	g, ctx := errgroup.WithContext(ctx)
	for _, c := range models.Colors {
		m := button.NewMonitor(inputs[c], c, ch, clock)
		g.Go(func() error {
			return m.Run(ctx)
		})
	}
	g.Go(func() error {
		return ctrl.Run(ctx, ch.Events())
	})
	g.Go(func() error {
		return watchDisplay(ctx, clock, buf, out)
	})
	g.Go(func() error {
		return runConsole(ctx, clock, readLines(in), inputs)
	})

	err := g.Wait()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// readLines feeds input lines to a channel. The reader may block forever, so
// it is not tied to the errgroup.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// runConsole turns key presses into contact closures on the simulated
// buttons. A "." waits briefly, which is handy for scripted input.
func runConsole(ctx context.Context, clock clockwork.Clock, lines <-chan string, inputs map[models.Color]*gpio.SimInput) error {
	for {
		var line string
		var ok bool
		select {
		case line, ok = <-lines:
			if !ok {
				return errQuit
			}
		case <-ctx.Done():
			return nil
		}

		for _, key := range strings.TrimSpace(line) {
			switch {
			case key == 'q':
				return errQuit
			case key == '.':
				clock.Sleep(pauseCommand)
			default:
				lower := unicode.ToLower(key)
				color, found := commands[lower]
				if !found {
					log.Warn().Str("key", string(key)).Msg("unknown command; use r/y/b to tap, R/Y/B to hold, q to quit")
					continue
				}
				hold := tapDuration
				if key != lower {
					hold = holdDuration
				}
				inputs[color].Press()
				clock.Sleep(hold)
				inputs[color].Release()
				// Let the release debounce settle before the next key.
				clock.Sleep(2 * button.DebounceDelay)
			}
		}
	}
}

// watchDisplay prints the display whenever its contents change.
func watchDisplay(ctx context.Context, clock clockwork.Clock, buf *lcd.Buffer, out io.Writer) error {
	ticker := clock.NewTicker(pollDisplay)
	defer ticker.Stop()

	var last [2]string
	for {
		if rows := buf.Rows(); rows != last {
			last = rows
			if err := printDisplay(out, rows); err != nil {
				return fmt.Errorf("print display: %w", err)
			}
		}
		select {
		case <-ticker.Chan():
		case <-ctx.Done():
			return nil
		}
	}
}

func printDisplay(out io.Writer, rows [2]string) error {
	border := "+" + strings.Repeat("-", display.Columns) + "+"
	_, err := fmt.Fprintf(out, "%s\n|%s|\n|%s|\n%s\n", border, rows[0], rows[1], border)
	return err
}
