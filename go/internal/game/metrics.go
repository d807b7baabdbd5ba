package game

import (
	"time"

	"github.com/mcdev12/chessclock/go/internal/models"
	"github.com/rs/zerolog/log"
)

// MetricsCollector defines the interface for collecting game metrics
type MetricsCollector interface {
	RecordTurn(color models.Color, elapsed time.Duration)
	RecordPhaseChange(from, to models.GamePhase)
	// RecordOvertime fires when a turn ends with the player's time
	// crossing below zero. It does not repeat while the time stays negative.
	RecordOvertime(color models.Color)
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordTurn(color models.Color, elapsed time.Duration) {}
func (n *NoOpMetricsCollector) RecordPhaseChange(from, to models.GamePhase)        {}
func (n *NoOpMetricsCollector) RecordOvertime(color models.Color)                  {}

// LogMetricsCollector reports metrics as debug log lines.
type LogMetricsCollector struct{}

func (l *LogMetricsCollector) RecordTurn(color models.Color, elapsed time.Duration) {
	log.Debug().Str("player", color.String()).Dur("elapsed", elapsed).Msg("turn recorded")
}

func (l *LogMetricsCollector) RecordPhaseChange(from, to models.GamePhase) {
	log.Debug().Str("from", from.String()).Str("to", to.String()).Msg("phase change recorded")
}

func (l *LogMetricsCollector) RecordOvertime(color models.Color) {
	log.Debug().Str("player", color.String()).Msg("overtime recorded")
}
