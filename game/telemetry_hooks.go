package game

import (
	"log/slog"

	"github.com/pthm-cable/biots/telemetry"
)

// flushTelemetry closes the stats window when due and routes the
// result to the configured sinks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.aliveCount, g.samplePopulation())

	if g.logStats {
		stats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}
}

// samplePopulation collects per-biot values for distribution stats.
func (g *Game) samplePopulation() telemetry.Sample {
	s := telemetry.Sample{
		Energies:       make([]float64, 0, g.aliveCount),
		Ages:           make([]float64, 0, g.aliveCount),
		Attack:         make([]float64, 0, g.aliveCount),
		Defense:        make([]float64, 0, g.aliveCount),
		Photosynthesis: make([]float64, 0, g.aliveCount),
		Motion:         make([]float64, 0, g.aliveCount),
	}

	query := g.biotFilter.Query()
	for query.Next() {
		_, _, energy, _, props := query.Get()

		s.Energies = append(s.Energies, float64(energy.Value))
		s.Ages = append(s.Ages, float64(energy.Age))
		s.Attack = append(s.Attack, float64(props.Attack))
		s.Defense = append(s.Defense, float64(props.Defense))
		s.Photosynthesis = append(s.Photosynthesis, float64(props.Photosynthesis))
		s.Motion = append(s.Motion, float64(props.Motion))
		if props.Intelligence > 0 {
			s.Intelligent++
		}
	}

	return s
}
