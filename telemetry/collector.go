// Package telemetry aggregates simulation statistics into fixed-size
// tick windows and writes them to structured logs and CSV files.
package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int32
	windowStartTick int32

	// Event counters for current window
	births        int
	deathsStarved int
	deathsAged    int
	kills         int
	fights        int
}

// NewCollector creates a stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int32(windowTicks)}
}

// RecordBirth records a successful reproduction.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeathStarved records a death from drained energy.
func (c *Collector) RecordDeathStarved() {
	c.deathsStarved++
}

// RecordDeathAged records a death from reaching the maximum age.
func (c *Collector) RecordDeathAged() {
	c.deathsAged++
}

// RecordFight records a combat resolution where one side was defeated.
func (c *Collector) RecordFight(killed bool) {
	c.fights++
	if killed {
		c.kills++
	}
}

// ShouldFlush returns true when the current window is complete.
func (c *Collector) ShouldFlush(tick int32) bool {
	return tick-c.windowStartTick >= c.windowTicks
}

// Flush closes the current window and returns its stats. Population
// and trait samples are taken by the caller at window end.
func (c *Collector) Flush(tick int32, population int, sample Sample) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		Population:      population,
		Births:          c.births,
		DeathsStarved:   c.deathsStarved,
		DeathsAged:      c.deathsAged,
		Fights:          c.fights,
		Kills:           c.kills,
	}
	stats.fillFromSample(sample)

	// Reset for next window
	c.windowStartTick = tick
	c.births = 0
	c.deathsStarved = 0
	c.deathsAged = 0
	c.kills = 0
	c.fights = 0

	return stats
}
