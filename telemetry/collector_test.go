package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindowBoundaries(t *testing.T) {
	c := NewCollector(300)

	if c.ShouldFlush(299) {
		t.Error("flush before the window is complete")
	}
	if !c.ShouldFlush(300) {
		t.Error("no flush at window end")
	}

	c.Flush(300, 0, Sample{})
	if c.ShouldFlush(599) {
		t.Error("flush before the second window is complete")
	}
	if !c.ShouldFlush(600) {
		t.Error("no flush at the second window end")
	}
}

func TestCollectorCountsAndReset(t *testing.T) {
	c := NewCollector(100)

	c.RecordBirth()
	c.RecordBirth()
	c.RecordDeathStarved()
	c.RecordDeathAged()
	c.RecordFight(true)
	c.RecordFight(false)

	stats := c.Flush(100, 42, Sample{})
	if stats.Births != 2 {
		t.Errorf("births = %d, want 2", stats.Births)
	}
	if stats.DeathsStarved != 1 || stats.DeathsAged != 1 {
		t.Errorf("deaths = (%d, %d), want (1, 1)", stats.DeathsStarved, stats.DeathsAged)
	}
	if stats.Fights != 2 || stats.Kills != 1 {
		t.Errorf("fights/kills = (%d, %d), want (2, 1)", stats.Fights, stats.Kills)
	}
	if stats.Population != 42 {
		t.Errorf("population = %d, want 42", stats.Population)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 100 {
		t.Errorf("window = [%d, %d], want [0, 100]", stats.WindowStartTick, stats.WindowEndTick)
	}

	// Counters reset after flush.
	next := c.Flush(200, 42, Sample{})
	if next.Births != 0 || next.Fights != 0 || next.Kills != 0 {
		t.Error("counters not reset between windows")
	}
	if next.WindowStartTick != 100 {
		t.Errorf("second window start = %d, want 100", next.WindowStartTick)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if !c.ShouldFlush(1) {
		t.Error("degenerate window size should clamp to 1 tick")
	}
}

func TestFillFromSample(t *testing.T) {
	s := Sample{
		Energies:       []float64{1, 2, 3, 4, 5},
		Ages:           []float64{10, 20, 60},
		Attack:         []float64{0.1, 0.3},
		Defense:        []float64{0.2, 0.2},
		Photosynthesis: []float64{0.5, 0.1},
		Motion:         []float64{0, 0.4},
		Intelligent:    3,
	}

	c := NewCollector(100)
	stats := c.Flush(100, 5, s)

	if stats.Intelligent != 3 {
		t.Errorf("intelligent = %d, want 3", stats.Intelligent)
	}
	if stats.EnergyMean != 3 {
		t.Errorf("energy mean = %f, want 3", stats.EnergyMean)
	}
	if stats.EnergyStd <= 0 {
		t.Errorf("energy std = %f, want > 0", stats.EnergyStd)
	}
	if stats.EnergyP10 > stats.EnergyP50 || stats.EnergyP50 > stats.EnergyP90 {
		t.Errorf("quantiles out of order: p10=%f p50=%f p90=%f",
			stats.EnergyP10, stats.EnergyP50, stats.EnergyP90)
	}
	if stats.AgeMean != 30 {
		t.Errorf("age mean = %f, want 30", stats.AgeMean)
	}
	if stats.AgeMax != 60 {
		t.Errorf("age max = %f, want 60", stats.AgeMax)
	}
	if math.Abs(stats.AttackMean-0.2) > 1e-12 {
		t.Errorf("attack mean = %f, want 0.2", stats.AttackMean)
	}
	if math.Abs(stats.MotionMean-0.2) > 1e-12 {
		t.Errorf("motion mean = %f, want 0.2", stats.MotionMean)
	}
}

func TestFillFromSampleEmptyPopulation(t *testing.T) {
	c := NewCollector(100)
	stats := c.Flush(100, 0, Sample{})

	if stats.EnergyMean != 0 || stats.AgeMean != 0 || stats.AttackMean != 0 {
		t.Error("empty sample should leave distribution fields zero")
	}
}
