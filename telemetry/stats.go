package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sample holds per-biot values collected at window end, used to
// compute distribution statistics.
type Sample struct {
	Energies       []float64 // life points per live biot
	Ages           []float64 // ticks alive per live biot
	Attack         []float64
	Defense        []float64
	Photosynthesis []float64
	Motion         []float64
	Intelligent    int // biots with intelligence > 0
}

// WindowStats holds aggregated statistics for one tick window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population at window end
	Population  int `csv:"population"`
	Intelligent int `csv:"intelligent"`

	// Events during window
	Births        int `csv:"births"`
	DeathsStarved int `csv:"deaths_starved"`
	DeathsAged    int `csv:"deaths_aged"`
	Fights        int `csv:"fights"`
	Kills         int `csv:"kills"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Age distribution
	AgeMean float64 `csv:"age_mean"`
	AgeMax  float64 `csv:"age_max"`

	// Trait means
	AttackMean         float64 `csv:"attack_mean"`
	DefenseMean        float64 `csv:"defense_mean"`
	PhotosynthesisMean float64 `csv:"photosynthesis_mean"`
	MotionMean         float64 `csv:"motion_mean"`
}

// fillFromSample computes the distribution fields.
func (w *WindowStats) fillFromSample(s Sample) {
	w.Intelligent = s.Intelligent

	if len(s.Energies) > 0 {
		sorted := make([]float64, len(s.Energies))
		copy(sorted, s.Energies)
		sort.Float64s(sorted)

		w.EnergyMean, w.EnergyStd = stat.MeanStdDev(sorted, nil)
		w.EnergyP10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
		w.EnergyP50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
		w.EnergyP90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	}

	if len(s.Ages) > 0 {
		w.AgeMean = stat.Mean(s.Ages, nil)
		for _, a := range s.Ages {
			if a > w.AgeMax {
				w.AgeMax = a
			}
		}
	}

	if len(s.Attack) > 0 {
		w.AttackMean = stat.Mean(s.Attack, nil)
		w.DefenseMean = stat.Mean(s.Defense, nil)
		w.PhotosynthesisMean = stat.Mean(s.Photosynthesis, nil)
		w.MotionMean = stat.Mean(s.Motion, nil)
	}
}

// LogStats writes the window stats as a structured log record.
func (w *WindowStats) LogStats() {
	slog.Info("window_stats",
		"window_end", w.WindowEndTick,
		"population", w.Population,
		"intelligent", w.Intelligent,
		"births", w.Births,
		"deaths_starved", w.DeathsStarved,
		"deaths_aged", w.DeathsAged,
		"fights", w.Fights,
		"kills", w.Kills,
		"energy_mean", w.EnergyMean,
		"energy_p50", w.EnergyP50,
		"age_mean", w.AgeMean,
		"attack_mean", w.AttackMean,
		"defense_mean", w.DefenseMean,
		"photosynthesis_mean", w.PhotosynthesisMean,
		"motion_mean", w.MotionMean,
	)
}
