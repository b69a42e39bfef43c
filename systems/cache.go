// Package systems provides the per-tick simulation logic.
package systems

import "github.com/pthm-cable/biots/config"

// Cached config values for hot paths. The step runs for every biot on
// every tick; reading through config.Cfg() there is measurable.
var (
	cacheInitialized bool

	cachedDrag             float32
	cachedEnergyRate       float32
	cachedTriggerScale     float32
	cachedImpulseScale     float32
	cachedDetectionScale   float64
	cachedDirEpsilon       float32
	cachedAdultFactor      float32
	cachedCrowdingNeighbor int
	cachedCrowdingDistSq   float64
	cachedMutationChance   float32
	cachedBirthImpulse     float32
	cachedSpoilsFraction   float32
	cachedDefenseFactor    float32
	cachedMaxAge           int32
	cachedBaseLifeFactor   float32
)

// InitStepCache caches config values used by the per-biot step.
// Must be called after config.Init and before the first simulation tick.
func InitStepCache() {
	cfg := config.Cfg()

	cachedDrag = float32(cfg.Physics.Drag)
	cachedEnergyRate = float32(cfg.Energy.Rate)
	cachedTriggerScale = float32(cfg.Motion.TriggerScale)
	cachedImpulseScale = float32(cfg.Motion.ImpulseScale)
	cachedDetectionScale = cfg.Senses.DetectionScale
	cachedDirEpsilon = float32(cfg.Senses.DirEpsilon)
	cachedAdultFactor = float32(cfg.Reproduction.AdultFactor)
	cachedCrowdingNeighbor = cfg.Reproduction.CrowdingNeighbor
	cachedCrowdingDistSq = cfg.Reproduction.CrowdingDistanceSq
	cachedMutationChance = float32(cfg.Reproduction.MutationChance)
	cachedBirthImpulse = float32(cfg.Reproduction.BirthImpulse)
	cachedSpoilsFraction = float32(cfg.Combat.SpoilsFraction)
	cachedDefenseFactor = float32(cfg.Combat.DefenseFactor)
	cachedMaxAge = int32(cfg.Lifecycle.MaxAge)
	cachedBaseLifeFactor = float32(cfg.Lifecycle.BaseLifeFactor)

	cacheInitialized = true
}
