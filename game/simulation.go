package game

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biots/components"
	"github.com/pthm-cable/biots/config"
	"github.com/pthm-cable/biots/systems"
)

// simulationStep runs a single tick of the simulation:
// index rebuild -> per-biot update -> combat -> prune and births.
func (g *Game) simulationStep() {
	// 1. Snapshot live biots and bulk-build the spatial index from
	// their pre-step positions.
	g.rebuildSnapshot()
	index := systems.BuildIndex(g.points)

	// 2+3. Step every biot with its feed direction. Offspring go to a
	// side buffer: they are invisible to the index and to combat until
	// the end of the tick. The live set is not structurally modified
	// while this loop runs.
	g.offspring = g.offspring[:0]
	for i, e := range g.snapshot {
		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)
		energy := g.energyMap.Get(e)
		genome := g.genomeMap.Get(e)
		props := g.propsMap.Get(e)

		feedX, feedY, hasFeed := g.feedDirection(index, i, pos, props)

		b := systems.Biot{Pos: pos, Vel: vel, Energy: energy, Genome: genome, Props: props}
		if off, born := systems.StepBiot(g.rng, b, index, feedX, feedY, hasFeed, g.worldWidth, g.worldHeight); born {
			g.offspring = append(g.offspring, off)
			g.collector.RecordBirth()
		}
	}

	// 4. Combat uses the same index, i.e. positions from before this
	// tick's movement. Biots that drifted apart this tick still fight
	// on yesterday's proximity; kept as observed reference behavior.
	g.resolveCombat(index)

	// 5. Prune the dead, then append the buffered offspring.
	g.cleanupDead()
	for i := range g.offspring {
		g.spawnOffspring(&g.offspring[i])
	}

	g.tick++
	g.flushTelemetry()
}

// rebuildSnapshot collects the live biots into the per-tick snapshot
// and point buffers. Slot indices are fresh each tick.
func (g *Game) rebuildSnapshot() {
	g.snapshot = g.snapshot[:0]
	g.points = g.points[:0]

	query := g.biotFilter.Query()
	for query.Next() {
		pos, _, _, _, _ := query.Get()
		idx := len(g.snapshot)
		g.snapshot = append(g.snapshot, query.Entity())
		g.points = append(g.points, systems.BiotPoint{
			X:   float64(pos.X),
			Y:   float64(pos.Y),
			Idx: idx,
		})
	}
}

// feedDirection scans the index outward from the biot's position for
// the nearest weaker biot within detection range and returns the unit
// vector toward it. Only intelligent biots hunt; everyone else (and a
// hunter with no target in range) moves undirected.
//
// The scan runs in expanding k-nearest batches so a crowded
// neighborhood exits at the first weaker biot instead of materializing
// everything in range.
func (g *Game) feedDirection(index *systems.Index, self int, pos *components.Position, props *components.Properties) (float32, float32, bool) {
	if props.Intelligence <= 0 {
		return 0, 0, false
	}

	rangeSq := systems.DetectionRangeSq(props.Intelligence)
	for k := 8; ; k *= 2 {
		nn := index.Nearest(float64(pos.X), float64(pos.Y), k)
		for _, n := range nn {
			if n.DistSq > rangeSq {
				return 0, 0, false
			}
			if n.Point.Idx == self {
				continue
			}
			other := g.propsMap.Get(g.snapshot[n.Point.Idx])
			if systems.IsStronger(props, other) {
				// Direction toward the neighbor's indexed (pre-step)
				// position.
				fx, fy := systems.FeedDirection(pos.X, pos.Y, float32(n.Point.X), float32(n.Point.Y))
				return fx, fy, true
			}
		}
		if len(nn) < k {
			// The whole population has been scanned.
			return 0, 0, false
		}
	}
}

// resolveCombat resolves every unordered pair within the collision
// radius exactly once, in ascending slot-pair order. Energy transfers
// apply immediately, so later pairs in the same tick see the updated
// values; the fixed ordering keeps the compounding deterministic.
func (g *Game) resolveCombat(index *systems.Index) {
	radiusSq := float64(config.Cfg().Derived.CollisionRadiusSq)

	var partners []int
	for i := range g.points {
		iProps := g.propsMap.Get(g.snapshot[i])
		iEnergy := g.energyMap.Get(g.snapshot[i])

		// Each pair resolves once, at its lower slot index. Within
		// returns ascending distance; reorder to ascending slot.
		partners = partners[:0]
		for _, n := range index.Within(g.points[i].X, g.points[i].Y, radiusSq) {
			if n.Point.Idx > i {
				partners = append(partners, n.Point.Idx)
			}
		}
		sort.Ints(partners)

		for _, j := range partners {
			jProps := g.propsMap.Get(g.snapshot[j])
			jEnergy := g.energyMap.Get(g.snapshot[j])

			killed := systems.ResolveCombat(iProps, jProps, iEnergy, jEnergy)
			g.collector.RecordFight(killed)
		}
	}
}

// cleanupDead removes biots meeting the death predicate. Removal is
// deferred to here; nothing is removed while the step loops run.
func (g *Game) cleanupDead() {
	type deadInfo struct {
		entity  ecs.Entity
		starved bool
	}
	var toRemove []deadInfo

	query := g.biotFilter.Query()
	for query.Next() {
		_, _, energy, _, _ := query.Get()
		if systems.Dead(energy) {
			toRemove = append(toRemove, deadInfo{
				entity:  query.Entity(),
				starved: energy.Value <= 0,
			})
		}
	}

	for _, dead := range toRemove {
		if dead.starved {
			g.collector.RecordDeathStarved()
		} else {
			g.collector.RecordDeathAged()
		}
		g.biotMapper.Remove(dead.entity)
		g.aliveCount--
	}
}
