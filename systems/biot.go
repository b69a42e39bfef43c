package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/biots/components"
)

// Biot bundles pointers to the components of one live organism for the
// duration of a single step. It never outlives the tick that built it.
type Biot struct {
	Pos    *components.Position
	Vel    *components.Velocity
	Energy *components.Energy
	Genome *components.Genome
	Props  *components.Properties
}

// Offspring is a fully built biot queued in the side buffer and
// inserted into the live set at end of step. It shares no state with
// its parent.
type Offspring struct {
	Pos    components.Position
	Vel    components.Velocity
	Energy components.Energy
	Genome components.Genome
	Props  components.Properties
}

// BaseLife is the energy reference value of a biot: its starting life
// and the yardstick for the reproduction threshold.
func BaseLife(p *components.Properties) float32 {
	return cachedBaseLifeFactor * p.Weight()
}

// Dead reports whether a biot should be pruned: drained of energy or
// past the maximum age.
func Dead(e *components.Energy) bool {
	return e.Value <= 0 || e.Age >= cachedMaxAge
}

// StepBiot advances one biot by one tick. The index holds pre-step
// positions of the whole population, self included. feedX/feedY is the
// feed direction computed by the manager (hasFeed false when none).
//
// Phases run in a fixed order: reproduction check on the pre-move
// position, movement with toroidal wrap, velocity drag, energy budget,
// motion impulse, age. Returns the offspring when reproduction fired.
func StepBiot(rng *rand.Rand, b Biot, index *Index, feedX, feedY float32, hasFeed bool, worldW, worldH float32) (Offspring, bool) {
	var off Offspring
	born := false

	baseLife := BaseLife(b.Props)
	if b.Energy.Value >= cachedAdultFactor*baseLife && !crowded(index, b.Pos) {
		off = makeOffspring(rng, b)
		born = true
		b.Energy.Value = (cachedAdultFactor - 1) * baseLife
	}

	b.Pos.X = Mod(b.Pos.X+b.Vel.X, worldW)
	b.Pos.Y = Mod(b.Pos.Y+b.Vel.Y, worldH)

	b.Vel.X *= cachedDrag
	b.Vel.Y *= cachedDrag

	b.Energy.Value += cachedEnergyRate * (b.Props.Photosynthesis - b.Props.Metabolism())

	if rng.Float32() < cachedTriggerScale*b.Props.Motion {
		// Weight is positive whenever the motion trait is, so the
		// guard only shields the degenerate zero-weight genomes.
		if w := b.Props.Weight(); w > 0 {
			speed := cachedImpulseScale * b.Props.Motion / w
			if b.Props.Intelligence > 0 && hasFeed {
				accelerate(b.Vel, feedX, feedY, speed)
			} else {
				randomKick(rng, b.Vel, speed)
			}
		}
	}

	b.Energy.Age++

	return off, born
}

// crowded checks the reproduction neighborhood: the biot may spawn
// only when its nth-nearest index point (self counts as the first, at
// distance zero) is missing or beyond the crowding distance.
func crowded(index *Index, pos *components.Position) bool {
	nn := index.Nearest(float64(pos.X), float64(pos.Y), cachedCrowdingNeighbor)
	if len(nn) < cachedCrowdingNeighbor {
		return false
	}
	return nn[cachedCrowdingNeighbor-1].DistSq <= cachedCrowdingDistSq
}

// makeOffspring clones the parent, applies a geometric number of
// mutations (another one while a draw at the mutation chance
// succeeds), and gives the newborn its own life and a random kick.
// The clone keeps the parent's pre-move position and velocity.
func makeOffspring(rng *rand.Rand, b Biot) Offspring {
	off := Offspring{
		Pos:    *b.Pos,
		Vel:    *b.Vel,
		Genome: *b.Genome,
	}
	for rng.Float32() < cachedMutationChance {
		off.Genome.Mutate(rng)
	}
	off.Props.AdjustToGenome(&off.Genome)
	off.Energy = components.Energy{Value: BaseLife(&off.Props), Age: 0}
	randomKick(rng, &off.Vel, cachedBirthImpulse)
	return off
}

// accelerate adds an impulse of the given speed along a unit direction.
func accelerate(vel *components.Velocity, dirX, dirY, speed float32) {
	vel.X += dirX * speed
	vel.Y += dirY * speed
}

// randomKick accelerates in a uniformly random direction.
func randomKick(rng *rand.Rand, vel *components.Velocity, speed float32) {
	angle := rng.Float64() * 2 * math.Pi
	accelerate(vel, float32(math.Cos(angle)), float32(math.Sin(angle)), speed)
}

// DetectionRangeSq is the squared distance an intelligent biot can
// scan for prey.
func DetectionRangeSq(intelligence float32) float64 {
	return float64(intelligence) * float64(intelligence) * cachedDetectionScale
}

// FeedDirection returns the unit vector from (fromX, fromY) toward
// (toX, toY). A small epsilon offset keeps the normalization defined
// when the two points coincide.
func FeedDirection(fromX, fromY, toX, toY float32) (float32, float32) {
	dx := toX - fromX + cachedDirEpsilon
	dy := toY - fromY + cachedDirEpsilon
	return Normalize(dx, dy)
}
