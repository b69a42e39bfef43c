package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/biots/components"
	"github.com/pthm-cable/biots/config"
)

// ensureCache makes sure config and the step cache are initialized
// when tests run in isolation.
func ensureCache() {
	if !cacheInitialized {
		config.MustInit("")
		InitStepCache()
	}
}

// genomeOf builds a genome from the given leading genes; remaining
// slots stay None.
func genomeOf(genes ...components.Gene) components.Genome {
	var g components.Genome
	copy(g.Genes[:], genes)
	return g
}

// repeat returns n copies of the given gene.
func repeat(gene components.Gene, n int) []components.Gene {
	out := make([]components.Gene, n)
	for i := range out {
		out[i] = gene
	}
	return out
}

// testBiot builds a standalone biot from a genome.
func testBiot(genome components.Genome, x, y float32) (Biot, *components.Position, *components.Velocity, *components.Energy) {
	pos := &components.Position{X: x, Y: y}
	vel := &components.Velocity{}
	var props components.Properties
	props.AdjustToGenome(&genome)
	energy := &components.Energy{Value: BaseLife(&props)}
	g := genome
	return Biot{Pos: pos, Vel: vel, Energy: energy, Genome: &g, Props: &props}, pos, vel, energy
}

const worldSize float32 = 720

func TestBaseLife(t *testing.T) {
	ensureCache()
	var props components.Properties
	g := genomeOf(repeat(components.GenePhotosynthesis, 13)...)
	props.AdjustToGenome(&g)

	want := 8 * props.Weight()
	if BaseLife(&props) != want {
		t.Errorf("base life = %f, want %f", BaseLife(&props), want)
	}
}

func TestDeadPredicate(t *testing.T) {
	ensureCache()
	cases := []struct {
		energy float32
		age    int32
		want   bool
	}{
		{0, 0, true},
		{-1, 0, true},
		{1, 10000, true},
		{1, 12000, true},
		{1, 9999, false},
		{0.001, 0, false},
	}
	for _, tc := range cases {
		e := components.Energy{Value: tc.energy, Age: tc.age}
		if got := Dead(&e); got != tc.want {
			t.Errorf("Dead(energy=%f, age=%d) = %v, want %v", tc.energy, tc.age, got, tc.want)
		}
	}
}

func TestStepBiotReproduction(t *testing.T) {
	ensureCache()
	rng := rand.New(rand.NewSource(21))

	genome := genomeOf(repeat(components.GenePhotosynthesis, 13)...)
	b, _, _, energy := testBiot(genome, 100, 100)
	baseLife := BaseLife(b.Props)
	energy.Value = 4 * baseLife

	// Only the biot itself is indexed: no crowding.
	index := BuildIndex([]BiotPoint{{X: 100, Y: 100, Idx: 0}})

	off, born := StepBiot(rng, b, index, 0, 0, false, worldSize, worldSize)
	if !born {
		t.Fatal("expected reproduction at the adult threshold with no crowding")
	}

	if off.Energy.Age != 0 {
		t.Errorf("offspring age = %d, want 0", off.Energy.Age)
	}

	var offProps components.Properties
	offProps.AdjustToGenome(&off.Genome)
	if off.Energy.Value != BaseLife(&offProps) {
		t.Errorf("offspring energy = %f, want its base life %f", off.Energy.Value, BaseLife(&offProps))
	}
	if off.Props != offProps {
		t.Error("offspring properties inconsistent with its genome")
	}

	// Offspring keeps the parent's pre-move position.
	if off.Pos.X != 100 || off.Pos.Y != 100 {
		t.Errorf("offspring position = (%f, %f), want (100, 100)", off.Pos.X, off.Pos.Y)
	}

	// Birth kick has the configured speed.
	speed := math.Sqrt(float64(off.Vel.X*off.Vel.X + off.Vel.Y*off.Vel.Y))
	if math.Abs(speed-1.5) > 1e-5 {
		t.Errorf("offspring kick speed = %f, want 1.5", speed)
	}

	// Parent dropped to 3x base life, then gained this tick's
	// photosynthesis surplus.
	want := 3*baseLife + 0.4*(b.Props.Photosynthesis-b.Props.Metabolism())
	if math.Abs(float64(energy.Value-want)) > 1e-4 {
		t.Errorf("parent energy = %f, want %f", energy.Value, want)
	}
}

func TestStepBiotCrowdingBlocksReproduction(t *testing.T) {
	ensureCache()
	rng := rand.New(rand.NewSource(22))

	genome := genomeOf(repeat(components.GenePhotosynthesis, 13)...)
	b, _, _, energy := testBiot(genome, 100, 100)
	energy.Value = 10 * BaseLife(b.Props)

	// Self plus six neighbors inside the crowding distance: the 6th
	// nearest indexed point (self included) is within sqrt(200).
	points := []BiotPoint{{X: 100, Y: 100, Idx: 0}}
	for i := 1; i <= 6; i++ {
		points = append(points, BiotPoint{X: 100 + float64(i), Y: 100, Idx: i})
	}
	index := BuildIndex(points)

	if _, born := StepBiot(rng, b, index, 0, 0, false, worldSize, worldSize); born {
		t.Error("expected crowding to suppress reproduction")
	}
}

func TestStepBiotReproducesWhenNeighborsFar(t *testing.T) {
	ensureCache()
	rng := rand.New(rand.NewSource(23))

	genome := genomeOf(repeat(components.GenePhotosynthesis, 13)...)
	b, _, _, energy := testBiot(genome, 100, 100)
	energy.Value = 10 * BaseLife(b.Props)

	// Neighbors beyond sqrt(200): the 6th nearest point is too far to
	// count as crowding.
	points := []BiotPoint{{X: 100, Y: 100, Idx: 0}}
	for i := 1; i <= 6; i++ {
		points = append(points, BiotPoint{X: 100 + 20*float64(i), Y: 100, Idx: i})
	}
	index := BuildIndex(points)

	if _, born := StepBiot(rng, b, index, 0, 0, false, worldSize, worldSize); !born {
		t.Error("expected reproduction with all neighbors beyond the crowding distance")
	}
}

func TestStepBiotBelowThresholdNoOffspring(t *testing.T) {
	ensureCache()
	rng := rand.New(rand.NewSource(24))

	genome := genomeOf(repeat(components.GenePhotosynthesis, 13)...)
	b, _, _, energy := testBiot(genome, 100, 100)
	energy.Value = 4*BaseLife(b.Props) - 0.01

	index := BuildIndex([]BiotPoint{{X: 100, Y: 100, Idx: 0}})

	if _, born := StepBiot(rng, b, index, 0, 0, false, worldSize, worldSize); born {
		t.Error("expected no reproduction below the adult threshold")
	}
}

func TestStepBiotMovementWrapAndDrag(t *testing.T) {
	ensureCache()
	rng := rand.New(rand.NewSource(25))

	// Single defense gene: no motion impulses, below the reproduction
	// threshold, only the small upkeep cost on the energy side.
	b, pos, vel, energy := testBiot(genomeOf(components.GeneDefense), 719, 1)
	energy.Value = 2
	vel.X = 3
	vel.Y = -4

	index := BuildIndex([]BiotPoint{{X: 719, Y: 1, Idx: 0}})
	StepBiot(rng, b, index, 0, 0, false, worldSize, worldSize)

	if pos.X != 2 || pos.Y != 717 {
		t.Errorf("wrapped position = (%f, %f), want (2, 717)", pos.X, pos.Y)
	}
	if math.Abs(float64(vel.X-2.7)) > 1e-5 || math.Abs(float64(vel.Y+3.6)) > 1e-5 {
		t.Errorf("velocity after drag = (%f, %f), want (2.7, -3.6)", vel.X, vel.Y)
	}
	wantEnergy := float64(2 - 0.4*b.Props.Metabolism())
	if math.Abs(float64(energy.Value)-wantEnergy) > 1e-5 {
		t.Errorf("energy = %f, want %f", energy.Value, wantEnergy)
	}
	if energy.Age != 1 {
		t.Errorf("age = %d, want 1", energy.Age)
	}
}

func TestStepBiotEnergyBudget(t *testing.T) {
	ensureCache()
	rng := rand.New(rand.NewSource(26))
	index := BuildIndex([]BiotPoint{{X: 0, Y: 0, Idx: 0}})

	// Photosynthesizers run a surplus.
	b, _, _, energy := testBiot(genomeOf(repeat(components.GenePhotosynthesis, 5)...), 0, 0)
	before := energy.Value
	StepBiot(rng, b, index, 0, 0, false, worldSize, worldSize)
	if energy.Value <= before {
		t.Errorf("photosynthesizer energy %f -> %f, expected gain", before, energy.Value)
	}

	// Attackers pay upkeep with no income.
	b2, _, _, energy2 := testBiot(genomeOf(repeat(components.GeneAttack, 5)...), 0, 0)
	before2 := energy2.Value
	StepBiot(rng, b2, index, 0, 0, false, worldSize, worldSize)
	if energy2.Value >= before2 {
		t.Errorf("attacker energy %f -> %f, expected loss", before2, energy2.Value)
	}
}

func TestStepBiotSteersTowardFeedDirection(t *testing.T) {
	ensureCache()
	rng := rand.New(rand.NewSource(27))

	// Motion plus intelligence: impulses trigger with probability
	// 0.2*motion and must follow the feed direction exactly.
	genes := append(repeat(components.GeneMotion, 10), components.GeneIntelligence)
	genome := genomeOf(genes...)
	b, _, vel, energy := testBiot(genome, 100, 100)
	energy.Value = 1 // below reproduction threshold

	index := BuildIndex([]BiotPoint{{X: 100, Y: 100, Idx: 0}})

	kicked := 0
	for i := 0; i < 300 && kicked == 0; i++ {
		vel.X, vel.Y = 0, 0
		energy.Value = 1
		StepBiot(rng, b, index, 1, 0, true, worldSize, worldSize)
		if vel.X != 0 || vel.Y != 0 {
			kicked++
			speed := 7 * b.Props.Motion / b.Props.Weight()
			if math.Abs(float64(vel.X-speed)) > 1e-5 || vel.Y != 0 {
				t.Errorf("impulse = (%f, %f), want (%f, 0) along the feed direction", vel.X, vel.Y, speed)
			}
		}
	}
	if kicked == 0 {
		t.Error("no motion impulse in 300 steps at probability 0.2*motion")
	}
}

func TestStepBiotRandomKickMagnitude(t *testing.T) {
	ensureCache()
	rng := rand.New(rand.NewSource(28))

	genome := genomeOf(repeat(components.GeneMotion, 10)...)
	b, _, vel, energy := testBiot(genome, 100, 100)

	index := BuildIndex([]BiotPoint{{X: 100, Y: 100, Idx: 0}})

	kicked := 0
	for i := 0; i < 300 && kicked == 0; i++ {
		vel.X, vel.Y = 0, 0
		energy.Value = 1
		StepBiot(rng, b, index, 0, 0, false, worldSize, worldSize)
		if vel.X != 0 || vel.Y != 0 {
			kicked++
			want := float64(7 * b.Props.Motion / b.Props.Weight())
			got := math.Sqrt(float64(vel.X*vel.X + vel.Y*vel.Y))
			if math.Abs(got-want) > 1e-4 {
				t.Errorf("random kick speed = %f, want %f", got, want)
			}
		}
	}
	if kicked == 0 {
		t.Error("no motion impulse in 300 steps")
	}
}

func TestFeedDirectionUnitLength(t *testing.T) {
	ensureCache()

	fx, fy := FeedDirection(10, 10, 13, 14)
	n := math.Sqrt(float64(fx*fx + fy*fy))
	if math.Abs(n-1) > 1e-5 {
		t.Errorf("feed direction length = %f, want 1", n)
	}
	if fx <= 0 || fy <= 0 {
		t.Errorf("feed direction = (%f, %f), want positive components", fx, fy)
	}
}

func TestFeedDirectionCoincidentPoints(t *testing.T) {
	ensureCache()

	// The epsilon offset keeps the normalization finite when the
	// neighbor sits exactly on top of the querying biot.
	fx, fy := FeedDirection(50, 50, 50, 50)
	if math.IsNaN(float64(fx)) || math.IsNaN(float64(fy)) {
		t.Fatal("feed direction is NaN for coincident points")
	}
	n := math.Sqrt(float64(fx*fx + fy*fy))
	if math.Abs(n-1) > 1e-5 {
		t.Errorf("feed direction length = %f, want 1", n)
	}
}

func TestDetectionRangeSq(t *testing.T) {
	ensureCache()

	if got := DetectionRangeSq(10); got != 160000 {
		t.Errorf("DetectionRangeSq(10) = %f, want 160000", got)
	}
	if got := DetectionRangeSq(0); got != 0 {
		t.Errorf("DetectionRangeSq(0) = %f, want 0", got)
	}
}
