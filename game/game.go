// Package game owns the simulation state and orchestrates ticks.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/biots/camera"
	"github.com/pthm-cable/biots/components"
	"github.com/pthm-cable/biots/config"
	"github.com/pthm-cable/biots/systems"
	"github.com/pthm-cable/biots/telemetry"
)

// Options configures a new Game.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers - the 5 components every biot carries
	biotMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Energy,
		components.Genome,
		components.Properties,
	]
	biotFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Energy,
		components.Genome,
		components.Properties,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	energyMap *ecs.Map1[components.Energy]
	genomeMap *ecs.Map1[components.Genome]
	propsMap  *ecs.Map1[components.Properties]

	// Per-tick scratch, reused across ticks. snapshot[i] and points[i]
	// describe the same biot; the slot index i is the only identity a
	// biot has inside one tick's spatial queries.
	snapshot  []ecs.Entity
	points    []systems.BiotPoint
	offspring []systems.Offspring

	// Telemetry
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	// Rendering (nil in headless mode)
	camera *camera.Camera

	// State
	tick           int32
	paused         bool
	aliveCount     int
	stepsPerUpdate int

	// Dimensions
	worldWidth, worldHeight   float32
	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		biotMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Energy,
			components.Genome,
			components.Properties,
		](world),
		biotFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Energy,
			components.Genome,
			components.Properties,
		](world),
		posMap:       ecs.NewMap1[components.Position](world),
		velMap:       ecs.NewMap1[components.Velocity](world),
		energyMap:    ecs.NewMap1[components.Energy](world),
		genomeMap:    ecs.NewMap1[components.Genome](world),
		propsMap:     ecs.NewMap1[components.Properties](world),
		logStats:     opts.LogStats,
		worldWidth:   cfg.Derived.WorldW32,
		worldHeight:  cfg.Derived.WorldH32,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}

	g.stepsPerUpdate = opts.StepsPerUpdate
	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = 1
	}

	g.collector = telemetry.NewCollector(cfg.Telemetry.WindowTicks)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else {
		g.outputManager = om
		if err := g.outputManager.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	if !opts.Headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, g.worldWidth, g.worldHeight)
	}

	g.spawnInitialPopulation()

	return g
}

// Update runs input handling and one or more simulation steps.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without any input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Len returns the number of live biots.
func (g *Game) Len() int {
	return g.aliveCount
}

// Unload releases resources held by the game.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
