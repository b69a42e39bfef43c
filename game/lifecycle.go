package game

import (
	"github.com/pthm-cable/biots/components"
	"github.com/pthm-cable/biots/config"
	"github.com/pthm-cable/biots/systems"
)

// spawnInitialPopulation seeds the world with random biots.
func (g *Game) spawnInitialPopulation() {
	cfg := config.Cfg()
	for i := 0; i < cfg.Population.Initial; i++ {
		g.spawnRandomBiot()
	}
}

// spawnRandomBiot creates one biot with a random genome at a random
// position, starting at its base life with zero velocity.
func (g *Game) spawnRandomBiot() {
	genome := components.RandomGenome(g.rng)

	var props components.Properties
	props.AdjustToGenome(&genome)

	pos := components.Position{
		X: g.rng.Float32() * g.worldWidth,
		Y: g.rng.Float32() * g.worldHeight,
	}
	vel := components.Velocity{}
	energy := components.Energy{Value: systems.BaseLife(&props), Age: 0}

	g.biotMapper.NewEntity(&pos, &vel, &energy, &genome, &props)
	g.aliveCount++
}

// spawnOffspring inserts a buffered offspring into the live set.
func (g *Game) spawnOffspring(off *systems.Offspring) {
	pos := off.Pos
	vel := off.Vel
	energy := off.Energy
	genome := off.Genome
	props := off.Props

	g.biotMapper.NewEntity(&pos, &vel, &energy, &genome, &props)
	g.aliveCount++
}
