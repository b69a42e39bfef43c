// Package components provides plain data components for the simulation.
package components

import (
	"fmt"
	"math/rand"
)

// Gene is one categorical trait-influence unit of a biot genome.
type Gene uint8

// Gene variants. GeneNone has no observable effect.
const (
	GeneNone Gene = iota
	GeneAttack
	GeneDefense
	GenePhotosynthesis
	GeneMotion
	GeneIntelligence

	// NumGeneVariants is the size of the closed gene set.
	NumGeneVariants = 6
)

// GenomeLength is the fixed number of gene slots per biot.
const GenomeLength = 13

// String returns the gene name for logs and telemetry.
func (g Gene) String() string {
	switch g {
	case GeneNone:
		return "none"
	case GeneAttack:
		return "attack"
	case GeneDefense:
		return "defense"
	case GenePhotosynthesis:
		return "photosynthesis"
	case GeneMotion:
		return "motion"
	case GeneIntelligence:
		return "intelligence"
	}
	return fmt.Sprintf("gene(%d)", uint8(g))
}

// RandomGene draws one gene uniformly from the closed variant set.
// An out-of-range draw is an internal consistency fault, not a
// recoverable condition.
func RandomGene(rng *rand.Rand) Gene {
	switch n := rng.Intn(NumGeneVariants); n {
	case 0:
		return GeneNone
	case 1:
		return GeneAttack
	case 2:
		return GeneDefense
	case 3:
		return GenePhotosynthesis
	case 4:
		return GeneMotion
	case 5:
		return GeneIntelligence
	default:
		panic(fmt.Sprintf("components: unexpected random gene index %d", n))
	}
}

// Genome is the fixed-length gene sequence defining a biot. Each biot
// exclusively owns its genome; copies are independent values.
type Genome struct {
	Genes [GenomeLength]Gene
}

// RandomGenome draws a genome of independent uniformly-random genes.
func RandomGenome(rng *rand.Rand) Genome {
	var g Genome
	for i := range g.Genes {
		g.Genes[i] = RandomGene(rng)
	}
	return g
}

// Mutate overwrites one uniformly chosen slot with a fresh random gene.
// The redraw may coincide with the old variant.
func (g *Genome) Mutate(rng *rand.Rand) {
	g.Genes[rng.Intn(GenomeLength)] = RandomGene(rng)
}

// Count returns how many slots hold the given variant.
func (g *Genome) Count(gene Gene) int {
	n := 0
	for _, v := range g.Genes {
		if v == gene {
			n++
		}
	}
	return n
}
