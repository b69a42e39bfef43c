package components

// Per-gene trait contributions.
const (
	traitIncrement        = 0.1  // attack, defense, photosynthesis, motion
	intelligenceIncrement = 10.0 // intelligence
)

// Metabolism cost weights per trait.
const (
	metabolismScale        = 0.2
	metabolismAttack       = 4.5
	metabolismDefense      = 2.3
	metabolismMotion       = 2.5
	metabolismIntelligence = 0.1
)

// Properties holds the five numeric traits of a biot. They are fully
// derived from the genome; AdjustToGenome must run after every genome
// change so the two never drift apart.
type Properties struct {
	Attack         float32
	Defense        float32
	Photosynthesis float32
	Motion         float32
	Intelligence   float32
}

// reset clears all traits before re-accumulation.
func (p *Properties) reset() {
	p.Attack = 0
	p.Defense = 0
	p.Photosynthesis = 0
	p.Motion = 0
	p.Intelligence = 0
}

// AdjustToGenome recomputes all traits from scratch. Repeated calls
// with the same genome are idempotent.
func (p *Properties) AdjustToGenome(genome *Genome) {
	p.reset()
	for _, gene := range genome.Genes {
		switch gene {
		case GeneNone:
		case GeneAttack:
			p.Attack += traitIncrement
		case GeneDefense:
			p.Defense += traitIncrement
		case GenePhotosynthesis:
			p.Photosynthesis += traitIncrement
		case GeneMotion:
			p.Motion += traitIncrement
		case GeneIntelligence:
			p.Intelligence += intelligenceIncrement
		}
	}
}

// Metabolism returns the per-tick energy upkeep cost.
func (p *Properties) Metabolism() float32 {
	return metabolismScale * (metabolismAttack*p.Attack +
		metabolismDefense*p.Defense +
		metabolismMotion*p.Motion +
		metabolismIntelligence*p.Intelligence)
}

// Weight is the combined mass of the physical traits. It scales body
// size, base life, and movement. An all-None or all-Intelligence genome
// has weight 0; never divide by it unguarded.
func (p *Properties) Weight() float32 {
	return p.Attack + p.Defense + p.Photosynthesis + p.Motion
}
