package systems

import "github.com/pthm-cable/biots/components"

// IsStronger reports whether a beats b in combat: a's attack must
// exceed b's attack plus a fraction of b's defense. The relation is
// not symmetric; both, neither, or exactly one side may be stronger.
func IsStronger(a, b *components.Properties) bool {
	return a.Attack > b.Attack+cachedDefenseFactor*b.Defense
}

// ResolveCombat applies the combat rule to a colliding pair. When
// exactly one side is stronger it absorbs the spoils fraction of the
// loser's energy and the loser is drained to zero, guaranteeing death
// at the next prune. A mutual or absent advantage leaves both
// untouched. Returns true when a side was defeated.
//
// Energy is mutated immediately, so later pairs in the same tick see
// the transferred values; callers resolve pairs in ascending snapshot
// order to keep the compounding well defined.
func ResolveCombat(aProps, bProps *components.Properties, aEnergy, bEnergy *components.Energy) bool {
	aWins := IsStronger(aProps, bProps)
	bWins := IsStronger(bProps, aProps)
	if aWins == bWins {
		return false
	}
	if aWins {
		aEnergy.Value += cachedSpoilsFraction * bEnergy.Value
		bEnergy.Value = 0
	} else {
		bEnergy.Value += cachedSpoilsFraction * aEnergy.Value
		aEnergy.Value = 0
	}
	return true
}
