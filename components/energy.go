package components

// Energy tracks a biot's life points and age.
// Value at or below zero means the biot dies at the next prune, as does
// reaching the configured maximum age.
type Energy struct {
	Value float32 // life points, absolute units
	Age   int32   // ticks alive
}
