package components

// Position represents an entity's world position.
// Kept inside [0, world) on both axes by the wraparound in the step.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity.
type Velocity struct {
	X, Y float32
}
