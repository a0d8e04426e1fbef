package components

// Position is a point's location in graph space.
type Position struct {
	X, Y, Z float32
}
