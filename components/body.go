package components

// Scale is the uniform edge length of a point's cube. Every point on a grid
// shares the grid's step.
type Scale struct {
	Size float32
}
