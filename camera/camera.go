// Package camera provides an orbit camera for viewing the graph.
package camera

import "math"

// Camera orbits the origin at a fixed height. The graph occupies roughly the
// [-1,1] cube so the camera always looks at the origin.
type Camera struct {
	// Angle around the vertical axis in radians
	Yaw float32

	// Horizontal distance from the origin and height above it
	Distance float32
	Height   float32

	// Vertical field of view in degrees
	Fovy float32

	// Auto-orbit speed in radians per second (0 = stationary)
	OrbitSpeed float32
	Orbiting   bool

	// Zoom constraints on Distance
	MinDistance, MaxDistance float32

	initDistance, initHeight float32
}

// New creates an auto-orbiting camera.
func New(distance, height, fovy, orbitSpeed, minDistance, maxDistance float32) *Camera {
	if minDistance > maxDistance {
		minDistance, maxDistance = maxDistance, minDistance
	}
	c := &Camera{
		Fovy:         fovy,
		OrbitSpeed:   orbitSpeed,
		Orbiting:     orbitSpeed != 0,
		MinDistance:  minDistance,
		MaxDistance:  maxDistance,
		initDistance: distance,
		initHeight:   height,
	}
	c.Reset()
	return c
}

// Update advances the auto-orbit by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.Orbiting {
		c.Orbit(c.OrbitSpeed * dt)
	}
}

// Orbit rotates the camera around the vertical axis, wrapping to [0, 2π).
func (c *Camera) Orbit(radians float32) {
	c.Yaw = mod(c.Yaw+radians, 2*math.Pi)
}

// ZoomBy scales the distance by factor, clamped to min/max. Factors above one
// move the camera closer.
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// Raise moves the camera up or down by dy.
func (c *Camera) Raise(dy float32) {
	c.Height += dy
}

// ToggleOrbit starts or stops the auto-orbit.
func (c *Camera) ToggleOrbit() bool {
	c.Orbiting = !c.Orbiting
	return c.Orbiting
}

// Reset returns the camera to its initial placement.
func (c *Camera) Reset() {
	c.Yaw = 0
	c.SetDistance(c.initDistance)
	c.Height = c.initHeight
}

// Position returns the camera eye in world coordinates.
func (c *Camera) Position() (x, y, z float32) {
	s, co := math.Sincos(float64(c.Yaw))
	return c.Distance * float32(s), c.Height, c.Distance * float32(co)
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
