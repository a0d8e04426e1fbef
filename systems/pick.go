package systems

import (
	"math"

	"github.com/pthm-cable/morphgraph/components"
)

// Ray is a pick ray in world space. Dir need not be normalized.
type Ray struct {
	OX, OY, OZ float32
	DX, DY, DZ float32
}

// RayBox intersects a ray with the axis-aligned cube centered at c with the
// given edge length. It returns the entry distance along the ray in units of
// Dir, or false when the cube is missed or behind the origin.
func RayBox(r Ray, c components.Position, size float32) (float32, bool) {
	half := size / 2
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	axes := [3][3]float32{
		{r.OX, r.DX, c.X},
		{r.OY, r.DY, c.Y},
		{r.OZ, r.DZ, c.Z},
	}
	for _, a := range axes {
		o, d, center := a[0], a[1], a[2]
		lo, hi := center-half, center+half
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

// PickCell returns the index of the nearest cell the ray hits.
func (p *PointPool) PickCell(r Ray) (int, bool) {
	best := -1
	bestT := float32(math.Inf(1))

	query := p.filter.Query()
	for query.Next() {
		pos, scale, cell := query.Get()
		if t, ok := RayBox(r, *pos, scale.Size); ok && t < bestT {
			bestT = t
			best = cell.Index
		}
	}
	return best, best >= 0
}
