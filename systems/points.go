package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morphgraph/components"
	"github.com/pthm-cable/morphgraph/surface"
)

// PointPool keeps one entity per grid cell. Entity i draws sample i; the pool
// is recreated in full whenever the cell count changes.
type PointPool struct {
	world    *ecs.World
	mapper   *ecs.Map3[components.Position, components.Scale, components.Cell]
	filter   ecs.Filter3[components.Position, components.Scale, components.Cell]
	entities []ecs.Entity
	size     float32
}

// NewPointPool creates an empty pool on the given world.
func NewPointPool(w *ecs.World) *PointPool {
	return &PointPool{
		world:  w,
		mapper: ecs.NewMap3[components.Position, components.Scale, components.Cell](w),
		filter: *ecs.NewFilter3[components.Position, components.Scale, components.Cell](w),
	}
}

// Rebuild releases every entity and creates n new ones of the given size,
// all starting at the origin.
func (p *PointPool) Rebuild(n int, size float32) {
	p.Release()

	if cap(p.entities) < n {
		p.entities = make([]ecs.Entity, 0, n)
	}
	for i := 0; i < n; i++ {
		pos := components.Position{}
		scale := components.Scale{Size: size}
		cell := components.Cell{Index: i}
		p.entities = append(p.entities, p.mapper.NewEntity(&pos, &scale, &cell))
	}
	p.size = size
}

// Write copies positions into the entities by cell index. Extra positions are
// ignored; entities without a matching position keep their last value.
func (p *PointPool) Write(positions []surface.Point3) {
	query := p.filter.Query()
	for query.Next() {
		pos, _, cell := query.Get()
		if cell.Index >= len(positions) {
			continue
		}
		pt := positions[cell.Index]
		pos.X = float32(pt.X)
		pos.Y = float32(pt.Y)
		pos.Z = float32(pt.Z)
	}
}

// Each calls fn for every live entity.
func (p *PointPool) Each(fn func(pos *components.Position, scale *components.Scale, cell *components.Cell)) {
	query := p.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// At returns the position of the entity drawing sample i.
func (p *PointPool) At(i int) (components.Position, bool) {
	if i < 0 || i >= len(p.entities) {
		return components.Position{}, false
	}
	pos, _, _ := p.mapper.Get(p.entities[i])
	return *pos, true
}

// Len returns the number of live entities.
func (p *PointPool) Len() int { return len(p.entities) }

// Size returns the edge length shared by every entity.
func (p *PointPool) Size() float32 { return p.size }

// Release removes every entity from the world.
func (p *PointPool) Release() {
	for _, e := range p.entities {
		p.world.RemoveEntity(e)
	}
	p.entities = p.entities[:0]
}
