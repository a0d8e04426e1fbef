package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morphgraph/components"
	"github.com/pthm-cable/morphgraph/surface"
)

func TestPointPoolRebuild(t *testing.T) {
	pool := NewPointPool(ecs.NewWorld())

	pool.Rebuild(16, 0.5)
	if pool.Len() != 16 {
		t.Fatalf("Len = %d, want 16", pool.Len())
	}
	if pool.Size() != 0.5 {
		t.Errorf("Size = %f, want 0.5", pool.Size())
	}

	seen := make(map[int]bool)
	pool.Each(func(_ *components.Position, scale *components.Scale, cell *components.Cell) {
		if scale.Size != 0.5 {
			t.Errorf("cell %d size = %f", cell.Index, scale.Size)
		}
		seen[cell.Index] = true
	})
	if len(seen) != 16 {
		t.Errorf("distinct cell indices = %d, want 16", len(seen))
	}
}

func TestPointPoolRebuildReplacesEntities(t *testing.T) {
	pool := NewPointPool(ecs.NewWorld())

	pool.Rebuild(100, 0.2)
	pool.Rebuild(9, 0.1)

	count := 0
	pool.Each(func(_ *components.Position, scale *components.Scale, cell *components.Cell) {
		count++
		if cell.Index >= 9 {
			t.Errorf("stale cell index %d", cell.Index)
		}
		if scale.Size != 0.1 {
			t.Errorf("stale size %f", scale.Size)
		}
	})
	if count != 9 {
		t.Errorf("live entities = %d, want 9", count)
	}
}

func TestPointPoolWrite(t *testing.T) {
	pool := NewPointPool(ecs.NewWorld())
	pool.Rebuild(4, 1)

	positions := []surface.Point3{
		{X: 0, Y: 1, Z: 2},
		{X: 3, Y: 4, Z: 5},
		{X: 6, Y: 7, Z: 8},
		{X: 9, Y: 10, Z: 11},
	}
	pool.Write(positions)

	for i, want := range positions {
		got, ok := pool.At(i)
		if !ok {
			t.Fatalf("At(%d) missing", i)
		}
		if got.X != float32(want.X) || got.Y != float32(want.Y) || got.Z != float32(want.Z) {
			t.Errorf("At(%d) = %+v, want %+v", i, got, want)
		}
	}
}

func TestPointPoolWriteShortSlice(t *testing.T) {
	pool := NewPointPool(ecs.NewWorld())
	pool.Rebuild(3, 1)

	pool.Write([]surface.Point3{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}, {X: 3, Y: 3, Z: 3}})
	pool.Write([]surface.Point3{{X: -1, Y: -1, Z: -1}})

	first, _ := pool.At(0)
	last, _ := pool.At(2)
	if first.X != -1 {
		t.Errorf("cell 0 X = %f, want -1", first.X)
	}
	if last.X != 3 {
		t.Errorf("cell 2 X = %f, want 3 (unchanged)", last.X)
	}
}

func TestPointPoolRelease(t *testing.T) {
	pool := NewPointPool(ecs.NewWorld())
	pool.Rebuild(25, 1)
	pool.Release()

	if pool.Len() != 0 {
		t.Errorf("Len after release = %d", pool.Len())
	}
	if _, ok := pool.At(0); ok {
		t.Error("At(0) should fail after release")
	}
	count := 0
	pool.Each(func(*components.Position, *components.Scale, *components.Cell) { count++ })
	if count != 0 {
		t.Errorf("live entities after release = %d", count)
	}
}
