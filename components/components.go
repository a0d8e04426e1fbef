// Package components defines ECS components for the graph's point primitives.
package components

// Cell ties an entity to its sample in the grid.
type Cell struct {
	Index int // u_index*resolution + v_index
}
