package systems

import "github.com/pthm-cable/morphgraph/telemetry"

// SystemInfo describes one timed frame phase for UI display.
type SystemInfo struct {
	ID          string // Phase identifier used by the perf collector
	Name        string // Display name
	Description string
	Category    string // CategoryCore or CategoryHost
}

// Phase categories.
const (
	CategoryCore = "core" // Surface evaluation
	CategoryHost = "host" // Everything the host does with the positions
)

// SystemRegistry keeps phase naming in one place so the perf panel and the
// perf collector agree.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with every frame phase.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseEvaluate, Name: "Evaluate", Description: "Advances the schedule and samples the grid", Category: CategoryCore})
	r.Register(SystemInfo{ID: telemetry.PhaseWrite, Name: "Write", Description: "Copies positions into points or the buffer", Category: CategoryHost})
	r.Register(SystemInfo{ID: telemetry.PhaseRebuild, Name: "Rebuild", Description: "Recreates points after a resolution change", Category: CategoryHost})
	r.Register(SystemInfo{ID: telemetry.PhaseDraw, Name: "Draw", Description: "Renders the graph", Category: CategoryHost})
	r.Register(SystemInfo{ID: telemetry.PhaseUI, Name: "UI", Description: "Control panel and HUD", Category: CategoryHost})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, ok := r.byID[info.ID]; ok {
		for i := range r.systems {
			if r.systems[i].ID == info.ID {
				r.systems[i] = info
			}
		}
	} else {
		r.systems = append(r.systems, info)
	}
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// Categories returns the distinct categories in registration order.
func (r *SystemRegistry) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// ByCategory returns phases filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

