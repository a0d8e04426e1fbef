package game

import "github.com/pthm-cable/morphgraph/config"

// Options holds configuration for game initialization. Zero values fall back
// to the loaded config.
type Options struct {
	Config      *config.Config // nil = config.Cfg()
	Backend     config.Backend
	Resolution  int
	Seed        int64
	OutputDir   string
	SnapshotDir string
	Headless    bool
	LogStats    bool
	FixedDT     float64 // Headless step in seconds; 0 = 1/target_fps
}
