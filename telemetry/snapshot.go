package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/morphgraph/schedule"
	"github.com/pthm-cable/morphgraph/surface"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds one frame of graph state for offline inspection.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Seed    int64  `json:"seed"`

	Frame      int64   `json:"frame"`
	Time       float64 `json:"time"`
	Backend    string  `json:"backend"`
	Resolution int     `json:"resolution"`

	Schedule ScheduleState `json:"schedule"`
	Heights  HeightStats   `json:"heights"`

	Samples []surface.Point3 `json:"samples,omitempty"`
}

// ScheduleState is the JSON form of a scheduler snapshot.
type ScheduleState struct {
	Function   surface.Name  `json:"function"`
	Previous   surface.Name  `json:"previous"`
	State      string        `json:"state"`
	Mode       schedule.Mode `json:"mode"`
	Progress   float64       `json:"progress"`
	Kernel     int           `json:"kernel"`
	Hold       float64       `json:"hold"`
	Transition float64       `json:"transition"`
}

// NewScheduleState converts a scheduler snapshot and its policy.
func NewScheduleState(s schedule.Snapshot, cfg schedule.Config) ScheduleState {
	return ScheduleState{
		Function:   s.Current,
		Previous:   s.Previous,
		State:      s.State.String(),
		Mode:       s.Mode,
		Progress:   s.Eased,
		Kernel:     s.Kernel,
		Hold:       cfg.Hold,
		Transition: cfg.Transition,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d_%s.json", snapshot.Frame, snapshot.Schedule.Function)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	return &snapshot, nil
}
