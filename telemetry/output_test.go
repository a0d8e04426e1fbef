package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/morphgraph/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager methods are no-ops.
	if err := om.WriteFrames(FrameReading{}); err != nil {
		t.Errorf("WriteFrames on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteFrames(FrameReading{Frames: 60, Best: 61, Average: 60, Worst: 58, Unit: "fps"}); err != nil {
		t.Fatalf("WriteFrames: %v", err)
	}
	if err := om.WriteFrames(FrameReading{Frames: 59, Best: 60, Average: 59, Worst: 40, Unit: "fps"}); err != nil {
		t.Fatalf("WriteFrames: %v", err)
	}
	if err := om.WriteTransition(TransitionEvent{Frame: 300, Time: 5, From: "wave", To: "multi_wave", Mode: "cycle", Kernel: 7}); err != nil {
		t.Fatalf("WriteTransition: %v", err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatalf("reading frames.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("frames.csv has %d lines, want header + 2:\n%s", len(lines), data)
	}
	if lines[0] != "frames,best,average,worst,unit" {
		t.Errorf("header = %q", lines[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, "transitions.csv"))
	if err != nil {
		t.Fatalf("reading transitions.csv: %v", err)
	}
	if !strings.Contains(string(data), "wave,multi_wave,cycle,7") {
		t.Errorf("transitions.csv missing event:\n%s", data)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not load: %v", err)
	}
}

func TestWriteSamples(t *testing.T) {
	var buf bytes.Buffer
	records := []SampleRecord{{Frame: 1, Index: 0, U: -0.5, V: -0.5, X: -0.5, Y: 1, Z: -0.5}}
	if err := WriteSamples(&buf, records, true); err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}
	if err := WriteSamples(&buf, records, false); err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[0] != "frame,index,u,v,x,y,z" {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
