package game

import (
	"log/slog"

	"github.com/pthm-cable/morphgraph/config"
	"github.com/pthm-cable/morphgraph/schedule"
	"github.com/pthm-cable/morphgraph/surface"
	"github.com/pthm-cable/morphgraph/telemetry"
)

// recordTransition writes a transition-start event to the output directory.
func (g *Game) recordTransition(s schedule.Snapshot) {
	if g.output == nil {
		return
	}
	ev := telemetry.TransitionEvent{
		Frame:  g.frame,
		Time:   g.engine.Time(),
		From:   s.Previous.String(),
		To:     s.Current.String(),
		Mode:   s.Mode.String(),
		Kernel: s.Kernel,
	}
	if err := g.output.WriteTransition(ev); err != nil {
		slog.Error("failed to write transition", "error", err)
	}
}

// flushTelemetry feeds the frame counter and periodically reports perf stats.
func (g *Game) flushTelemetry(dt float64) {
	if reading, ok := g.frames.Record(dt); ok {
		if g.logStats {
			slog.Info("frame rate",
				"mode", reading.Mode.String(),
				"frames", reading.Frames,
				"best", reading.Best,
				"average", reading.Average,
				"worst", reading.Worst,
			)
		}
		if g.output != nil {
			if err := g.output.WriteFrames(reading); err != nil {
				slog.Error("failed to write frames", "error", err)
			}
		}
	}

	if g.cfg.Telemetry.LogInterval <= 0 || g.engine.Time() < g.nextPerfLog {
		return
	}
	g.nextPerfLog += g.cfg.Telemetry.LogInterval

	stats := g.perf.Stats()
	if g.logStats {
		stats.Log(g.logger())
		slog.Info("schedule", "schedule", g.engine.Schedule(), "time", g.engine.Time())
	}
	if g.output != nil {
		if err := g.output.WritePerf(stats, g.frame, g.engine.Resolution()); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// FrameReading returns the last published frame-rate reading.
func (g *Game) FrameReading() (telemetry.FrameReading, bool) {
	return g.frames.Last()
}

// ToggleDisplayMode switches the frame counter between FPS and MS.
func (g *Game) ToggleDisplayMode() telemetry.DisplayMode {
	mode := telemetry.DisplayMS
	if g.frames.Mode() == telemetry.DisplayMS {
		mode = telemetry.DisplayFPS
	}
	g.frames.SetMode(mode)
	return mode
}

// SaveSnapshot writes the current frame to the snapshot directory.
func (g *Game) SaveSnapshot() (string, error) {
	if g.snapshotDir == "" {
		return "", nil
	}
	samples := g.samples()
	snap := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RunID:      g.runID,
		Seed:       g.seed,
		Frame:      g.frame,
		Time:       g.engine.Time(),
		Backend:    string(g.backend),
		Resolution: g.engine.Resolution(),
		Schedule:   telemetry.NewScheduleState(g.engine.Schedule(), g.engine.ScheduleConfig()),
		Heights:    telemetry.ComputeHeightStats(samples),
		Samples:    samples,
	}
	path, err := telemetry.SaveSnapshot(snap, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return "", err
	}
	slog.Info("snapshot saved", "path", path, "heights", snap.Heights)
	return path, nil
}

// samples copies the active backend's latest positions.
func (g *Game) samples() []surface.Point3 {
	switch g.backend {
	case config.BackendBuffer:
		out := make([]surface.Point3, 0, len(g.buffer)/3)
		for i := 0; i+2 < len(g.buffer); i += 3 {
			out = append(out, surface.Point3{
				X: float64(g.buffer[i]),
				Y: float64(g.buffer[i+1]),
				Z: float64(g.buffer[i+2]),
			})
		}
		return out
	default:
		out := make([]surface.Point3, 0, g.points.Len())
		for i := 0; i < g.points.Len(); i++ {
			pos, _ := g.points.At(i)
			out = append(out, surface.Point3{X: float64(pos.X), Y: float64(pos.Y), Z: float64(pos.Z)})
		}
		return out
	}
}
