package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame.
const (
	PhaseEvaluate = "evaluate" // Scheduler update and grid evaluation
	PhaseWrite    = "write"    // Copying positions into entities or the buffer
	PhaseRebuild  = "rebuild"  // Recreating primitives after a resolution change
	PhaseDraw     = "draw"
	PhaseUI       = "ui"
)

// Phases lists the built-in phases in frame order.
func Phases() []string {
	return []string{PhaseEvaluate, PhaseWrite, PhaseRebuild, PhaseDraw, PhaseUI}
}

// frameSample is one finished tick. phases is indexed by phase slot; slots
// registered after the sample was taken read as zero.
type frameSample struct {
	tick   time.Duration
	phases []time.Duration
}

// PerfCollector times the phases of each frame over a rolling window.
//
// Phases are identified by name and assigned a slot the first time they are
// seen, so per-frame accounting does not allocate once every phase has run.
type PerfCollector struct {
	window []frameSample
	next   int
	filled int

	slots map[string]int
	names []string

	open    bool
	current []time.Duration
	start   time.Time
	mark    time.Time
	phase   int // Slot being timed, -1 when none

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		window: make([]frameSample, windowSize),
		slots:  make(map[string]int),
		phase:  -1,
	}
	for _, name := range Phases() {
		p.slot(name)
	}
	return p
}

func (p *PerfCollector) slot(name string) int {
	if i, ok := p.slots[name]; ok {
		return i
	}
	i := len(p.names)
	p.slots[name] = i
	p.names = append(p.names, name)
	p.current = append(p.current, 0)
	return i
}

// InTick reports whether a tick has been started and not yet ended.
func (p *PerfCollector) InTick() bool {
	return p.open
}

// StartTick begins timing a new frame, discarding any unfinished one.
func (p *PerfCollector) StartTick() {
	for i := range p.current {
		p.current[i] = 0
	}
	p.start = time.Now()
	p.phase = -1
	p.open = true
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = p.slot(phase)
	p.mark = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current[p.phase] += now.Sub(p.mark)
	}
	p.phase = -1
}

// EndTick closes the running phase and records the frame. Calling it without
// a matching StartTick does nothing.
func (p *PerfCollector) EndTick() {
	if !p.open {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.open = false

	s := &p.window[p.next]
	s.tick = now.Sub(p.start)
	s.phases = append(s.phases[:0], p.current...)

	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// RecordFrame records wall-clock time between presented frames.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Samples int

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TickJitter      time.Duration // Standard deviation of tick durations

	PhaseAvg map[string]time.Duration
	PhaseMax map[string]time.Duration
	PhasePct map[string]float64 // Share of the average tick

	TicksPerSecond float64

	// Presented frames (graphics mode only)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Samples:       p.filled,
		PhaseAvg:      make(map[string]time.Duration),
		PhaseMax:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	sums := make([]time.Duration, len(p.names))
	maxes := make([]time.Duration, len(p.names))
	for i, sample := range p.window[:p.filled] {
		ticks[i] = float64(sample.tick)
		if i == 0 || sample.tick < s.MinTickDuration {
			s.MinTickDuration = sample.tick
		}
		s.MaxTickDuration = max(s.MaxTickDuration, sample.tick)
		for slot, d := range sample.phases {
			sums[slot] += d
			maxes[slot] = max(maxes[slot], d)
		}
	}

	mean, std := stat.MeanStdDev(ticks, nil)
	s.AvgTickDuration = time.Duration(mean)
	if p.filled > 1 {
		s.TickJitter = time.Duration(std)
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / mean
	}

	for slot, name := range p.names {
		if sums[slot] == 0 {
			continue
		}
		avg := sums[slot] / time.Duration(p.filled)
		s.PhaseAvg[name] = avg
		s.PhaseMax[name] = maxes[slot]
		if mean > 0 {
			s.PhasePct[name] = float64(avg) / mean * 100
		}
	}
	return s
}

// Log writes the stats as one "perf" line. Phases under 0.1% are omitted.
func (s PerfStats) Log(logger *slog.Logger) {
	attrs := []any{
		"samples", s.Samples,
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"jitter_us", s.TickJitter.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases() {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	logger.Info("perf", attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Frame       int64   `csv:"frame"`
	Resolution  int     `csv:"resolution"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	JitterUS    int64   `csv:"jitter_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	FPS         float64 `csv:"fps"`
	EvaluatePct float64 `csv:"evaluate_pct"`
	WritePct    float64 `csv:"write_pct"`
	RebuildPct  float64 `csv:"rebuild_pct"`
	DrawPct     float64 `csv:"draw_pct"`
	UIPct       float64 `csv:"ui_pct"`
}

// ToCSV flattens the stats for the given frame and grid resolution.
func (s PerfStats) ToCSV(frame int64, resolution int) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:       frame,
		Resolution:  resolution,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		MinTickUS:   s.MinTickDuration.Microseconds(),
		MaxTickUS:   s.MaxTickDuration.Microseconds(),
		JitterUS:    s.TickJitter.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
		FPS:         s.FPS,
		EvaluatePct: s.PhasePct[PhaseEvaluate],
		WritePct:    s.PhasePct[PhaseWrite],
		RebuildPct:  s.PhasePct[PhaseRebuild],
		DrawPct:     s.PhasePct[PhaseDraw],
		UIPct:       s.PhasePct[PhaseUI],
	}
}
