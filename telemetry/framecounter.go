package telemetry

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DisplayMode selects frames per second or milliseconds per frame.
type DisplayMode uint8

const (
	DisplayFPS DisplayMode = iota
	DisplayMS
)

// ParseDisplayMode converts "fps" or "ms".
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(s) {
	case "fps":
		return DisplayFPS, nil
	case "ms":
		return DisplayMS, nil
	}
	return 0, fmt.Errorf("unknown display mode %q", s)
}

func (m DisplayMode) String() string {
	if m == DisplayMS {
		return "MS"
	}
	return "FPS"
}

// FrameReading is one published frame-rate sample. In FPS mode Best is the
// highest rate; in MS mode Best is the shortest frame.
type FrameReading struct {
	Mode    DisplayMode `csv:"-"`
	Frames  int         `csv:"frames"`
	Best    float64     `csv:"best"`
	Average float64     `csv:"average"`
	Worst   float64     `csv:"worst"`
	Unit    string      `csv:"unit"`
}

// Text formats the reading as the four-line HUD block.
func (r FrameReading) Text() string {
	return fmt.Sprintf("%s\n%.1f\n%.1f\n%.1f", r.Mode, r.Best, r.Average, r.Worst)
}

// FrameCounter accumulates unscaled frame durations and publishes best,
// average and worst once sampleDuration seconds have been collected.
type FrameCounter struct {
	sampleDuration float64
	mode           DisplayMode

	durations []float64
	total     float64

	last    FrameReading
	hasLast bool
}

// NewFrameCounter creates a counter. sampleDuration below 0.1s is raised to 0.1s.
func NewFrameCounter(sampleDuration float64, mode DisplayMode) *FrameCounter {
	if sampleDuration < 0.1 {
		sampleDuration = 0.1
	}
	return &FrameCounter{
		sampleDuration: sampleDuration,
		mode:           mode,
		durations:      make([]float64, 0, 256),
	}
}

// SetMode switches between FPS and MS for subsequent readings.
func (c *FrameCounter) SetMode(mode DisplayMode) {
	c.mode = mode
}

// Mode returns the active display mode.
func (c *FrameCounter) Mode() DisplayMode {
	return c.mode
}

// Record adds one frame. It returns a new reading and true when the sample
// window completes; the window is then reset.
func (c *FrameCounter) Record(frameDuration float64) (FrameReading, bool) {
	if frameDuration <= 0 {
		return c.last, false
	}
	c.durations = append(c.durations, frameDuration)
	c.total += frameDuration

	if c.total < c.sampleDuration {
		return c.last, false
	}

	frames := len(c.durations)
	best := floats.Min(c.durations)
	worst := floats.Max(c.durations)
	avg := c.total / float64(frames)

	r := FrameReading{Mode: c.mode, Frames: frames}
	switch c.mode {
	case DisplayMS:
		r.Best, r.Average, r.Worst = 1000*best, 1000*avg, 1000*worst
		r.Unit = "ms"
	default:
		r.Best, r.Average, r.Worst = 1/best, 1/avg, 1/worst
		r.Unit = "fps"
	}

	c.durations = c.durations[:0]
	c.total = 0
	c.last = r
	c.hasLast = true
	return r, true
}

// Last returns the most recent reading, if any.
func (c *FrameCounter) Last() (FrameReading, bool) {
	return c.last, c.hasLast
}
