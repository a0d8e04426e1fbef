package telemetry

import (
	"math"
	"testing"
)

func TestFrameCounterFPS(t *testing.T) {
	fc := NewFrameCounter(1.0, DisplayFPS)

	// 0.25 + 0.125*6 = 1.0 exactly
	frames := []float64{0.25, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125}
	var r FrameReading
	var ok bool
	for i, d := range frames {
		r, ok = fc.Record(d)
		if i < len(frames)-1 && ok {
			t.Fatalf("reading published early at frame %d", i)
		}
	}
	if !ok {
		t.Fatal("expected reading after one second of frames")
	}

	if r.Frames != 7 {
		t.Errorf("frames = %d, want 7", r.Frames)
	}
	if r.Best != 8 {
		t.Errorf("best = %v fps, want 8", r.Best)
	}
	if r.Worst != 4 {
		t.Errorf("worst = %v fps, want 4", r.Worst)
	}
	if math.Abs(r.Average-7) > 1e-12 {
		t.Errorf("average = %v fps, want 7", r.Average)
	}
	if r.Unit != "fps" {
		t.Errorf("unit = %q", r.Unit)
	}
}

func TestFrameCounterMS(t *testing.T) {
	fc := NewFrameCounter(0.5, DisplayMS)
	var r FrameReading
	var ok bool
	for _, d := range []float64{0.25, 0.125, 0.125} {
		r, ok = fc.Record(d)
	}
	if !ok {
		t.Fatal("expected reading")
	}
	if r.Best != 125 || r.Worst != 250 {
		t.Errorf("best/worst = %v/%v ms, want 125/250", r.Best, r.Worst)
	}
	if math.Abs(r.Average-500.0/3) > 1e-9 {
		t.Errorf("average = %v ms", r.Average)
	}
}

func TestFrameCounterResetsWindow(t *testing.T) {
	fc := NewFrameCounter(0.5, DisplayFPS)
	fc.Record(0.5)

	// A slow frame in the first window must not leak into the second.
	var r FrameReading
	for i := 0; i < 4; i++ {
		r, _ = fc.Record(0.125)
	}
	if r.Worst != 8 || r.Frames != 4 {
		t.Errorf("second window = %+v, want 4 frames at 8 fps", r)
	}
}

func TestFrameCounterIgnoresNonPositive(t *testing.T) {
	fc := NewFrameCounter(0.1, DisplayFPS)
	if _, ok := fc.Record(0); ok {
		t.Error("zero duration produced a reading")
	}
	if _, ok := fc.Last(); ok {
		t.Error("Last reported a reading before any window completed")
	}
}

func TestFrameReadingText(t *testing.T) {
	r := FrameReading{Mode: DisplayMS, Best: 16.04, Average: 16.66, Worst: 33.3}
	want := "MS\n16.0\n16.7\n33.3"
	if got := r.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestParseDisplayMode(t *testing.T) {
	if m, err := ParseDisplayMode("MS"); err != nil || m != DisplayMS {
		t.Errorf("ParseDisplayMode(MS) = %v, %v", m, err)
	}
	if _, err := ParseDisplayMode("hz"); err == nil {
		t.Error("expected error")
	}
}
