package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/morphgraph/config"
)

// TransitionEvent records the start of a morph between two functions.
type TransitionEvent struct {
	Frame  int64   `csv:"frame"`
	Time   float64 `csv:"time"`
	From   string  `csv:"from"`
	To     string  `csv:"to"`
	Mode   string  `csv:"mode"`
	Kernel int     `csv:"kernel"`
}

// csvFile is an output file that writes its header with the first record.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles run output: CSV logs plus a config snapshot.
type OutputManager struct {
	dir         string
	frames      csvFile
	perf        csvFile
	transitions csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	files := []struct {
		name string
		dst  *csvFile
	}{
		{"frames.csv", &om.frames},
		{"perf.csv", &om.perf},
		{"transitions.csv", &om.transitions},
	}
	for _, file := range files {
		f, err := os.Create(filepath.Join(dir, file.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", file.name, err)
		}
		file.dst.f = f
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFrames appends a frame-rate reading to frames.csv.
func (om *OutputManager) WriteFrames(r FrameReading) error {
	if om == nil {
		return nil
	}
	if err := om.frames.write([]FrameReading{r}); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64, resolution int) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(frame, resolution)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteTransition appends a transition event to transitions.csv.
func (om *OutputManager) WriteTransition(ev TransitionEvent) error {
	if om == nil {
		return nil
	}
	if err := om.transitions.write([]TransitionEvent{ev}); err != nil {
		return fmt.Errorf("writing transition: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{&om.frames, &om.perf, &om.transitions} {
		if c.f == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.f = nil
	}
	return firstErr
}

// SampleRecord is one evaluated grid cell.
type SampleRecord struct {
	Frame int64   `csv:"frame"`
	Index int     `csv:"index"`
	U     float64 `csv:"u"`
	V     float64 `csv:"v"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
}

// WriteSamples writes sample records as CSV, with a header when header is true.
func WriteSamples(w io.Writer, records []SampleRecord, header bool) error {
	if header {
		return gocsv.Marshal(records, w)
	}
	return gocsv.MarshalWithoutHeaders(records, w)
}
