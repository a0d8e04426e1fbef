// Package engine is the boundary between the surface/transition core and a host
// renderer. The host calls Tick once per frame and writes the returned positions
// into its own primitives.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/morphgraph/grid"
	"github.com/pthm-cable/morphgraph/schedule"
	"github.com/pthm-cable/morphgraph/surface"
)

// ErrInvalidParameter wraps every rejected mutator call. Errors also match the
// sentinel of the package that rejected the value.
var ErrInvalidParameter = errors.New("invalid parameter")

// Options configure a new Engine.
type Options struct {
	Resolution    int
	MaxResolution int // 0 = unbounded
	Initial       surface.Name
	Schedule      schedule.Config
	Seed          int64
	Logger        *slog.Logger
}

// Engine owns one sample grid and one scheduler.
type Engine struct {
	maxResolution int
	grid          *grid.Grid
	sched         *schedule.Scheduler
	time          float64

	positions []surface.Point3
	packed    []float32

	log    *slog.Logger
	closed bool
}

// New allocates the grid and puts the scheduler in Holding on opts.Initial.
func New(opts Options) (*Engine, error) {
	if opts.MaxResolution < 0 {
		return nil, invalid(fmt.Errorf("max resolution %d", opts.MaxResolution))
	}
	if err := checkResolution(opts.Resolution, opts.MaxResolution); err != nil {
		return nil, err
	}

	sched, err := schedule.New(opts.Initial, opts.Schedule, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, invalid(err)
	}
	g, err := grid.Build(opts.Resolution)
	if err != nil {
		return nil, invalid(err)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	e := &Engine{
		maxResolution: opts.MaxResolution,
		grid:          g,
		sched:         sched,
		log:           log,
	}
	e.log.Info("engine initialized",
		"resolution", opts.Resolution,
		"max_resolution", opts.MaxResolution,
		"function", opts.Initial.String(),
		"mode", opts.Schedule.Mode.String(),
		"hold", opts.Schedule.Hold,
		"transition", opts.Schedule.Transition,
	)
	return e, nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
}

func checkResolution(res, limit int) error {
	if res < 1 {
		return invalid(fmt.Errorf("%w: resolution %d", grid.ErrInvalidParameter, res))
	}
	if limit > 0 && res > limit {
		return invalid(fmt.Errorf("%w: resolution %d exceeds maximum %d", grid.ErrInvalidParameter, res, limit))
	}
	return nil
}

// advance moves the clock and the scheduler forward and logs phase changes.
func (e *Engine) advance(dt float64) {
	before := e.sched.State()
	e.time += dt
	e.sched.Update(dt)

	after := e.sched.State()
	switch {
	case before == schedule.Holding && after == schedule.Transitioning:
		e.log.Info("transition started", "schedule", e.sched.Snapshot(), "time", e.time)
	case before == schedule.Transitioning && after == schedule.Holding:
		e.log.Debug("transition complete", "schedule", e.sched.Snapshot(), "time", e.time)
	}
}

// Tick advances by dt seconds and returns one position per grid cell in
// row-major order (u outer, v inner). The returned slice is reused by the next
// Tick. After Shutdown it returns nil.
func (e *Engine) Tick(dt float64) []surface.Point3 {
	if e.closed {
		return nil
	}
	e.advance(dt)
	e.positions = e.grid.Evaluate(e.sched, e.time, e.positions)
	return e.positions
}

// TickPacked is Tick for buffer hosts: positions are interleaved float32 xyz
// triples, accompanied by the uniforms a compute stage needs.
func (e *Engine) TickPacked(dt float64) ([]float32, grid.Uniforms) {
	if e.closed {
		return nil, grid.Uniforms{}
	}
	e.advance(dt)
	var uni grid.Uniforms
	e.packed, uni = e.grid.EvaluatePacked(e.sched, e.time, e.packed)
	return e.packed, uni
}

// SetResolution rebuilds the sample grid. Output buffers are reallocated in full
// on the next Tick. On error nothing changes.
func (e *Engine) SetResolution(res int) error {
	if err := checkResolution(res, e.maxResolution); err != nil {
		return err
	}
	if res == e.grid.Resolution() {
		return nil
	}
	g, err := grid.Build(res)
	if err != nil {
		return invalid(err)
	}
	old := e.grid.Resolution()
	e.grid.Release()
	e.grid = g
	e.positions = nil
	e.packed = nil
	e.log.Info("resolution changed", "from", old, "to", res)
	return nil
}

// SetMaxResolution changes the upper bound. A grid above the new bound is
// rebuilt at the bound.
func (e *Engine) SetMaxResolution(limit int) error {
	if limit < 0 {
		return invalid(fmt.Errorf("max resolution %d", limit))
	}
	e.maxResolution = limit
	if limit > 0 && e.grid.Resolution() > limit {
		return e.SetResolution(limit)
	}
	return nil
}

// SetFunction forces a transition to name starting on the next Tick.
func (e *Engine) SetFunction(name surface.Name) error {
	if err := e.sched.SetFunction(name); err != nil {
		return invalid(err)
	}
	return nil
}

// SetAdvanceMode changes how the next function is chosen.
func (e *Engine) SetAdvanceMode(mode schedule.Mode) error {
	if err := e.sched.SetMode(mode); err != nil {
		return invalid(err)
	}
	return nil
}

// SetDurations changes hold and transition durations.
func (e *Engine) SetDurations(hold, transition float64) error {
	if err := e.sched.SetDurations(hold, transition); err != nil {
		return invalid(err)
	}
	return nil
}

// Shutdown releases the grid and output buffers.
func (e *Engine) Shutdown() {
	if e.closed {
		return
	}
	e.grid.Release()
	e.positions = nil
	e.packed = nil
	e.closed = true
	e.log.Info("engine shut down", "time", e.time)
}

// Resolution returns the current grid resolution.
func (e *Engine) Resolution() int { return e.grid.Resolution() }

// MaxResolution returns the configured upper bound (0 = unbounded).
func (e *Engine) MaxResolution() int { return e.maxResolution }

// At returns the sample coordinates of position index i in the current grid.
// ok is false for an index outside the grid and after Shutdown.
func (e *Engine) At(i int) (u, v float64, ok bool) {
	if e.closed {
		return 0, 0, false
	}
	return e.grid.At(i)
}

// Step returns the cell size of the current grid, or 0 after Shutdown.
func (e *Engine) Step() float64 {
	if e.closed {
		return 0
	}
	return e.grid.Step()
}

// Len returns the number of positions produced per Tick, or 0 after Shutdown.
func (e *Engine) Len() int {
	if e.closed {
		return 0
	}
	return e.grid.Len()
}

// Time returns the accumulated function clock.
func (e *Engine) Time() float64 { return e.time }

// Schedule returns a snapshot of the scheduler.
func (e *Engine) Schedule() schedule.Snapshot { return e.sched.Snapshot() }

// ScheduleConfig returns the active scheduling policy.
func (e *Engine) ScheduleConfig() schedule.Config { return e.sched.Config() }
