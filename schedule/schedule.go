// Package schedule decides which surface function the graph shows and when to
// morph to the next one.
package schedule

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"

	"github.com/pthm-cable/morphgraph/surface"
)

// ErrInvalidParameter is returned when a mutator receives a value outside its
// domain. The scheduler is left unchanged.
var ErrInvalidParameter = errors.New("invalid parameter")

// Mode selects how the next function is chosen once a hold expires.
type Mode uint8

const (
	Static                 Mode = iota // Never advance
	Cycle                              // Next function in ordinal order
	Random                             // Uniform over all functions
	RandomExcludingCurrent             // Biased draw that never repeats the current function

	numModes
)

var modeNames = [numModes]string{
	Static:                 "static",
	Cycle:                  "cycle",
	Random:                 "random",
	RandomExcludingCurrent: "random_excluding_current",
}

func (m Mode) String() string {
	if m < numModes {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m < numModes
}

// Modes returns all modes in declaration order.
func Modes() []Mode {
	out := make([]Mode, numModes)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// ParseMode converts a config/CLI string into a Mode.
func ParseMode(s string) (Mode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch key {
	case "no_repeat", "random_no_repeat":
		return RandomExcludingCurrent, nil
	}
	for i, n := range modeNames {
		if n == key {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown advance mode %q", ErrInvalidParameter, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: advance mode %d", ErrInvalidParameter, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// State is the scheduler phase.
type State uint8

const (
	Holding State = iota
	Transitioning
)

func (s State) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "holding"
}

// Config is the scheduling policy.
type Config struct {
	Hold       float64 `yaml:"hold" toml:"hold"`             // Seconds a function is shown before advancing
	Transition float64 `yaml:"transition" toml:"transition"` // Seconds spent morphing between functions
	Mode       Mode    `yaml:"mode" toml:"mode"`
}

// Validate checks durations and mode.
func (c Config) Validate() error {
	if err := validateDurations(c.Hold, c.Transition); err != nil {
		return err
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: advance mode %d", ErrInvalidParameter, uint8(c.Mode))
	}
	return nil
}

func validateDurations(hold, transition float64) error {
	if !(hold >= 0) || math.IsInf(hold, 1) {
		return fmt.Errorf("%w: hold duration %v", ErrInvalidParameter, hold)
	}
	if !(transition >= 0) || math.IsInf(transition, 1) {
		return fmt.Errorf("%w: transition duration %v", ErrInvalidParameter, transition)
	}
	return nil
}

// Scheduler is a two-state machine advanced once per frame. It is not safe for
// concurrent use; each graph owns its own scheduler.
type Scheduler struct {
	cfg Config
	rng *rand.Rand

	current  surface.Name
	previous surface.Name
	state    State
	elapsed  float64
	progress float64 // raw, in [0, 1)
}

// New returns a scheduler holding initial. rng drives the random modes.
func New(initial surface.Name, cfg Config, rng *rand.Rand) (*Scheduler, error) {
	if !initial.Valid() {
		return nil, fmt.Errorf("%w: surface function %d", ErrInvalidParameter, uint8(initial))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Scheduler{
		cfg:      cfg,
		rng:      rng,
		current:  initial,
		previous: initial,
	}, nil
}

// Reset returns to Holding on initial with no elapsed time.
func (s *Scheduler) Reset(initial surface.Name) error {
	if !initial.Valid() {
		return fmt.Errorf("%w: surface function %d", ErrInvalidParameter, uint8(initial))
	}
	s.current = initial
	s.previous = initial
	s.state = Holding
	s.elapsed = 0
	s.progress = 0
	return nil
}

// Update advances the state machine by dt seconds.
func (s *Scheduler) Update(dt float64) {
	s.elapsed += dt

	if s.state == Transitioning {
		if s.elapsed < s.cfg.Transition {
			s.progress = s.elapsed / s.cfg.Transition
			return
		}
		s.previous = s.current
		s.progress = 0
		s.elapsed -= s.cfg.Transition
		s.state = Holding
		return
	}

	if s.current != s.previous {
		s.beginTransition()
		return
	}

	if s.elapsed >= s.cfg.Hold {
		s.elapsed -= s.cfg.Hold
		s.current = s.pickNext()
		if s.current != s.previous {
			s.beginTransition()
		}
	}
}

func (s *Scheduler) beginTransition() {
	s.state = Transitioning
	s.elapsed = 0
}

func (s *Scheduler) pickNext() surface.Name {
	switch s.cfg.Mode {
	case Cycle:
		return surface.Next(s.current)
	case Random:
		return surface.Random(s.rng)
	case RandomExcludingCurrent:
		return surface.RandomExcluding(s.rng, s.current)
	default:
		return s.current
	}
}

// Current returns the function being shown or morphed to.
func (s *Scheduler) Current() surface.Name { return s.current }

// Previous returns the function being morphed from. Equal to Current when stable.
func (s *Scheduler) Previous() surface.Name { return s.previous }

// State returns the current phase.
func (s *Scheduler) State() State { return s.state }

// Transitioning reports whether a morph is in progress.
func (s *Scheduler) Transitioning() bool { return s.state == Transitioning }

// Blending reports whether evaluation must go through a morph this frame. This
// includes the frame between a forced function change and the start of the
// transition.
func (s *Scheduler) Blending() bool {
	return s.Transitioning() || s.current != s.previous
}

// Elapsed returns seconds accumulated in the current phase.
func (s *Scheduler) Elapsed() float64 { return s.elapsed }

// Progress returns the raw, linear transition fraction.
func (s *Scheduler) Progress() float64 { return s.progress }

// EasedProgress returns the transition fraction remapped with smoothstep.
func (s *Scheduler) EasedProgress() float64 {
	return Smoothstep(s.progress)
}

// Config returns the active policy.
func (s *Scheduler) Config() Config { return s.cfg }

// KernelIndex returns the compute kernel matching the current function pair.
func (s *Scheduler) KernelIndex() int {
	return surface.KernelIndex(s.current, s.previous, s.Blending())
}

// SetFunction forces the current function. The transition starts on the next
// Update.
func (s *Scheduler) SetFunction(name surface.Name) error {
	if !name.Valid() {
		return fmt.Errorf("%w: surface function %d", ErrInvalidParameter, uint8(name))
	}
	s.current = name
	return nil
}

// SetMode changes the advance policy.
func (s *Scheduler) SetMode(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: advance mode %d", ErrInvalidParameter, uint8(mode))
	}
	s.cfg.Mode = mode
	return nil
}

// SetDurations changes hold and transition durations together.
func (s *Scheduler) SetDurations(hold, transition float64) error {
	if err := validateDurations(hold, transition); err != nil {
		return err
	}
	s.cfg.Hold = hold
	s.cfg.Transition = transition
	return nil
}

// Smoothstep is the cubic Hermite 3p²-2p³ with p clamped to [0, 1].
func Smoothstep(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return p * p * (3 - 2*p)
}

// Snapshot is a read-only view of the scheduler for logging and display.
type Snapshot struct {
	Current  surface.Name
	Previous surface.Name
	State    State
	Mode     Mode
	Elapsed  float64
	Progress float64
	Eased    float64
	Kernel   int
}

// Snapshot captures the scheduler state.
func (s *Scheduler) Snapshot() Snapshot {
	return Snapshot{
		Current:  s.current,
		Previous: s.previous,
		State:    s.state,
		Mode:     s.cfg.Mode,
		Elapsed:  s.Elapsed(),
		Progress: s.Progress(),
		Eased:    s.EasedProgress(),
		Kernel:   s.KernelIndex(),
	}
}

// LogValue implements slog.LogValuer.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("function", s.Current.String()),
		slog.String("previous", s.Previous.String()),
		slog.String("state", s.State.String()),
		slog.String("mode", s.Mode.String()),
		slog.Float64("progress", s.Eased),
		slog.Int("kernel", s.Kernel),
	)
}
