package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/wizard/input"
	"github.com/milk9111/wizard/levels"
	"github.com/milk9111/wizard/preload"
	"github.com/milk9111/wizard/render"
	"github.com/milk9111/wizard/sim"
	"go.uber.org/zap"
)

// Mode is the scheduler's position in the run/suspend cycle.
type Mode uint8

const (
	ModeSuspended Mode = iota
	// ModeLoading waits for the preload gate of a (re)started level.
	ModeLoading
	ModeRunning
)

func (m Mode) String() string {
	switch m {
	case ModeSuspended:
		return "suspended"
	case ModeLoading:
		return "loading"
	case ModeRunning:
		return "running"
	default:
		return "unknown"
	}
}

const (
	DefaultTimeUnit      = 10 * time.Millisecond
	DefaultMaxFrameDelta = 100 * time.Millisecond
)

type Options struct {
	Catalog *levels.Catalog
	// Level is started first. Empty means the first level of the sequence.
	Level   levels.ID
	Surface render.Surface
	Gate    *preload.Gate
	Frames  *FrameQueue
	Input   *input.Controller
	Now     func() time.Time

	TimeUnit      time.Duration
	MaxFrameDelta time.Duration
	SessionLimit  time.Duration
	ModalColumns  int

	Log *zap.Logger
}

// Scheduler owns the level lifecycle: it preloads, ticks once per frame,
// suspends on a verdict and resumes or restarts when the player dismisses
// the modal. All methods must be called from the game goroutine.
type Scheduler struct {
	catalog *levels.Catalog
	level   *levels.Level
	state   *sim.State
	ticker  sim.Ticker

	mode        Mode
	shown       sim.Verdict // verdict behind the modal while suspended
	deactivated bool
	seq         uint64 // bumped on every start, stale callbacks compare against it
	primed      bool   // the intro state's sprites have settled

	surface render.Surface
	gate    *preload.Gate
	frames  *FrameQueue
	input   *input.Controller
	now     func() time.Time

	timeUnit time.Duration
	maxDelta time.Duration
	limit    time.Duration
	columns  int

	log *zap.Logger
}

// New returns a scheduler suspended on the intro modal with the dismiss
// listener attached. The first level is built and preloaded behind the
// modal; dismissing the intro resumes that state.
func New(opts Options) (*Scheduler, error) {
	if opts.Catalog == nil {
		return nil, errors.New("engine: nil catalog")
	}
	if opts.Surface == nil {
		return nil, errors.New("engine: nil surface")
	}
	if opts.Gate == nil {
		return nil, errors.New("engine: nil preload gate")
	}
	if opts.Frames == nil {
		opts.Frames = &FrameQueue{}
	}
	if opts.Input == nil {
		opts.Input = input.NewController(opts.Log)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TimeUnit <= 0 {
		opts.TimeUnit = DefaultTimeUnit
	}
	if opts.MaxFrameDelta <= 0 {
		opts.MaxFrameDelta = DefaultMaxFrameDelta
	}
	if opts.SessionLimit <= 0 {
		opts.SessionLimit = levels.DefaultSessionLimit
	}
	if opts.ModalColumns <= 0 {
		opts.ModalColumns = render.ModalColumns
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Level == "" {
		opts.Level = opts.Catalog.Initial()
	}

	lvl, err := opts.Catalog.Lookup(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	s := &Scheduler{
		catalog:  opts.Catalog,
		level:    lvl,
		mode:     ModeSuspended,
		shown:    sim.Intro,
		surface:  opts.Surface,
		gate:     opts.Gate,
		frames:   opts.Frames,
		input:    opts.Input,
		now:      opts.Now,
		timeUnit: opts.TimeUnit,
		maxDelta: opts.MaxFrameDelta,
		limit:    opts.SessionLimit,
		columns:  opts.ModalColumns,
		log:      opts.Log,
	}
	s.input.AttachDismiss(s.dismiss)
	s.prime()
	s.render()
	return s, nil
}

// prime builds the current level's initial state while suspended and
// preloads its sprites so it can be drawn under the modal.
func (s *Scheduler) prime() {
	s.state = s.level.Initialize(sim.NewState())
	s.primed = false
	s.seq++
	seq := s.seq
	s.gate.Preload(string(s.level.ID()), s.state.Entities, func() {
		s.frames.Post(func() { s.settledSuspended(seq) })
	})
}

func (s *Scheduler) settledSuspended(seq uint64) {
	if seq != s.seq || s.mode != ModeSuspended {
		return
	}
	s.primed = true
	s.gate.MarkDegraded(s.state.Entities)
	s.render()
}

func (s *Scheduler) Mode() Mode           { return s.mode }
func (s *Scheduler) Level() *levels.Level { return s.level }
func (s *Scheduler) State() *sim.State    { return s.state }
func (s *Scheduler) Deactivated() bool    { return s.deactivated }

// Verdict is the verdict behind the modal while suspended, otherwise the
// verdict of the current state.
func (s *Scheduler) Verdict() sim.Verdict {
	if s.mode == ModeSuspended || s.state == nil {
		return s.shown
	}
	return s.state.Verdict
}

// Start (re)starts the current level.
func (s *Scheduler) Start(restart bool) {
	if err := s.StartLevel(s.level.ID(), restart); err != nil {
		s.log.Error("engine: start", zap.Error(err))
	}
}

// StartLevel makes id the current level and starts it. With restart, or
// when there is no state yet, the state is rebuilt from the level's
// initializer; otherwise the existing state continues with verdict Continue.
// The first tick runs once the preload gate has settled.
func (s *Scheduler) StartLevel(id levels.ID, restart bool) error {
	lvl, err := s.catalog.Lookup(id)
	if err != nil {
		return fmt.Errorf("engine: start: %w", err)
	}
	// Moving to another level always rebuilds the state but keeps the run clock.
	var runStartedAt time.Time
	if lvl != s.level {
		restart = true
		if s.state != nil {
			runStartedAt = s.state.RunStartedAt
		}
	}
	s.begin(lvl, restart, runStartedAt)
	return nil
}

func (s *Scheduler) begin(lvl *levels.Level, restart bool, runStartedAt time.Time) {
	s.input.Detach()
	s.level = lvl
	s.ticker = sim.Ticker{
		Rules:    sim.NewRuleSet(levels.CommonRules(s.now, s.limit), lvl.Rules()),
		Fireball: lvl.Projectile(),
	}

	now := s.now()
	if restart || s.state == nil {
		s.state = lvl.Initialize(sim.NewState())
		s.state.RunStartedAt = runStartedAt
	} else {
		s.state.Verdict = sim.Continue
	}
	s.state.LevelStartedAt = now
	if s.state.RunStartedAt.IsZero() {
		s.state.RunStartedAt = now
	}
	s.state.LastTickAt = nil

	s.seq++
	seq := s.seq
	s.mode = ModeLoading
	s.log.Info("engine: starting level",
		zap.String("level", string(lvl.ID())),
		zap.Bool("restart", restart),
		zap.Int("entities", len(s.state.Entities)))

	s.gate.Preload(string(lvl.ID()), s.state.Entities, func() {
		s.frames.Post(func() { s.ready(seq) })
	})
}

func (s *Scheduler) ready(seq uint64) {
	if seq != s.seq || s.mode != ModeLoading {
		return
	}
	s.gate.MarkDegraded(s.state.Entities)
	s.mode = ModeRunning
	s.render()
	if !s.deactivated {
		s.input.AttachMovement(&s.state.PressedKeys)
	}
	s.frame(seq)
}

func (s *Scheduler) frame(seq uint64) {
	if seq != s.seq || s.mode != ModeRunning {
		return
	}
	st := s.state
	now := s.now()
	s.ticker.Tick(st, s.delta(now))

	if st.Verdict != sim.Continue {
		s.suspend()
		return
	}
	st.LastTickAt = &now
	s.render()
	s.frames.Post(func() { s.frame(seq) })
}

// delta converts the wall-clock time since the last tick into time units.
func (s *Scheduler) delta(now time.Time) float64 {
	if s.state.LastTickAt == nil {
		return 0
	}
	d := now.Sub(*s.state.LastTickAt)
	if d < 0 {
		d = 0
	}
	if s.maxDelta > 0 && d > s.maxDelta {
		d = s.maxDelta
	}
	return float64(d) / float64(s.timeUnit)
}

func (s *Scheduler) suspend() {
	st := s.state
	s.mode = ModeSuspended
	s.shown = st.Verdict
	st.PressedKeys.Remove(input.PauseKey)
	st.LastTickAt = nil

	s.input.Detach()
	if !s.deactivated {
		s.input.AttachDismiss(s.dismiss)
	}
	s.log.Info("engine: suspended",
		zap.String("level", string(s.level.ID())),
		zap.Stringer("verdict", s.shown))
	s.render()
}

// dismiss leaves the modal. Win and Fail restart; a Win advances to the
// next level of the sequence when there is one.
func (s *Scheduler) dismiss() {
	if s.deactivated || s.mode != ModeSuspended {
		return
	}
	s.input.Detach()

	if s.shown == sim.Win {
		if next, ok := s.catalog.Next(s.level.ID()); ok {
			err := s.StartLevel(next, true)
			if err == nil {
				return
			}
			s.log.Error("engine: advance", zap.String("next", string(next)), zap.Error(err))
		}
	}
	s.begin(s.level, s.state == nil || s.shown.Terminal(), time.Time{})
}

// ForceVerdict replaces the verdict of the current state. A running level
// suspends on its next frame; a suspended one shows the new modal.
func (s *Scheduler) ForceVerdict(v sim.Verdict) {
	if s.state != nil && s.state.Verdict != v {
		s.state.Verdict = v
	}
	if s.mode == ModeSuspended && v != sim.Continue && v != s.shown {
		s.shown = v
		s.render()
	}
}

// SetDeactivated detaches every listener while b is true. On reactivation
// the listener set matching the current mode is attached again.
func (s *Scheduler) SetDeactivated(b bool) {
	if s.deactivated == b {
		return
	}
	s.deactivated = b
	s.log.Debug("engine: deactivated", zap.Bool("deactivated", b))
	if b {
		s.input.Detach()
		return
	}
	switch s.mode {
	case ModeRunning:
		s.input.AttachMovement(&s.state.PressedKeys)
	case ModeSuspended:
		s.input.AttachDismiss(s.dismiss)
	}
}

// Reload swaps the catalog. The current level is looked up again by id,
// falling back to the first level of the new sequence, and restarted
// unless the game is suspended.
func (s *Scheduler) Reload(c *levels.Catalog) error {
	if c == nil {
		return errors.New("engine: reload: nil catalog")
	}
	lvl, err := c.Lookup(s.level.ID())
	if err != nil {
		s.log.Warn("engine: reload: level gone, falling back",
			zap.String("level", string(s.level.ID())),
			zap.String("fallback", string(c.Initial())))
		if lvl, err = c.Lookup(c.Initial()); err != nil {
			return fmt.Errorf("engine: reload: %w", err)
		}
	}
	s.catalog = c
	s.gate.Forget(string(lvl.ID()))
	s.log.Info("engine: catalog reloaded", zap.String("level", string(lvl.ID())))

	if s.mode == ModeSuspended {
		s.level = lvl
		if s.shown == sim.Intro {
			s.prime()
			s.render()
		}
		return nil
	}
	s.begin(lvl, true, time.Time{})
	return nil
}

func (s *Scheduler) render() {
	s.surface.Clear()
	if s.state != nil {
		for _, e := range s.state.Entities {
			if e.Degraded {
				s.surface.DrawMissing(e.X, e.Y, e.Width, e.Height)
				continue
			}
			s.surface.DrawSprite(e.SpriteFor(), e.X, e.Y, e.Width, e.Height)
		}
	}
	if s.mode == ModeSuspended {
		s.surface.DrawModal(render.ModalLines(s.shown, s.columns))
	}
}
