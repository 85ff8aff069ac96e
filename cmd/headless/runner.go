package main

import (
	"context"
	"errors"
	"time"

	"github.com/milk9111/wizard/assets"
	"github.com/milk9111/wizard/engine"
	"github.com/milk9111/wizard/input"
	"github.com/milk9111/wizard/sim"
	"go.uber.org/zap"
)

// countingSurface keeps the last frame's draw calls so the run can be
// summarized without a window.
type countingSurface struct {
	sprites int
	missing int
	modal   []string
}

func (s *countingSurface) Clear() {
	s.sprites, s.missing, s.modal = 0, 0, nil
}

func (s *countingSurface) DrawSprite(string, float64, float64, float64, float64) { s.sprites++ }
func (s *countingSurface) DrawMissing(float64, float64, float64, float64)        { s.missing++ }
func (s *countingSurface) DrawModal(lines []string)                              { s.modal = lines }

// decodeLoader checks that a sprite decodes without creating GPU images.
func decodeLoader(_ context.Context, sprite string) error {
	_, err := assets.DecodeImage(sprite)
	return err
}

// runner drives a scheduler with a simulated clock.
type runner struct {
	sched   *engine.Scheduler
	queue   *engine.FrameQueue
	input   *input.Controller
	surface *countingSurface

	now       time.Time
	frameTime time.Duration
	frames    int

	// loadWait bounds how long a frame waits for preload goroutines.
	loadWait time.Duration

	log *zap.Logger
}

func (r *runner) clock() time.Time { return r.now }

var errLoadStalled = errors.New("headless: preload did not settle")

func (r *runner) frame() error {
	deadline := time.Now().Add(r.loadWait)
	for r.sched.Mode() == engine.ModeLoading && r.queue.Len() == 0 {
		if time.Now().After(deadline) {
			return errLoadStalled
		}
		time.Sleep(time.Millisecond)
	}
	r.now = r.now.Add(r.frameTime)
	r.queue.RunPending()
	r.frames++
	return nil
}

// run plays the script and keeps running frames until the game suspends
// or maxFrames is reached. It returns the verdict the run ended on, or
// Continue if it was still running.
func (r *runner) run(steps []step, maxFrames int) (sim.Verdict, error) {
	for _, st := range steps {
		switch st.kind {
		case stepDown:
			r.input.KeyDown(input.Event{Key: st.key})
		case stepUp:
			r.input.KeyUp(input.Event{Key: st.key})
		case stepForce:
			r.sched.ForceVerdict(st.verdict)
		case stepDeactivate:
			r.sched.SetDeactivated(true)
		case stepActivate:
			r.sched.SetDeactivated(false)
		case stepWait:
			for i := 0; i < st.frames; i++ {
				if err := r.frame(); err != nil {
					return sim.Continue, err
				}
			}
		}
		r.log.Debug("step done",
			zap.Int("frame", r.frames),
			zap.Stringer("mode", r.sched.Mode()),
			zap.Stringer("verdict", r.sched.Verdict()))
	}

	for r.frames < maxFrames && r.sched.Mode() != engine.ModeSuspended {
		if err := r.frame(); err != nil {
			return sim.Continue, err
		}
	}
	if r.sched.Mode() != engine.ModeSuspended {
		return sim.Continue, nil
	}
	return r.sched.Verdict(), nil
}
