package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/wizard/common"
	"github.com/milk9111/wizard/engine"
	"github.com/milk9111/wizard/input"
	"github.com/milk9111/wizard/levels"
	"github.com/milk9111/wizard/prefabs"
	"github.com/milk9111/wizard/sim"
	"go.uber.org/zap"
)

var keyBindings = map[ebiten.Key]input.Key{
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyShiftLeft:  input.KeyShift,
	ebiten.KeyShiftRight: input.KeyShift,
}

type Game struct {
	frames  int
	debug   bool
	focused bool

	sched   *engine.Scheduler
	queue   *engine.FrameQueue
	input   *input.Controller
	surface *screenSurface
	watcher *prefabs.Watcher
	catalog levels.Options

	keys []ebiten.Key
	log  *zap.Logger
}

func (g *Game) Update() error {
	g.frames++

	g.pollFocus()
	g.pollKeys()
	g.pollWatcher()
	g.queue.RunPending()
	g.surface.updateUI()

	return nil
}

// pollFocus pauses a running level and ignores input while the window is
// in the background. Focus coming back only reactivates input; the player
// dismisses the pause modal.
func (g *Game) pollFocus() {
	focused := ebiten.IsFocused()
	if focused == g.focused {
		return
	}
	g.focused = focused
	g.log.Debug("focus changed", zap.Bool("focused", focused))
	if !focused {
		if g.sched.Mode() != engine.ModeSuspended {
			g.sched.ForceVerdict(sim.Pause)
		}
		g.sched.SetDeactivated(true)
		return
	}
	g.sched.SetDeactivated(false)
}

// pollKeys turns this frame's key transitions into input events.
func (g *Game) pollKeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := keyBindings[k]; ok {
			g.input.KeyDown(input.Event{Key: key, Shift: shift})
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := keyBindings[k]; ok {
			g.input.KeyUp(input.Event{Key: key})
		}
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		g.log.Warn("watch error", zap.Error(err))
	default:
	}

	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	g.log.Info("descriptors changed", zap.Strings("files", changed))

	catalog, err := levels.LoadCatalog(g.catalog)
	if err != nil {
		g.log.Warn("reload rejected", zap.Error(err))
		return
	}
	if err := g.sched.Reload(catalog); err != nil {
		g.log.Warn("reload rejected", zap.Error(err))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    %s %s",
			g.frames, ebiten.ActualFPS(), g.sched.Mode(), g.sched.Verdict()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.CanvasWidth, common.CanvasHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
