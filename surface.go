package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

type drawOp struct {
	sprite     string
	missing    bool
	x, y, w, h float64
}

// screenSurface records what the scheduler draws during Update and replays
// it in Draw.
type screenSurface struct {
	sprites *spriteRegistry
	ops     []drawOp
	modal   *ebitenui.UI
}

func newScreenSurface(sprites *spriteRegistry) *screenSurface {
	return &screenSurface{sprites: sprites}
}

func (s *screenSurface) Clear() {
	s.ops = s.ops[:0]
	s.modal = nil
}

func (s *screenSurface) DrawSprite(sprite string, x, y, w, h float64) {
	s.ops = append(s.ops, drawOp{sprite: sprite, x: x, y: y, w: w, h: h})
}

func (s *screenSurface) DrawMissing(x, y, w, h float64) {
	s.ops = append(s.ops, drawOp{missing: true, x: x, y: y, w: w, h: h})
}

func (s *screenSurface) DrawModal(lines []string) {
	s.modal = newModalUI(lines)
}

func (s *screenSurface) updateUI() {
	if s.modal != nil {
		s.modal.Update()
	}
}

func (s *screenSurface) draw(screen *ebiten.Image) {
	screen.Fill(colornames.Lightskyblue)
	for _, op := range s.ops {
		if op.missing {
			drawMissingMarker(screen, op)
			continue
		}
		img := s.sprites.Lookup(op.sprite)
		if img == nil || img == missingSprite {
			drawMissingMarker(screen, op)
			continue
		}

		b := img.Bounds()
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(op.w/float64(b.Dx()), op.h/float64(b.Dy()))
		opts.GeoM.Translate(op.x, op.y)
		screen.DrawImage(img, opts)
	}
	if s.modal != nil {
		s.modal.Draw(screen)
	}
}

func drawMissingMarker(screen *ebiten.Image, op drawOp) {
	x, y, w, h := float32(op.x), float32(op.y), float32(op.w), float32(op.h)
	vector.FillRect(screen, x, y, w, h, color.RGBA{R: 255, G: 0, B: 255, A: 96}, false)
	vector.StrokeRect(screen, x, y, w, h, 1.0, color.RGBA{R: 255, G: 0, B: 255, A: 220}, false)
	vector.StrokeLine(screen, x, y, x+w, y+h, 1.0, color.RGBA{R: 255, G: 0, B: 255, A: 220}, false)
}
