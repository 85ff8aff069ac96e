package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/wizard/assets"
	"github.com/milk9111/wizard/prefabs"
)

const previewSize = 256

// previewGame flips between a prefab's sprites, the way the entity turns
// when walking left and right.
type previewGame struct {
	name        string
	frames      []*ebiten.Image
	current     int
	tick        int
	ticksPerFrm int
}

func (g *previewGame) Update() error {
	if len(g.frames) <= 1 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current = (g.current + 1) % len(g.frames)
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x87, 0xce, 0xfa, 0xff})
	ebitenutil.DebugPrint(screen, g.name)
	if len(g.frames) == 0 {
		return
	}
	img := g.frames[g.current]
	fw := img.Bounds().Dx()
	fh := img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2, 2)
	op.GeoM.Translate(float64(previewSize-2*fw)/2, float64(previewSize-2*fh)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

func loadFrames(name string) []*ebiten.Image {
	spec, err := prefabs.LoadEntitySpec(name)
	if err != nil {
		log.Fatalf("preview: %v", err)
	}
	var frames []*ebiten.Image
	for _, sprite := range []string{spec.Sprite, spec.SpriteReversed} {
		if sprite == "" {
			continue
		}
		img, err := assets.DecodeImage(sprite)
		if err != nil {
			log.Printf("preview: %v", err)
			continue
		}
		frames = append(frames, ebiten.NewImageFromImage(img))
	}
	return frames
}

func main() {
	name := flag.String("prefab", "wizard", "prefab whose sprites to show")
	fps := flag.Int("fps", 2, "sprite flips per second")
	flag.Parse()

	ticks := 1
	if *fps > 0 {
		ticks = 60 / *fps
		if ticks < 1 {
			ticks = 1
		}
	}
	g := &previewGame{name: *name, frames: loadFrames(*name), ticksPerFrm: ticks}
	ebiten.SetWindowSize(previewSize*2, previewSize*2)
	ebiten.SetWindowTitle("Sprite Preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
