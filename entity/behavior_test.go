package entity

import (
	"math"
	"testing"

	"github.com/milk9111/wizard/common"
	"github.com/milk9111/wizard/input"
)

func newPlayer(x, y float64) *Entity {
	return &Entity{
		Kind:      KindPlayer,
		X:         x,
		Y:         y,
		Width:     61,
		Height:    84,
		Speed:     2,
		Direction: DirRight,
		Sprite:    "img/wizard.png",
	}
}

func keys(ks ...input.Key) input.KeySet {
	var s input.KeySet
	for _, k := range ks {
		s.Add(k)
	}
	return s
}

func TestPlayerMovement(t *testing.T) {
	floor := float64(common.CanvasHeight - 84)

	cases := []struct {
		name    string
		x, y    float64
		keys    input.KeySet
		dt      float64
		wantX   float64
		wantY   float64
		wantDir Direction
	}{
		{"rise", 100, 100, keys(input.KeyUp), 5, 100, 80, DirRight | DirUp},
		{"descend_slowly", 100, 100, keys(), 3, 100, 102, DirRight | DirDown},
		{"idle_on_floor", 100, floor, keys(), 3, 100, floor, DirRight},
		{"walk_left", 100, floor, keys(input.KeyLeft), 5, 90, floor, DirLeft},
		{"walk_right", 100, floor, keys(input.KeyRight), 5, 110, floor, DirRight},
		{"ceiling_clamp_clears_vertical", 100, 3, keys(input.KeyUp), 5, 100, 0, DirRight},
		{"floor_clamp_clears_vertical", 100, floor - 1, keys(), 30, 100, floor, DirRight},
		{"left_wall", 2, floor, keys(input.KeyLeft), 10, 0, floor, DirLeft},
		{"right_wall", 630, floor, keys(input.KeyRight), 10, common.CanvasWidth - 61, floor, DirRight},
		{"zero_dt", 100, 100, keys(input.KeyUp, input.KeyLeft), 0, 100, 100, DirLeft | DirUp},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newPlayer(c.x, c.y)
			Update(p, c.keys, c.dt)
			if p.X != c.wantX || p.Y != c.wantY {
				t.Fatalf("position = (%v, %v), want (%v, %v)", p.X, p.Y, c.wantX, c.wantY)
			}
			if p.Direction != c.wantDir {
				t.Fatalf("direction = %s, want %s", p.Direction, c.wantDir)
			}
			if p.Lifecycle != Alive {
				t.Fatalf("player must never dispose itself")
			}
		})
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	combos := []input.KeySet{
		keys(),
		keys(input.KeyUp),
		keys(input.KeyLeft),
		keys(input.KeyRight),
		keys(input.KeyUp, input.KeyLeft),
		keys(input.KeyUp, input.KeyRight),
	}
	for _, ks := range combos {
		for _, dt := range []float64{0, 0.5, 1, 7, 100, 1e6} {
			p := newPlayer(common.CanvasWidth/3, common.CanvasHeight-100)
			for i := 0; i < 20; i++ {
				Update(p, ks, dt)
				if p.X < 0 || p.X > common.CanvasWidth-p.Width || p.Y < 0 || p.Y > common.CanvasHeight-p.Height {
					t.Fatalf("keys=%s dt=%v: player out of bounds at (%v, %v)", ks, dt, p.X, p.Y)
				}
				if p.Direction.Has(DirUp) && p.Direction.Has(DirDown) {
					t.Fatalf("up and down set together: %s", p.Direction)
				}
				if p.Direction.Has(DirLeft) && p.Direction.Has(DirRight) {
					t.Fatalf("left and right set together: %s", p.Direction)
				}
			}
		}
	}
}

func TestFireball(t *testing.T) {
	cases := []struct {
		name         string
		x            float64
		dir          Direction
		dt           float64
		wantX        float64
		wantDisposed bool
	}{
		{"flies_right", 100, DirRight, 2, 110, false},
		{"flies_left", 100, DirLeft | DirUp, 2, 90, false},
		{"no_horizontal_direction", 100, DirUp, 2, 100, false},
		{"leaves_right_edge", 698, DirRight, 1, 703, true},
		{"leaves_left_edge", 3, DirLeft, 1, -2, true},
		{"exactly_on_edge", 695, DirRight, 1, 700, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := &Entity{Kind: KindFireball, X: c.x, Y: 50, Width: 24, Height: 24, Speed: 5, Direction: c.dir}
			Update(f, keys(input.KeyUp), c.dt)
			if math.Abs(f.X-c.wantX) > 1e-9 {
				t.Fatalf("x = %v, want %v", f.X, c.wantX)
			}
			if f.Y != 50 {
				t.Fatalf("fireball moved vertically to %v", f.Y)
			}
			if got := f.Lifecycle == Disposed; got != c.wantDisposed {
				t.Fatalf("disposed = %v, want %v", got, c.wantDisposed)
			}
		})
	}
}

func TestUpdateUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown kind")
		}
	}()
	Update(&Entity{Kind: Kind(42)}, 0, 1)
}

func TestSpriteFor(t *testing.T) {
	e := &Entity{Sprite: "a", SpriteReversed: "b", Direction: DirRight}
	if got := e.SpriteFor(); got != "a" {
		t.Fatalf("facing right sprite = %q", got)
	}
	e.Direction = DirLeft | DirDown
	if got := e.SpriteFor(); got != "b" {
		t.Fatalf("facing left sprite = %q", got)
	}
	f := &Entity{Sprite: "c", Direction: DirLeft}
	if got := f.SpriteFor(); got != "c" {
		t.Fatalf("no reversed sprite = %q", got)
	}
	if got := f.Sprites(); len(got) != 1 || got[0] != "c" {
		t.Fatalf("sprites = %v", got)
	}
}
