package sim

import (
	"github.com/milk9111/wizard/entity"
	"github.com/milk9111/wizard/input"
)

// FireballSpec describes the projectile spawned by the spawn key.
type FireballSpec struct {
	Width  float64
	Height float64
	Speed  float64
	Sprite string
}

// DefaultFireball matches the bundled fireball prefab.
var DefaultFireball = FireballSpec{Width: 24, Height: 24, Speed: 5, Sprite: "img/fireball.png"}

// Ticker advances a State by one step.
type Ticker struct {
	Rules    RuleSet
	Fireball FireballSpec
}

// Tick spawns, updates and partitions entities, then derives the verdict.
func (t Ticker) Tick(s *State, dt float64) *State {
	if s == nil {
		return nil
	}

	if s.PressedKeys.Has(input.SpawnKey) {
		if p := s.Player(); p != nil {
			s.Entities = append(s.Entities, t.spawnFireball(p))
		}
		s.PressedKeys.Remove(input.SpawnKey)
	}

	s.DisposedThisTick = nil

	live := s.Entities[:0]
	for _, e := range s.Entities {
		entity.Update(e, s.PressedKeys, dt)
		if e.Lifecycle == entity.Disposed {
			s.DisposedThisTick = append(s.DisposedThisTick, e)
			continue
		}
		live = append(live, e)
	}
	for i := len(live); i < len(s.Entities); i++ {
		s.Entities[i] = nil
	}
	s.Entities = live

	if s.Verdict == Continue {
		s.Verdict = t.Rules.Evaluate(s)
	}
	return s
}

func (t Ticker) spawnFireball(p *entity.Entity) *entity.Entity {
	x := p.X - t.Fireball.Width
	if p.Direction.Has(entity.DirRight) {
		x = p.X + p.Width
	}
	return &entity.Entity{
		Kind:      entity.KindFireball,
		X:         x,
		Y:         p.Y + p.Height/2,
		Width:     t.Fireball.Width,
		Height:    t.Fireball.Height,
		Speed:     t.Fireball.Speed,
		Direction: p.Direction,
		Sprite:    t.Fireball.Sprite,
		Lifecycle: entity.Alive,
	}
}
