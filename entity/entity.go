package entity

import (
	"fmt"
	"strings"
)

// Kind is the closed set of simulated object types.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindFireball
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindFireball:
		return "fireball"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a descriptor name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "player":
		return KindPlayer, nil
	case "fireball":
		return KindFireball, nil
	default:
		return 0, fmt.Errorf("entity: unknown kind %q", name)
	}
}

type Lifecycle uint8

const (
	Alive Lifecycle = iota
	Disposed
)

// Entity is one object on the playfield.
type Entity struct {
	Kind      Kind
	X, Y      float64
	Width     float64
	Height    float64
	Speed     float64
	Direction Direction

	Sprite         string
	SpriteReversed string

	Lifecycle Lifecycle

	// Degraded is set when one of the entity's sprites failed to load.
	Degraded bool
}

// SpriteFor returns the sprite to draw for the current facing.
func (e *Entity) SpriteFor() string {
	if e.SpriteReversed != "" && e.Direction.Has(DirLeft) {
		return e.SpriteReversed
	}
	return e.Sprite
}

// Sprites returns the primary and, if present, the reversed sprite.
func (e *Entity) Sprites() []string {
	out := make([]string, 0, 2)
	for _, s := range []string{e.Sprite, e.SpriteReversed} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
