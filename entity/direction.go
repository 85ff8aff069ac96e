package entity

import "strings"

// Direction is a bitset over the four movement directions. Left/Right and
// Up/Down are mutually exclusive per axis.
type Direction uint8

const (
	DirNone  Direction = 0
	DirLeft  Direction = 1 << 0
	DirRight Direction = 1 << 1
	DirUp    Direction = 1 << 2
	DirDown  Direction = 1 << 3

	horizontal = DirLeft | DirRight
	vertical   = DirUp | DirDown
)

func (d Direction) Has(f Direction) bool {
	return d&f != 0
}

// SetHorizontal clears both horizontal bits and sets f.
func (d Direction) SetHorizontal(f Direction) Direction {
	return d&^horizontal | f&horizontal
}

// SetVertical clears both vertical bits and sets f.
func (d Direction) SetVertical(f Direction) Direction {
	return d&^vertical | f&vertical
}

func (d Direction) String() string {
	if d == DirNone {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		bit  Direction
		name string
	}{{DirLeft, "left"}, {DirRight, "right"}, {DirUp, "up"}, {DirDown, "down"}} {
		if d.Has(f.bit) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseDirection maps a descriptor name to its flag.
func ParseDirection(name string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	default:
		return DirNone, false
	}
}
