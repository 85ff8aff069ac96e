package input

import "strings"

// Key identifies a key the game reacts to.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyEscape
	KeySpace
	// KeyShift is tracked as a modifier alongside the directional keys.
	KeyShift
)

// Role bindings.
const (
	PauseKey  = KeyEscape
	ResumeKey = KeySpace
	SpawnKey  = KeyShift
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyEscape:
		return "escape"
	case KeySpace:
		return "space"
	case KeyShift:
		return "shift"
	default:
		return "unknown"
	}
}

// ParseKey maps a key name as printed by String back to the key.
func ParseKey(name string) (Key, bool) {
	for k := KeyLeft; k <= KeyShift; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return KeyUnknown, false
}

// KeySet is the set of currently pressed keys.
type KeySet uint8

func (s KeySet) Has(k Key) bool {
	if k == KeyUnknown {
		return false
	}
	return s&(1<<k) != 0
}

func (s *KeySet) Add(k Key) {
	if s == nil || k == KeyUnknown {
		return
	}
	*s |= 1 << k
}

func (s *KeySet) Remove(k Key) {
	if s == nil || k == KeyUnknown {
		return
	}
	*s &^= 1 << k
}

func (s KeySet) String() string {
	var names []string
	for k := KeyLeft; k <= KeyShift; k++ {
		if s.Has(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Event is a discrete key transition raised by an input source.
type Event struct {
	Key Key
	// Shift reports whether the shift modifier was held when the event fired.
	Shift bool
}
