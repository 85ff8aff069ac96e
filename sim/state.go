package sim

import (
	"time"

	"github.com/milk9111/wizard/entity"
	"github.com/milk9111/wizard/input"
)

// Verdict classifies the outcome of the latest tick.
type Verdict uint8

const (
	Continue Verdict = iota
	Win
	Fail
	Pause
	Intro
)

func (v Verdict) String() string {
	switch v {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case Fail:
		return "fail"
	case Pause:
		return "pause"
	case Intro:
		return "intro"
	default:
		return "unknown"
	}
}

// Terminal reports whether v ends the level and forces a restart on resume.
func (v Verdict) Terminal() bool {
	return v == Win || v == Fail
}

// ParseVerdict maps a script or descriptor name to a Verdict.
func ParseVerdict(name string) (Verdict, bool) {
	for v := Continue; v <= Intro; v++ {
		if v.String() == name {
			return v, true
		}
	}
	return Continue, false
}

// State is everything a level instance needs between ticks.
type State struct {
	Verdict          Verdict
	Entities         []*entity.Entity
	DisposedThisTick []*entity.Entity
	PressedKeys      input.KeySet

	LevelStartedAt time.Time
	RunStartedAt   time.Time
	// LastTickAt is nil until the first tick after a (re)start or resume.
	LastTickAt *time.Time
}

func NewState() *State {
	return &State{Verdict: Continue}
}

// Player returns the player entity, or nil if there is none.
func (s *State) Player() *entity.Entity {
	if s == nil {
		return nil
	}
	for _, e := range s.Entities {
		if e.Kind == entity.KindPlayer {
			return e
		}
	}
	return nil
}
