package levels

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/wizard/entity"
	"github.com/milk9111/wizard/input"
	"github.com/milk9111/wizard/sim"
)

// DefaultSessionLimit is how long a run may last before it counts as lost.
const DefaultSessionLimit = 3 * time.Minute

var ErrUnknownRule = errors.New("levels: unknown rule")

// CommonRules returns the rules shared by every level, in evaluation order.
func CommonRules(now func() time.Time, limit time.Duration) []sim.Rule {
	return []sim.Rule{
		DeathRule(),
		PauseKeyRule(),
		SessionTimeoutRule(now, limit),
	}
}

// DeathRule fails the level once the player is gone.
func DeathRule() sim.Rule {
	return sim.RuleFunc{RuleName: "death", Fn: func(s *sim.State) sim.Verdict {
		if p := s.Player(); p != nil && p.Lifecycle != entity.Disposed {
			return sim.Continue
		}
		return sim.Fail
	}}
}

// PauseKeyRule pauses while the pause key is down.
func PauseKeyRule() sim.Rule {
	return sim.RuleFunc{RuleName: "pause_key", Fn: func(s *sim.State) sim.Verdict {
		if s.PressedKeys.Has(input.PauseKey) {
			return sim.Pause
		}
		return sim.Continue
	}}
}

// SessionTimeoutRule fails the run once it has lasted longer than limit.
func SessionTimeoutRule(now func() time.Time, limit time.Duration) sim.Rule {
	if limit <= 0 {
		limit = DefaultSessionLimit
	}
	return sim.RuleFunc{RuleName: "session_timeout", Fn: func(s *sim.State) sim.Verdict {
		if s.RunStartedAt.IsZero() {
			return sim.Continue
		}
		if now().Sub(s.RunStartedAt) > limit {
			return sim.Fail
		}
		return sim.Continue
	}}
}

// FireballEscapedRule wins the level when a fireball left the screen this tick.
func FireballEscapedRule() sim.Rule {
	return sim.RuleFunc{RuleName: "fireball_escaped", Fn: func(s *sim.State) sim.Verdict {
		for _, e := range s.DisposedThisTick {
			if e.Kind == entity.KindFireball {
				return sim.Win
			}
		}
		return sim.Continue
	}}
}

var namedRules = map[string]func() sim.Rule{
	"fireball_escaped": FireballEscapedRule,
}

func ruleByName(name string) (sim.Rule, error) {
	ctor, ok := namedRules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return ctor(), nil
}
