package levels

import (
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/wizard/entity"
	"github.com/milk9111/wizard/input"
	"github.com/milk9111/wizard/sim"
	"go.uber.org/zap"
)

// ScriptRule evaluates a tengo script against the state. The script sees
// player, entities, disposed, keys, level_seconds and run_seconds, and reports
// its result by assigning one of the verdict names to verdict.
type ScriptRule struct {
	name     string
	compiled *tengo.Compiled
	now      func() time.Time
	log      *zap.Logger
}

func NewScriptRule(name string, src []byte, now func() time.Time, log *zap.Logger) (*ScriptRule, error) {
	if log == nil {
		log = zap.NewNop()
	}
	script := tengo.NewScript(src)
	for _, v := range []string{"player", "entities", "disposed", "keys", "level_seconds", "run_seconds"} {
		_ = script.Add(v, nil)
	}
	_ = script.Add("verdict", sim.Continue.String())
	script.SetImports(stdlib.GetModuleMap("math", "text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("levels: compile rule %s: %w", name, err)
	}
	return &ScriptRule{name: name, compiled: compiled, now: now, log: log}, nil
}

func (r *ScriptRule) Name() string {
	return r.name
}

// Evaluate runs the script. A script error is logged and treated as Continue
// so a broken rule cannot end the level on its own.
func (r *ScriptRule) Evaluate(s *sim.State) sim.Verdict {
	if err := r.bind(s); err != nil {
		r.log.Warn("levels: bind rule inputs", zap.String("rule", r.name), zap.Error(err))
		return sim.Continue
	}
	if err := r.compiled.Run(); err != nil {
		r.log.Warn("levels: run rule", zap.String("rule", r.name), zap.Error(err))
		return sim.Continue
	}
	name := r.compiled.Get("verdict").String()
	v, ok := sim.ParseVerdict(name)
	if !ok {
		r.log.Warn("levels: rule returned unknown verdict", zap.String("rule", r.name), zap.String("verdict", name))
		return sim.Continue
	}
	return v
}

func (r *ScriptRule) bind(s *sim.State) error {
	now := r.now()

	var player any
	if p := s.Player(); p != nil {
		player = entityMap(p)
	}

	entities := make([]any, 0, len(s.Entities))
	for _, e := range s.Entities {
		entities = append(entities, entityMap(e))
	}

	disposed := make([]any, 0, len(s.DisposedThisTick))
	for _, e := range s.DisposedThisTick {
		disposed = append(disposed, e.Kind.String())
	}

	var keys []any
	for k := input.KeyLeft; k <= input.KeyShift; k++ {
		if s.PressedKeys.Has(k) {
			keys = append(keys, k.String())
		}
	}

	values := map[string]any{
		"player":        player,
		"entities":      entities,
		"disposed":      disposed,
		"keys":          keys,
		"level_seconds": secondsSince(now, s.LevelStartedAt),
		"run_seconds":   secondsSince(now, s.RunStartedAt),
		"verdict":       sim.Continue.String(),
	}
	for name, v := range values {
		if err := r.compiled.Set(name, v); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}

func entityMap(e *entity.Entity) map[string]any {
	return map[string]any{
		"kind":      e.Kind.String(),
		"x":         e.X,
		"y":         e.Y,
		"width":     e.Width,
		"height":    e.Height,
		"direction": e.Direction.String(),
		"alive":     e.Lifecycle == entity.Alive,
	}
}

func secondsSince(now, t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return now.Sub(t).Seconds()
}
