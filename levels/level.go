package levels

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/wizard/entity"
	"github.com/milk9111/wizard/prefabs"
	"github.com/milk9111/wizard/sim"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ID names a level.
type ID string

const Intro ID = "intro"

var ErrUnknownLevel = errors.New("levels: unknown level")

// Spec is the YAML descriptor of a level.
type Spec struct {
	ID         ID          `yaml:"id"`
	Name       string      `yaml:"name"`
	Projectile string      `yaml:"projectile"`
	Entities   []Placement `yaml:"entities"`
	Rules      []string    `yaml:"rules"`
	Script     string      `yaml:"script"`
}

// Placement puts a prefab on the map.
type Placement struct {
	Prefab string   `yaml:"prefab"`
	X      float64  `yaml:"x"`
	Y      float64  `yaml:"y"`
	Facing []string `yaml:"facing"`
}

type sequenceSpec struct {
	Sequence []ID `yaml:"sequence"`
}

type placed struct {
	spec prefabs.EntitySpec
	x, y float64
	dir  entity.Direction
}

// Level is an immutable level descriptor.
type Level struct {
	id         ID
	name       string
	projectile sim.FireballSpec
	initial    []placed
	rules      []sim.Rule
}

func (l *Level) ID() ID       { return l.id }
func (l *Level) Name() string { return l.name }

// Projectile describes what the spawn key shoots on this level.
func (l *Level) Projectile() sim.FireballSpec { return l.projectile }

// Rules returns the level-specific rules in evaluation order.
func (l *Level) Rules() []sim.Rule {
	return append([]sim.Rule(nil), l.rules...)
}

// Initialize appends fresh copies of the level's starting entities to s.
func (l *Level) Initialize(s *sim.State) *sim.State {
	for _, p := range l.initial {
		e, err := p.spec.Build(p.x, p.y, p.dir)
		if err != nil {
			// Specs were validated when the catalog was loaded.
			panic(fmt.Sprintf("levels: %s: %v", l.id, err))
		}
		s.Entities = append(s.Entities, e)
	}
	return s
}

// Catalog holds every loaded level and the order they are played in.
type Catalog struct {
	levels   map[ID]*Level
	sequence []ID
}

// Options controls how descriptors are turned into levels.
type Options struct {
	// Now is the clock scripted rules read.
	Now func() time.Time
	Log *zap.Logger
}

// LoadCatalog reads the bundled level descriptors and the level sequence.
func LoadCatalog(opts Options) (*Catalog, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	files, err := levelFiles()
	if err != nil {
		return nil, fmt.Errorf("levels: list: %w", err)
	}

	c := &Catalog{levels: make(map[ID]*Level, len(files))}
	for _, f := range files {
		spec, err := loadYAML[Spec](f)
		if err != nil {
			return nil, err
		}
		lvl, err := Build(spec, opts)
		if err != nil {
			return nil, err
		}
		if _, dup := c.levels[lvl.id]; dup {
			return nil, fmt.Errorf("levels: duplicate level id %q in %s", lvl.id, f)
		}
		c.levels[lvl.id] = lvl
	}

	seq, err := loadYAML[sequenceSpec](sequenceFile)
	if err != nil {
		return nil, err
	}
	if len(seq.Sequence) == 0 {
		return nil, fmt.Errorf("levels: %s: empty sequence", sequenceFile)
	}
	for _, id := range seq.Sequence {
		if _, ok := c.levels[id]; !ok {
			return nil, fmt.Errorf("levels: %s: %w: %q", sequenceFile, ErrUnknownLevel, id)
		}
	}
	c.sequence = seq.Sequence

	return c, nil
}

// NewCatalog builds a catalog from already constructed levels.
func NewCatalog(sequence []ID, lvls ...*Level) (*Catalog, error) {
	c := &Catalog{levels: make(map[ID]*Level, len(lvls))}
	for _, l := range lvls {
		c.levels[l.id] = l
	}
	for _, id := range sequence {
		if _, ok := c.levels[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
		}
	}
	if len(sequence) == 0 {
		return nil, errors.New("levels: empty sequence")
	}
	c.sequence = append([]ID(nil), sequence...)
	return c, nil
}

// Build turns a descriptor into a Level, resolving prefabs and rules.
func Build(spec Spec, opts Options) (*Level, error) {
	if spec.ID == "" {
		return nil, errors.New("levels: level without id")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	lvl := &Level{id: spec.ID, name: spec.Name}
	if lvl.name == "" {
		lvl.name = string(spec.ID)
	}

	projectile := spec.Projectile
	if projectile == "" {
		projectile = "fireball"
	}
	ps, err := prefabs.LoadEntitySpec(projectile)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: projectile: %w", spec.ID, err)
	}
	if ps.Kind != entity.KindFireball.String() {
		return nil, fmt.Errorf("levels: %s: projectile %q is a %s", spec.ID, projectile, ps.Kind)
	}
	lvl.projectile = sim.FireballSpec{Width: ps.Width, Height: ps.Height, Speed: ps.Speed, Sprite: ps.Sprite}

	players := 0
	for i, p := range spec.Entities {
		es, err := prefabs.LoadEntitySpec(p.Prefab)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: entity %d: %w", spec.ID, i, err)
		}
		if es.Kind == entity.KindPlayer.String() {
			players++
		}
		var dir entity.Direction
		for _, name := range p.Facing {
			d, ok := entity.ParseDirection(name)
			if !ok {
				return nil, fmt.Errorf("levels: %s: entity %d: unknown direction %q", spec.ID, i, name)
			}
			dir |= d
		}
		lvl.initial = append(lvl.initial, placed{spec: es, x: p.X, y: p.Y, dir: dir})
	}
	if players != 1 {
		return nil, fmt.Errorf("levels: %s: want exactly one player, got %d", spec.ID, players)
	}

	for _, name := range spec.Rules {
		r, err := ruleByName(name)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", spec.ID, err)
		}
		lvl.rules = append(lvl.rules, r)
	}
	if spec.Script != "" {
		src, err := Load(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: load script %s: %w", spec.ID, spec.Script, err)
		}
		r, err := NewScriptRule(spec.Script, src, opts.Now, opts.Log)
		if err != nil {
			return nil, err
		}
		lvl.rules = append(lvl.rules, r)
	}

	return lvl, nil
}

// Lookup returns the level with the given id.
func (c *Catalog) Lookup(id ID) (*Level, error) {
	if c != nil {
		if l, ok := c.levels[id]; ok {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
}

// Sequence returns level ids in play order.
func (c *Catalog) Sequence() []ID {
	return append([]ID(nil), c.sequence...)
}

// Initial is the first level of the sequence.
func (c *Catalog) Initial() ID {
	return c.sequence[0]
}

// Next returns the level after id in the sequence.
func (c *Catalog) Next(id ID) (ID, bool) {
	for i, s := range c.sequence {
		if s == id && i+1 < len(c.sequence) {
			return c.sequence[i+1], true
		}
	}
	return "", false
}

func loadYAML[T any](name string) (T, error) {
	var zero T
	data, err := Load(name)
	if err != nil {
		return zero, fmt.Errorf("levels: load %s: %w", name, err)
	}
	var out T
	if err := yaml.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	return out, nil
}
