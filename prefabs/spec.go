package prefabs

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/milk9111/wizard/entity"
	"gopkg.in/yaml.v3"
)

var ErrUnknownPrefab = errors.New("prefabs: unknown prefab")

// LoadSpec loads and decodes a YAML descriptor into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zero, fmt.Errorf("%w: %s", ErrUnknownPrefab, filename)
		}
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntitySpec is the descriptor of one entity kind.
type EntitySpec struct {
	Name           string  `yaml:"name"`
	Kind           string  `yaml:"kind"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	Sprite         string  `yaml:"sprite"`
	SpriteReversed string  `yaml:"sprite_reversed"`
}

func LoadEntitySpec(name string) (EntitySpec, error) {
	spec, err := LoadSpec[EntitySpec](name)
	if err != nil {
		return EntitySpec{}, err
	}
	if err := spec.validate(); err != nil {
		return EntitySpec{}, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return spec, nil
}

func (s EntitySpec) validate() error {
	if _, err := entity.ParseKind(s.Kind); err != nil {
		return err
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("size must be positive, got %vx%v", s.Width, s.Height)
	}
	if s.Speed < 0 {
		return fmt.Errorf("speed must not be negative, got %v", s.Speed)
	}
	if s.Sprite == "" {
		return errors.New("sprite is required")
	}
	return nil
}

// Build creates an entity at (x, y) facing dir.
func (s EntitySpec) Build(x, y float64, dir entity.Direction) (*entity.Entity, error) {
	kind, err := entity.ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}
	return &entity.Entity{
		Kind:           kind,
		X:              x,
		Y:              y,
		Width:          s.Width,
		Height:         s.Height,
		Speed:          s.Speed,
		Direction:      dir,
		Sprite:         s.Sprite,
		SpriteReversed: s.SpriteReversed,
		Lifecycle:      entity.Alive,
	}, nil
}
