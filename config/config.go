package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Title string  `toml:"title"`
	Scale float64 `toml:"scale"` // window size is the canvas size times scale
}

type GameConfig struct {
	TimeUnit       time.Duration `toml:"time_unit"`       // wall-clock length of one dt unit
	MaxFrameDelta  time.Duration `toml:"max_frame_delta"` // longer frame gaps are clamped
	SessionLimit   time.Duration `toml:"session_limit"`
	PreloadTimeout time.Duration `toml:"preload_timeout"`
	StartLevel     string        `toml:"start_level"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "Wizard",
			Scale: 1,
		},
		Game: GameConfig{
			TimeUnit:       10 * time.Millisecond,
			MaxFrameDelta:  100 * time.Millisecond,
			SessionLimit:   3 * time.Minute,
			PreloadTimeout: 10 * time.Second,
			StartLevel:     "intro",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Scale <= 0:
		return errors.New("window.scale must be positive")
	case c.Game.TimeUnit <= 0:
		return errors.New("game.time_unit must be positive")
	case c.Game.MaxFrameDelta < 0:
		return errors.New("game.max_frame_delta must not be negative")
	case c.Game.SessionLimit <= 0:
		return errors.New("game.session_limit must be positive")
	case c.Game.PreloadTimeout <= 0:
		return errors.New("game.preload_timeout must be positive")
	case c.Game.StartLevel == "":
		return errors.New("game.start_level is empty")
	}
	return nil
}
