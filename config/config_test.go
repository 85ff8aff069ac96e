package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wizard.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.TimeUnit != 10*time.Millisecond || cfg.Game.SessionLimit != 3*time.Minute {
		t.Fatalf("unexpected defaults %+v", cfg.Game)
	}
	if cfg.Game.PreloadTimeout != 10*time.Second || cfg.Game.StartLevel != "intro" {
		t.Fatalf("unexpected defaults %+v", cfg.Game)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[window]
scale = 2.0

[game]
session_limit = "30s"
max_frame_delta = "250ms"

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Scale != 2 || cfg.Window.Title != "Wizard" {
		t.Fatalf("window = %+v", cfg.Window)
	}
	if cfg.Game.SessionLimit != 30*time.Second || cfg.Game.MaxFrameDelta != 250*time.Millisecond {
		t.Fatalf("game = %+v", cfg.Game)
	}
	if cfg.Game.TimeUnit != 10*time.Millisecond {
		t.Fatalf("unset field lost its default: %v", cfg.Game.TimeUnit)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing_file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }},
		{"bad_toml", func(t *testing.T) string { return writeConfig(t, "[game\n") }},
		{"bad_duration", func(t *testing.T) string { return writeConfig(t, "[game]\ntime_unit = \"soon\"\n") }},
		{"invalid_value", func(t *testing.T) string { return writeConfig(t, "[window]\nscale = 0.0\n") }},
		{"empty_level", func(t *testing.T) string { return writeConfig(t, "[game]\nstart_level = \"\"\n") }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Load(c.path(t)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	cases := []struct {
		name string
		cfg  LoggingConfig
		want zapcore.Level
	}{
		{"console_debug", LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{"json_warn", LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{"bad_level", LoggingConfig{Level: "loud"}, zapcore.InfoLevel},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			log, err := NewLogger(c.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if !log.Core().Enabled(c.want) {
				t.Fatalf("level %s not enabled", c.want)
			}
			if c.want > zapcore.DebugLevel && log.Core().Enabled(c.want-1) {
				t.Fatalf("level below %s enabled", c.want)
			}
		})
	}
}
