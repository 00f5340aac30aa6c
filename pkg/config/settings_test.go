package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/picogrid/pixel-fight/pkg/engine"
)

func TestDefaultSettings(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	if err != nil {
		t.Fatalf("Default settings validation failed: %v", err)
	}

	if s.EngineRules() != engine.DefaultRules() {
		t.Errorf("Expected default rules %+v, got %+v", engine.DefaultRules(), s.EngineRules())
	}
	if s.Headless.Step != 16*time.Millisecond {
		t.Errorf("Expected 16ms step, got %v", s.Headless.Step)
	}
	if s.Window.Width != 800 || s.Window.Height != 600 {
		t.Errorf("Expected 800x600 window, got %dx%d", s.Window.Width, s.Window.Height)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
seed: 1234
workers: 3
log_level: debug
rules:
  reach: 12.5
  base_speed: 30
headless:
  step: 50ms
  max_ticks: 200
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v, err := NewViper(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	s, err := Load(v)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if s.Seed != 1234 || s.Workers != 3 || s.LogLevel != "debug" {
		t.Errorf("Unexpected top-level settings: %+v", s)
	}
	if s.Rules.Reach != 12.5 || s.Rules.BaseSpeed != 30 {
		t.Errorf("Unexpected rules: %+v", s.Rules)
	}
	if s.Rules.SpeedRandomness != engine.DefaultRules().SpeedRandomness {
		t.Errorf("Expected default speed randomness, got %f", s.Rules.SpeedRandomness)
	}
	if s.Headless.Step != 50*time.Millisecond || s.Headless.MaxTicks != 200 {
		t.Errorf("Unexpected headless settings: %+v", s.Headless)
	}

	cfg := s.EngineConfig(nil)
	if cfg.Seed != 1234 || cfg.Workers != 3 || cfg.Rules.Reach != 12.5 {
		t.Errorf("Unexpected engine config: %+v", cfg)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PIXELFIGHT_RULES_REACH", "4")
	t.Setenv("PIXELFIGHT_HEADLESS_REALTIME", "true")

	v, err := NewViper(filepath.Join(t.TempDir(), "missing", "config.yaml"))
	if err == nil {
		t.Fatal("Expected an error for an explicit missing config file")
	}

	t.Chdir(t.TempDir())
	v, err = NewViper("")
	if err != nil {
		t.Fatalf("A missing default config must not fail: %v", err)
	}

	s, err := Load(v)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if s.Rules.Reach != 4 {
		t.Errorf("Expected reach 4 from the environment, got %f", s.Rules.Reach)
	}
	if !s.Headless.Realtime {
		t.Error("Expected realtime from the environment")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Settings {
		return Settings{
			Rules:    RulesSettings{Reach: 10, BaseSpeed: 20, SpeedRandomness: 0.5},
			Window:   WindowSettings{Width: 10, Height: 10},
			Headless: HeadlessSettings{Step: time.Millisecond},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{name: "negative workers", mutate: func(s *Settings) { s.Workers = -1 }},
		{name: "negative reach", mutate: func(s *Settings) { s.Rules.Reach = -1 }},
		{name: "negative speed", mutate: func(s *Settings) { s.Rules.BaseSpeed = -1 }},
		{name: "randomness above one", mutate: func(s *Settings) { s.Rules.SpeedRandomness = 1.5 }},
		{name: "empty window", mutate: func(s *Settings) { s.Window.Width = 0 }},
		{name: "zero step", mutate: func(s *Settings) { s.Headless.Step = 0 }},
	}

	base := valid()
	if err := base.Validate(); err != nil {
		t.Fatalf("Expected valid settings, got %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}

func TestResolveSeed(t *testing.T) {
	s := Settings{Seed: 77}
	if s.ResolveSeed() != 77 {
		t.Error("An explicit seed must be kept")
	}

	s.Seed = 0
	if seed := s.ResolveSeed(); seed == 0 || s.Seed != seed {
		t.Errorf("Expected a random non-zero seed, got %d", seed)
	}
}
