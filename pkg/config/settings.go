package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/picogrid/pixel-fight/pkg/engine"
)

// EnvPrefix prefixes every environment variable override, e.g.
// PIXELFIGHT_RULES_REACH=12
const EnvPrefix = "PIXELFIGHT"

// Settings holds the application settings
type Settings struct {
	// Seed drives every random draw of a battle; zero picks one at startup.
	Seed     uint64           `mapstructure:"seed"`
	Workers  int              `mapstructure:"workers"`
	LogLevel string           `mapstructure:"log_level"`
	NoColor  bool             `mapstructure:"no_color"`
	Rules    RulesSettings    `mapstructure:"rules"`
	Window   WindowSettings   `mapstructure:"window"`
	Headless HeadlessSettings `mapstructure:"headless"`
}

// RulesSettings mirrors engine.Rules
type RulesSettings struct {
	Reach           float32 `mapstructure:"reach"`
	BaseSpeed       float32 `mapstructure:"base_speed"`
	SpeedRandomness float32 `mapstructure:"speed_randomness"`
}

// WindowSettings configures the viewer window
type WindowSettings struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// HeadlessSettings configures windowless runs
type HeadlessSettings struct {
	Step        time.Duration `mapstructure:"step"`
	MaxTicks    uint64        `mapstructure:"max_ticks"`
	Realtime    bool          `mapstructure:"realtime"`
	StatusEvery uint64        `mapstructure:"status_every"`
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	rules := engine.DefaultRules()

	v.SetDefault("seed", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("no_color", false)
	v.SetDefault("rules.reach", rules.Reach)
	v.SetDefault("rules.base_speed", rules.BaseSpeed)
	v.SetDefault("rules.speed_randomness", rules.SpeedRandomness)
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("headless.step", 16*time.Millisecond)
	v.SetDefault("headless.max_ticks", 100000)
	v.SetDefault("headless.realtime", false)
	v.SetDefault("headless.status_every", 500)
}

// NewViper creates a viper instance reading cfgFile, or config.yaml from
// $HOME/.pixel-fight and the working directory, plus environment overrides.
// A missing default config file is not an error.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath("$HOME/.pixel-fight")
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

// Load decodes and validates the settings held by v
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &s, nil
}

// Validate checks if the settings are usable
func (s *Settings) Validate() error {
	if s.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if s.Rules.Reach < 0 {
		return fmt.Errorf("reach must not be negative")
	}
	if s.Rules.BaseSpeed < 0 {
		return fmt.Errorf("base speed must not be negative")
	}
	if s.Rules.SpeedRandomness < 0 || s.Rules.SpeedRandomness > 1 {
		return fmt.Errorf("speed randomness must be between 0.0 and 1.0")
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive")
	}
	if s.Headless.Step <= 0 {
		return fmt.Errorf("headless step must be positive")
	}
	return nil
}

// ResolveSeed replaces a zero seed with a random one and returns the seed
func (s *Settings) ResolveSeed() uint64 {
	for s.Seed == 0 {
		s.Seed = rand.Uint64()
	}
	return s.Seed
}

// EngineRules converts the rule settings
func (s *Settings) EngineRules() engine.Rules {
	return engine.Rules{
		Reach:           s.Rules.Reach,
		BaseSpeed:       s.Rules.BaseSpeed,
		SpeedRandomness: s.Rules.SpeedRandomness,
	}
}

// EngineConfig builds the simulation config. The seed must be resolved first.
func (s *Settings) EngineConfig(observer engine.Observer) engine.Config {
	return engine.Config{
		Rules:    s.EngineRules(),
		Seed:     s.Seed,
		Workers:  s.Workers,
		Observer: observer,
	}
}
