package config

// Configuration loading and validation for irtag

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sparques/irtag/internal/errors"
	"github.com/sparques/irtag/internal/logging"
)

// MaxJitterMicros bounds simulated edge jitter. A space is measured between
// two jittered edges, so its error is up to twice this, which must stay inside
// the 160us margin below the zero-bit window.
const MaxJitterMicros = 79

// PlayerConfig is one device's identity on the channel.
type PlayerConfig struct {
	Name   string `yaml:"name"`
	Player uint16 `yaml:"player"` // sent as the NEC address
	Team   uint8  `yaml:"team"`   // sent as the NEC command
}

// CarrierConfig controls the emitter.
type CarrierConfig struct {
	DutyCycle uint8 `yaml:"duty_cycle"` // percent of each 38kHz period the LED is on
}

// RepeatConfig controls NEC repeat codes after each shot. Count 0 disables
// them; a Gap of 0 uses the standard 108ms repeat period.
type RepeatConfig struct {
	Count int           `yaml:"count"`
	Gap   time.Duration `yaml:"gap"`
}

// SimConfig only affects the host simulator.
type SimConfig struct {
	JitterMicros int   `yaml:"jitter_us"`
	Seed         int64 `yaml:"seed"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Config is the top-level configuration
type Config struct {
	Players  []PlayerConfig `yaml:"players"`
	Carrier  CarrierConfig  `yaml:"carrier"`
	Debounce time.Duration  `yaml:"debounce"`
	Repeat   RepeatConfig   `yaml:"repeat"`
	Sim      SimConfig      `yaml:"sim"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the configuration of a single device as shipped.
func Default() *Config {
	return &Config{
		Players: []PlayerConfig{
			{Name: "player1", Player: 0x1234, Team: 0x99},
		},
		Carrier:  CarrierConfig{DutyCycle: 25},
		Debounce: 100 * time.Millisecond,
		Repeat:   RepeatConfig{Count: 0, Gap: 40 * time.Millisecond},
		Sim:      SimConfig{Seed: 1},
		Log:      LogConfig{Level: "info", Format: logging.FormatConsole},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("read config file: %w", err), path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.WrapConfigError(err, path)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player is required")
	}

	names := make(map[string]bool)
	addrs := make(map[uint16]string)
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("players[%d]: name is required", i)
		}
		if names[p.Name] {
			return fmt.Errorf("players[%d]: duplicate name %q", i, p.Name)
		}
		names[p.Name] = true
		if other, ok := addrs[p.Player]; ok {
			return fmt.Errorf("players[%d]: address 0x%04X already used by %q", i, p.Player, other)
		}
		addrs[p.Player] = p.Name
	}

	if c.Carrier.DutyCycle == 0 || c.Carrier.DutyCycle > 100 {
		return fmt.Errorf("carrier.duty_cycle must be 1-100, got %d", c.Carrier.DutyCycle)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}
	if c.Repeat.Count < 0 {
		return fmt.Errorf("repeat.count must not be negative")
	}
	if c.Repeat.Count > 0 && c.Repeat.Gap < 0 {
		return fmt.Errorf("repeat.gap must not be negative")
	}
	if c.Sim.JitterMicros < 0 || c.Sim.JitterMicros > MaxJitterMicros {
		return fmt.Errorf("sim.jitter_us must be 0-%d, got %d", MaxJitterMicros, c.Sim.JitterMicros)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, c.Log.Format)
	}
	return nil
}

// Player looks a player up by name.
func (c *Config) Player(name string) (PlayerConfig, bool) {
	for _, p := range c.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerConfig{}, false
}
