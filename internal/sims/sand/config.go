package sand

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid sand config")

// Params holds the tunables that may change while the world is running.
type Params struct {
	// HeatRate scales every conduction step.
	HeatRate float64 `yaml:"heat_rate"`
	// EmberChance is the per-tick probability that a burning cell throws
	// smoke or fire into an adjacent air cell.
	EmberChance float64 `yaml:"ember_chance"`
}

// Config controls the sand world dimensions and physics constants.
type Config struct {
	Width    int
	Height   int
	CellSize int

	TimeStep time.Duration
	RoomTemp float64

	// Workers sizes the chunk worker pool. Negative picks one worker per
	// logical core minus one; zero runs every chunk on the caller.
	Workers int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:    1280,
		Height:   768,
		CellSize: 64,
		TimeStep: 12500 * time.Microsecond,
		RoomTemp: 25,
		Workers:  -1,
		Seed:     1337,
		Params: Params{
			HeatRate:    0.5,
			EmberChance: 0.004,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Values that fail to parse keep their defaults. A "config" key names a YAML
// file that is loaded first; the remaining keys override it.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if path, ok := cfg["config"]; ok && path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return c, err
		}
		c = loaded
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["cell_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.CellSize = parsed
		}
	}
	if v, ok := cfg["time_step"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			c.TimeStep = parsed
		}
	}
	if v, ok := cfg["room_temp"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.RoomTemp = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["heat_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.HeatRate = parsed
		}
	}
	if v, ok := cfg["ember_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.EmberChance = parsed
		}
	}
	return c, nil
}

// Validate reports the first field that cannot drive a world.
func (c Config) Validate() error {
	switch {
	case c.Width < 3 || c.Height < 3:
		return fmt.Errorf("%w: grid %dx%d needs room inside the border", ErrInvalidConfig, c.Width, c.Height)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d", ErrInvalidConfig, c.CellSize)
	case c.TimeStep <= 0:
		return fmt.Errorf("%w: time step %s", ErrInvalidConfig, c.TimeStep)
	case c.Params.HeatRate < 0:
		return fmt.Errorf("%w: heat rate %g", ErrInvalidConfig, c.Params.HeatRate)
	case c.Params.EmberChance < 0 || c.Params.EmberChance > 1:
		return fmt.Errorf("%w: ember chance %g outside [0,1]", ErrInvalidConfig, c.Params.EmberChance)
	}
	return nil
}

type fileConfig struct {
	Width    *int     `yaml:"width"`
	Height   *int     `yaml:"height"`
	CellSize *int     `yaml:"cell_size"`
	TimeStep string   `yaml:"time_step"`
	RoomTemp *float64 `yaml:"room_temp"`
	Workers  *int     `yaml:"workers"`
	Seed     *int64   `yaml:"seed"`
	Params   *Params  `yaml:"params"`
}

// LoadConfig reads a YAML config file. Missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read sand config: %w", err)
	}
	fc := fileConfig{Params: &c.Params}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return c, fmt.Errorf("parse sand config %s: %w", path, err)
	}
	if fc.Width != nil {
		c.Width = *fc.Width
	}
	if fc.Height != nil {
		c.Height = *fc.Height
	}
	if fc.CellSize != nil {
		c.CellSize = *fc.CellSize
	}
	if fc.TimeStep != "" {
		d, err := time.ParseDuration(fc.TimeStep)
		if err != nil {
			return c, fmt.Errorf("parse sand config %s: time_step: %w", path, err)
		}
		c.TimeStep = d
	}
	if fc.RoomTemp != nil {
		c.RoomTemp = *fc.RoomTemp
	}
	if fc.Workers != nil {
		c.Workers = *fc.Workers
	}
	if fc.Seed != nil {
		c.Seed = *fc.Seed
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("load sand config %s: %w", path, err)
	}
	return c, nil
}
