package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	Workers  int
	Config   string
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sandbox", Scale: 1, TPS: 60, Seed: 42, Workers: -1, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "scene", c.Sim, "scene to load")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Workers, "workers", c.Workers, "chunk workers (negative picks one per core)")
	fs.StringVar(&c.Config, "config", c.Config, "YAML world config")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
}

// SimOptions converts the flags into the option map sim factories accept.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{
		"seed":    strconv.FormatInt(c.Seed, 10),
		"workers": strconv.Itoa(c.Workers),
	}
	if c.Config != "" {
		opts["config"] = c.Config
	}
	return opts
}
