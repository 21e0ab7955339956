// Package simconfig holds the run configuration, loaded from a YAML file.
package simconfig

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the simulation run configuration. Persisted as YAML.
// Duration and Timestep are simulated seconds; Irregularity shapes the
// generated polygons (fraction of the base radius); Seed makes shape
// generation reproducible (0 = fresh shapes each run). Destructive switches
// collisions from elastic bounces to removing both bodies.
type Config struct {
	Duration             float64 `yaml:"duration"`
	Timestep             float64 `yaml:"timestep"`
	Irregularity         float64 `yaml:"irregularity"`
	Seed                 int64   `yaml:"seed"`
	PositionalCorrection bool    `yaml:"positional_correction"`
	Destructive          bool    `yaml:"destructive"`
	ReportPath           string  `yaml:"report_path"`
	FrameDir             string  `yaml:"frame_dir"`
}

// Default returns the default configuration: the original 10-second run at
// 0.1s steps, elastic collisions, report under sample_output/.
func Default() Config {
	return Config{
		Duration:             10.0,
		Timestep:             0.1,
		Irregularity:         0.4,
		Seed:                 0,
		PositionalCorrection: true,
		Destructive:          false,
		ReportPath:           "sample_output/collisions.txt",
		FrameDir:             "",
	}
}

// Load reads the configuration from path. A missing file returns Default();
// a file that exists but does not parse is an error. Zero or negative
// duration/timestep fall back to the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.Duration <= 0 {
		cfg.Duration = Default().Duration
	}
	if cfg.Timestep <= 0 {
		cfg.Timestep = Default().Timestep
	}
	return cfg, nil
}

// MaxTicks converts the configured duration to a whole number of ticks.
func (c Config) MaxTicks() int {
	return int(math.Round(c.Duration / c.Timestep))
}
