// Package config loads the optional scrumcore.yaml settings file. A missing
// file means defaults; a present but malformed file is an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/danielbarros/scrumcore/internal/domain"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "SCRUMCORE_CONFIG"

const defaultFileName = "scrumcore.yaml"

type RetroDefaults struct {
	VotesPerPerson int    `yaml:"votes_per_person"`
	AllowAnonymous bool   `yaml:"allow_anonymous"`
	Format         string `yaml:"format"`
}

type Config struct {
	// Project is the project id commands operate on when --project is
	// not given.
	Project string `yaml:"project"`

	// WIPLimits maps board columns to advisory card limits; zero or
	// missing means unlimited.
	WIPLimits map[string]int `yaml:"wip_limits"`

	// VelocityWindow is how many completed sprints the velocity chart
	// covers.
	VelocityWindow int `yaml:"velocity_window"`

	Retro RetroDefaults `yaml:"retro"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Project:        "default",
		VelocityWindow: 6,
		Retro: RetroDefaults{
			VotesPerPerson: 3,
			AllowAnonymous: true,
			Format:         string(domain.FormatMadSadGlad),
		},
	}
}

// Load reads the config from path, from $SCRUMCORE_CONFIG, or from
// scrumcore.yaml in the working directory, in that order of preference.
// A missing file yields Default() without error.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = defaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", filepath.Clean(path), err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", filepath.Clean(path), err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	for column, limit := range c.WIPLimits {
		if !domain.ValidTaskStatuses[domain.TaskStatus(column)] {
			return fmt.Errorf("wip_limits: %q is not a board column", column)
		}
		if limit < 0 {
			return fmt.Errorf("wip_limits: %q has a negative limit", column)
		}
	}
	if c.VelocityWindow < 1 {
		return fmt.Errorf("velocity_window: must be at least 1")
	}
	if c.Retro.VotesPerPerson < 1 {
		return fmt.Errorf("retro.votes_per_person: must be at least 1")
	}
	if _, ok := domain.RetroFormatColumns[domain.RetroFormat(c.Retro.Format)]; !ok {
		return fmt.Errorf("retro.format: unknown format %q", c.Retro.Format)
	}
	return nil
}

// BoardWIPLimits converts the string-keyed yaml map to typed statuses.
func (c Config) BoardWIPLimits() map[domain.TaskStatus]int {
	limits := make(map[domain.TaskStatus]int, len(c.WIPLimits))
	for column, limit := range c.WIPLimits {
		limits[domain.TaskStatus(column)] = limit
	}
	return limits
}
