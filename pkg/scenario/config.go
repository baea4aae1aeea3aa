package scenario

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tacair/aircombat-simulations/pkg/catalog"
	"github.com/tacair/aircombat-simulations/pkg/sim"
)

// AircraftConfig describes one aircraft slot in a scenario.
type AircraftConfig struct {
	UID       string             `yaml:"uid"`
	Team      string             `yaml:"team"`
	Model     string             `yaml:"model"`
	Missiles  int                `yaml:"missiles"`
	InitState map[string]float64 `yaml:"init_state,omitempty"`
}

// OriginConfig is the geodetic origin the local frame is anchored to.
type OriginConfig struct {
	Lon float64 `yaml:"lon"`
	Lat float64 `yaml:"lat"`
	Alt float64 `yaml:"alt"`
}

// FireControlConfig tunes the rule-based launch logic.
type FireControlConfig struct {
	MaxAttackAngle    float64 `yaml:"max_attack_angle"`    // degrees off boresight
	MaxAttackDistance float64 `yaml:"max_attack_distance"` // meters
	LockSeconds       float64 `yaml:"lock_seconds"`        // continuous lock required before launch
}

// ConditionsConfig tunes the episode termination checks.
type ConditionsConfig struct {
	HeadingCheckInterval float64 `yaml:"heading_check_interval"` // seconds; 0 disables the check
	Seed                 int64   `yaml:"seed"`
}

// Config is a full scenario definition loaded from scenario.yaml.
type Config struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Frequency   int               `yaml:"frequency"` // simulation rate, Hz
	MaxTicks    int               `yaml:"max_ticks"`
	Origin      OriginConfig      `yaml:"origin"`
	Aircraft    []AircraftConfig  `yaml:"aircraft"`
	FireControl FireControlConfig `yaml:"fire_control"`
	Conditions  ConditionsConfig  `yaml:"conditions"`
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("frequency must be positive, got %d", c.Frequency)
	}
	if c.MaxTicks <= 0 {
		return fmt.Errorf("max_ticks must be positive, got %d", c.MaxTicks)
	}
	if len(c.Aircraft) == 0 {
		return fmt.Errorf("at least one aircraft is required")
	}
	seen := make(map[string]bool)
	for i, ac := range c.Aircraft {
		if ac.UID == "" {
			return fmt.Errorf("aircraft[%d]: uid is required", i)
		}
		if seen[ac.UID] {
			return fmt.Errorf("aircraft[%d]: duplicate uid %q", i, ac.UID)
		}
		seen[ac.UID] = true
		if _, err := sim.ParseTeamColor(ac.Team); err != nil {
			return fmt.Errorf("aircraft[%d]: %w", i, err)
		}
		if ac.Missiles < 0 {
			return fmt.Errorf("aircraft[%d]: missiles must not be negative", i)
		}
	}
	if c.FireControl.MaxAttackAngle < 0 || c.FireControl.MaxAttackAngle > 180 {
		return fmt.Errorf("max_attack_angle must be within [0, 180], got %v", c.FireControl.MaxAttackAngle)
	}
	if c.FireControl.MaxAttackDistance < 0 {
		return fmt.Errorf("max_attack_distance must not be negative")
	}
	return nil
}

// GetDefaultConfig returns a head-on one-versus-one engagement at 12 Hz
// with one missile per side.
func GetDefaultConfig() *Config {
	return &Config{
		Name:        "1v1-head-on",
		Description: "Two fighters approach head on with one missile each",
		Frequency:   12,
		MaxTicks:    3600, // 5 minutes at 12 Hz
		Origin:      OriginConfig{Lon: 120.0, Lat: 60.0, Alt: 0.0},
		Aircraft: []AircraftConfig{
			{
				UID:      "A0100",
				Team:     "Red",
				Model:    "f16",
				Missiles: 1,
				InitState: map[string]float64{
					catalog.ICLongGcDeg:  120.0,
					catalog.ICLatGeodDeg: 60.0,
					catalog.ICPsiTrueDeg: 0.0,
				},
			},
			{
				UID:      "B0100",
				Team:     "Blue",
				Model:    "f16",
				Missiles: 1,
				InitState: map[string]float64{
					catalog.ICLongGcDeg:  120.0,
					catalog.ICLatGeodDeg: 60.3,
					catalog.ICPsiTrueDeg: 180.0,
				},
			},
		},
		FireControl: FireControlConfig{
			MaxAttackAngle:    22.5,
			MaxAttackDistance: 12000,
			LockSeconds:       1.0,
		},
		Conditions: ConditionsConfig{
			HeadingCheckInterval: 0,
			Seed:                 1,
		},
	}
}

// MergeWithEnvironment overlays supported environment variables onto the
// configuration. Unparsable values are reported, not silently dropped.
func (c *Config) MergeWithEnvironment() error {
	if v := os.Getenv("AIRCOMBAT_FREQUENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AIRCOMBAT_FREQUENCY: %w", err)
		}
		c.Frequency = n
	}
	if v := os.Getenv("AIRCOMBAT_MAX_TICKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AIRCOMBAT_MAX_TICKS: %w", err)
		}
		c.MaxTicks = n
	}
	if v := os.Getenv("AIRCOMBAT_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("AIRCOMBAT_SEED: %w", err)
		}
		c.Conditions.Seed = n
	}
	return nil
}
