package scenario

import "github.com/tacair/aircombat-simulations/pkg/catalog"

// Builtin returns the scenarios bundled with the tool. The slice is
// rebuilt on every call so callers may mutate freely.
func Builtin() []*Config {
	duel := GetDefaultConfig()

	heading := &Config{
		Name:        "heading-trainer",
		Description: "Single fighter chasing randomized target headings",
		Frequency:   12,
		MaxTicks:    2400, // ~3.3 minutes at 12 Hz
		Origin:      OriginConfig{Lon: 120.0, Lat: 60.0, Alt: 0.0},
		Aircraft: []AircraftConfig{
			{
				UID:   "A0100",
				Team:  "Red",
				Model: "f16",
				InitState: map[string]float64{
					catalog.ICLongGcDeg:  120.0,
					catalog.ICLatGeodDeg: 60.0,
					catalog.ICPsiTrueDeg: 0.0,
				},
			},
		},
		FireControl: FireControlConfig{
			MaxAttackAngle:    22.5,
			MaxAttackDistance: 12000,
			LockSeconds:       1.0,
		},
		Conditions: ConditionsConfig{
			HeadingCheckInterval: 20,
			Seed:                 1,
		},
	}

	twoVTwo := GetDefaultConfig()
	twoVTwo.Name = "2v2-head-on"
	twoVTwo.Description = "Two-ship sections approach head on"
	twoVTwo.Aircraft = append(twoVTwo.Aircraft,
		AircraftConfig{
			UID: "A0200", Team: "Red", Model: "f16", Missiles: 1,
			InitState: map[string]float64{
				catalog.ICLongGcDeg:  120.05,
				catalog.ICLatGeodDeg: 60.0,
				catalog.ICPsiTrueDeg: 0.0,
			},
		},
		AircraftConfig{
			UID: "B0200", Team: "Blue", Model: "f16", Missiles: 1,
			InitState: map[string]float64{
				catalog.ICLongGcDeg:  120.05,
				catalog.ICLatGeodDeg: 60.3,
				catalog.ICPsiTrueDeg: 180.0,
			},
		},
	)

	return []*Config{duel, heading, twoVTwo}
}

// FindBuiltin returns the bundled scenario with the given name.
func FindBuiltin(name string) (*Config, bool) {
	for _, cfg := range Builtin() {
		if cfg.Name == name {
			return cfg, true
		}
	}
	return nil, false
}
