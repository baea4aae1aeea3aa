package fdm

import (
	"math"
	"sort"
	"strings"

	"github.com/tacair/aircombat-simulations/pkg/geo"
)

const (
	ftToM    = 0.3048
	degToRad = math.Pi / 180.0
)

// supportedProperties is the catalog a FlatEarth engine reports. The list
// mirrors the slice of the real engine's property tree the simulation core
// touches.
var supportedProperties = []string{
	"ic/long-gc-deg",
	"ic/lat-geod-deg",
	"ic/h-sl-ft",
	"ic/psi-true-deg",
	"ic/u-fps",
	"ic/v-fps",
	"ic/w-fps",
	"ic/p-rad_sec",
	"ic/q-rad_sec",
	"ic/r-rad_sec",
	"ic/roc-fpm",
	"ic/terrain-elevation-ft",
	"position/long-gc-deg",
	"position/lat-geod-deg",
	"position/h-sl-meters",
	"attitude/roll-rad",
	"attitude/pitch-rad",
	"attitude/heading-true-rad",
	"velocities/v-north-fps",
	"velocities/v-east-fps",
	"velocities/v-down-fps",
	"velocities/v-north-mps",
	"velocities/v-east-mps",
	"velocities/v-down-mps",
	"accelerations/n-pilot-x-norm",
	"accelerations/n-pilot-y-norm",
	"accelerations/n-pilot-z-norm",
	"fcs/aileron-cmd-norm",
	"fcs/elevator-cmd-norm",
	"fcs/rudder-cmd-norm",
	"fcs/throttle-cmd-norm",
	"simulation/sim-time-sec",
	"propulsion/engine/set-running",
	"tasks/target-heading-deg",
	"tasks/target-altitude-ft",
	"tasks/delta-heading",
	"tasks/delta-altitude",
	"tasks/heading-check-time",
}

// FlatEarth is an in-memory kinematic Engine. RunIC copies the ic/*
// properties into the live state; Run propagates geodetic position from the
// world-frame velocities over a flat earth. It has no aerodynamics, which
// is enough for guidance, transform, and scenario plumbing to be exercised
// end to end without the external engine library.
type FlatEarth struct {
	model   string
	dt      float64
	simTime float64
	props   map[string]float64
	engines int
	running []bool

	// FailIC forces the next RunIC call to report a failed solve.
	FailIC bool
	// FailAfterSteps, when positive, makes Run report engine termination
	// once that many steps have completed.
	FailAfterSteps int

	steps int
}

// NewFlatEarth creates an engine with a single propulsion unit and a
// 1/60 s default timestep.
func NewFlatEarth() *FlatEarth {
	f := &FlatEarth{
		dt:      1.0 / 60.0,
		props:   make(map[string]float64),
		engines: 1,
	}
	for _, name := range supportedProperties {
		f.props[name] = 0
	}
	f.running = make([]bool, f.engines)
	return f
}

// LoadModel records the model name. Every listed property resets to zero,
// matching a fresh engine instance.
func (f *FlatEarth) LoadModel(name string) error {
	f.model = name
	f.simTime = 0
	f.steps = 0
	for _, p := range supportedProperties {
		f.props[p] = 0
	}
	f.running = make([]bool, f.engines)
	return nil
}

// Model returns the loaded model name.
func (f *FlatEarth) Model() string { return f.model }

func (f *FlatEarth) SetPropertyValue(name string, value float64) {
	f.props[name] = value
}

func (f *FlatEarth) GetPropertyValue(name string) float64 {
	return f.props[name]
}

func (f *FlatEarth) QueryPropertyCatalog(prefix string) []string {
	names := make([]string, 0, len(f.props))
	for name := range f.props {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (f *FlatEarth) SetDT(seconds float64) { f.dt = seconds }

// RunIC copies the initial conditions into the live state: geodetic
// position, heading, and body-frame velocities rotated into the world
// frame. Roll and pitch start level.
func (f *FlatEarth) RunIC() bool {
	if f.FailIC {
		return false
	}

	f.props["position/long-gc-deg"] = f.props["ic/long-gc-deg"]
	f.props["position/lat-geod-deg"] = f.props["ic/lat-geod-deg"]
	f.props["position/h-sl-meters"] = f.props["ic/h-sl-ft"] * ftToM

	psi := f.props["ic/psi-true-deg"] * degToRad
	f.props["attitude/roll-rad"] = 0
	f.props["attitude/pitch-rad"] = 0
	f.props["attitude/heading-true-rad"] = psi

	u := f.props["ic/u-fps"]
	v := f.props["ic/v-fps"]
	w := f.props["ic/w-fps"]
	f.props["velocities/v-north-fps"] = u*math.Cos(psi) - v*math.Sin(psi)
	f.props["velocities/v-east-fps"] = u*math.Sin(psi) + v*math.Cos(psi)
	f.props["velocities/v-down-fps"] = w - f.props["ic/roc-fpm"]/60.0

	// Level unaccelerated flight: pilot feels 1 g up.
	f.props["accelerations/n-pilot-x-norm"] = 0
	f.props["accelerations/n-pilot-y-norm"] = 0
	f.props["accelerations/n-pilot-z-norm"] = -1

	f.simTime = 0
	f.steps = 0
	return true
}

// Run advances the kinematic state by one timestep.
func (f *FlatEarth) Run() bool {
	if f.FailAfterSteps > 0 && f.steps >= f.FailAfterSteps {
		return false
	}

	vn := f.props["velocities/v-north-fps"] * ftToM
	ve := f.props["velocities/v-east-fps"] * ftToM
	vd := f.props["velocities/v-down-fps"] * ftToM

	lat0 := f.props["position/lat-geod-deg"]
	f.props["position/lat-geod-deg"] = lat0 + vn*f.dt/(degToRad*geo.EarthRadius)
	f.props["position/long-gc-deg"] += ve * f.dt / (degToRad * geo.EarthRadius * math.Cos(lat0*degToRad))
	f.props["position/h-sl-meters"] -= vd * f.dt

	if speed := geo.Norm2(vn, ve); speed > 1e-9 {
		heading := math.Atan2(ve, vn)
		if heading < 0 {
			heading += 2 * math.Pi
		}
		f.props["attitude/heading-true-rad"] = heading
		f.props["attitude/pitch-rad"] = math.Atan2(-vd, speed)
	}

	f.simTime += f.dt
	f.steps++
	f.props["simulation/sim-time-sec"] = f.simTime
	return true
}

func (f *FlatEarth) GetSimTime() float64 { return f.simTime }

func (f *FlatEarth) NumEngines() int { return f.engines }

// InitEngineRunning primes propulsion unit i to its running steady state.
func (f *FlatEarth) InitEngineRunning(i int) {
	if i >= 0 && i < len(f.running) {
		f.running[i] = true
	}
	f.props["propulsion/engine/set-running"] = 1
}

// EngineRunning reports whether propulsion unit i has been primed.
func (f *FlatEarth) EngineRunning(i int) bool {
	return i >= 0 && i < len(f.running) && f.running[i]
}
