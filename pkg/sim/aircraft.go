package sim

import (
	"fmt"
	"sort"

	"github.com/tacair/aircombat-simulations/pkg/catalog"
	"github.com/tacair/aircombat-simulations/pkg/fdm"
	"github.com/tacair/aircombat-simulations/pkg/geo"
)

// EngineFactory builds a fresh flight-dynamics engine for a model. Reload
// always builds a new instance; a handle is never partially reused.
type EngineFactory func(model string) (fdm.Engine, error)

// defaultConditions seeds every reload before scenario overrides apply,
// in this order.
var defaultConditions = []struct {
	key   string
	value float64
}{
	{catalog.ICLongGcDeg, 120.0},
	{catalog.ICLatGeodDeg, 60.0},
	{catalog.ICHSlFt, 20000},
	{catalog.ICPsiTrueDeg, 0.0},
	{catalog.ICUFps, 800.0},
	{catalog.ICVFps, 0.0},
	{catalog.ICWFps, 0.0},
	{catalog.ICPRadSec, 0.0},
	{catalog.ICQRadSec, 0.0},
	{catalog.ICRRadSec, 0.0},
	{catalog.ICRocFpm, 0.0},
	{catalog.ICTerrainElevFt, 0.0},
}

// AircraftOptions configures a new aircraft.
type AircraftOptions struct {
	UID       string
	Color     TeamColor
	Model     string
	InitState map[string]float64 // catalog key -> value, overrides defaults
	Origin    Geodetic
	Frequency int                // engine integration frequency, Hz
	Catalog   *catalog.Catalog
	Factory   EngineFactory
}

// Aircraft wraps an exclusively owned flight-dynamics engine and keeps its
// cached kinematic state refreshed from engine properties every tick.
type Aircraft struct {
	baseEntity

	engine    fdm.Engine
	factory   EngineFactory
	cat       *catalog.Catalog
	initState map[string]float64

	// Loadout and cross-entity bookkeeping used by the fire-control layer.
	MissilesRemaining int
	launched          []*Missile
	incoming          []*Missile
}

// NewAircraft creates an aircraft and performs the initial reload.
func NewAircraft(opts AircraftOptions) (*Aircraft, error) {
	if opts.Frequency <= 0 {
		opts.Frequency = 60
	}
	if opts.UID == "" {
		opts.UID = "A0100"
	}
	if opts.Color == "" {
		opts.Color = TeamRed
	}
	if opts.Model == "" {
		opts.Model = "f16"
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.NewDefaultCatalog()
	}
	if opts.Factory == nil {
		opts.Factory = func(string) (fdm.Engine, error) { return fdm.NewFlatEarth(), nil }
	}

	a := &Aircraft{
		baseEntity: baseEntity{
			uid:    opts.UID,
			color:  opts.Color,
			dt:     1.0 / float64(opts.Frequency),
			model:  opts.Model,
			origin: opts.Origin,
		},
		factory:   opts.Factory,
		cat:       opts.Catalog,
		initState: opts.InitState,
	}
	if err := a.Reload(nil, nil); err != nil {
		return nil, err
	}
	return a, nil
}

// Reload tears down the engine handle and rebuilds it from scratch: load
// the model, merge its property catalog, apply defaults then overrides,
// solve the initial conditions, and prime every engine to a running steady
// state so the episode starts with stable thrust. A failed solve returns
// ErrInitialization and leaves the aircraft unusable until a reload
// succeeds.
func (a *Aircraft) Reload(newState map[string]float64, newOrigin *Geodetic) error {
	a.resetState()
	a.launched = nil
	a.incoming = nil

	engine, err := a.factory(a.model)
	if err != nil {
		return fmt.Errorf("aircraft %s: creating engine: %w", a.uid, err)
	}
	if err := engine.LoadModel(a.model); err != nil {
		return fmt.Errorf("aircraft %s: loading model %q: %w", a.uid, a.model, err)
	}
	a.engine = engine
	a.cat.MergeEngineProperties(engine.QueryPropertyCatalog(""))
	engine.SetDT(a.dt)

	if newState != nil {
		a.initState = newState
	}
	if newOrigin != nil {
		a.origin = *newOrigin
	}

	for _, dc := range defaultConditions {
		if err := a.SetPropertyValue(dc.key, dc.value); err != nil {
			return fmt.Errorf("aircraft %s: default condition: %w", a.uid, err)
		}
	}
	// Map iteration order is unspecified; apply overrides sorted by key so
	// reloads are reproducible.
	keys := make([]string, 0, len(a.initState))
	for k := range a.initState {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := a.SetPropertyValue(k, a.initState[k]); err != nil {
			return fmt.Errorf("aircraft %s: initial condition: %w", a.uid, err)
		}
	}

	if !engine.RunIC() {
		return fmt.Errorf("aircraft %s: %w", a.uid, ErrInitialization)
	}
	for i := 0; i < engine.NumEngines(); i++ {
		engine.InitEngineRunning(i)
	}

	a.updateProperties()
	return nil
}

// Run advances the engine integrator by one timestep and refreshes the
// cached state from engine properties. Engine-reported termination becomes
// ErrIntegration; it is never swallowed.
func (a *Aircraft) Run() error {
	if a.engine == nil {
		return fmt.Errorf("aircraft %s: engine closed: %w", a.uid, ErrIntegration)
	}
	if !a.engine.Run() {
		return fmt.Errorf("aircraft %s: %w", a.uid, ErrIntegration)
	}
	a.updateProperties()
	return nil
}

// Log returns the visualizer state line.
func (a *Aircraft) Log() string { return a.logLine() }

// Close releases the engine handle.
func (a *Aircraft) Close() error {
	a.engine = nil
	return nil
}

// updateProperties re-derives the cached geodetic, NEU position, attitude
// and velocity from current engine properties. State is never extrapolated
// between refreshes.
func (a *Aircraft) updateProperties() {
	a.geodetic = Geodetic{
		Lon: a.mustGet(catalog.PositionLongGcDeg),
		Lat: a.mustGet(catalog.PositionLatGeodDeg),
		Alt: a.mustGet(catalog.PositionHSlM),
	}
	n, e, u := geo.LLA2NEU(a.geodetic.Lon, a.geodetic.Lat, a.geodetic.Alt,
		a.origin.Lon, a.origin.Lat, a.origin.Alt)
	a.position = Vector3{n, e, u}

	a.attitude = Attitude{
		Roll:  a.mustGet(catalog.AttitudeRollRad),
		Pitch: a.mustGet(catalog.AttitudePitchRad),
		Yaw:   a.mustGet(catalog.AttitudeHeadingRad),
	}
	// The engine reports v-down; cached velocity is north-east-up.
	a.velocity = Vector3{
		X: a.mustGet(catalog.VelocityNorthMps),
		Y: a.mustGet(catalog.VelocityEastMps),
		Z: -a.mustGet(catalog.VelocityDownMps),
	}
}

func (a *Aircraft) mustGet(key string) float64 {
	v, err := a.cat.Get(a.engine, key)
	if err != nil {
		// The refresh set is registered by the default catalog; a miss here
		// is a programming error, not a runtime condition.
		panic(fmt.Sprintf("aircraft %s: %v", a.uid, err))
	}
	return v
}

// GetPropertyValue reads a catalog property from this aircraft's engine.
func (a *Aircraft) GetPropertyValue(key string) (float64, error) {
	return a.cat.Get(a.engine, key)
}

// SetPropertyValue writes a catalog property to this aircraft's engine.
func (a *Aircraft) SetPropertyValue(key string, value float64) error {
	return a.cat.Set(a.engine, key, value)
}

// GetSimTime returns the engine's accumulated simulation time.
func (a *Aircraft) GetSimTime() float64 { return a.engine.GetSimTime() }

// RecordLaunch notes a missile this aircraft has fired.
func (a *Aircraft) RecordLaunch(m *Missile) {
	a.launched = append(a.launched, m)
	if a.MissilesRemaining > 0 {
		a.MissilesRemaining--
	}
}

// RecordIncoming notes a missile guided at this aircraft.
func (a *Aircraft) RecordIncoming(m *Missile) {
	a.incoming = append(a.incoming, m)
}

// IncomingMissile returns the first still-flying missile guided at this
// aircraft, if any.
func (a *Aircraft) IncomingMissile() (*Missile, bool) {
	for _, m := range a.incoming {
		if m.IsAlive() {
			return m, true
		}
	}
	return nil, false
}
