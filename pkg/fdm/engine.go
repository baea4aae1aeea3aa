// Package fdm defines the contract for the external flight-dynamics engine
// an aircraft delegates its physics to, and ships an in-memory flat-earth
// implementation for scenarios and tests that run without the real engine.
package fdm

// Engine is the named-property surface of a flight-dynamics model. An
// Engine instance is exclusively owned by one aircraft; it is torn down and
// rebuilt on reload, never partially reused.
type Engine interface {
	// LoadModel loads the aircraft model definition.
	LoadModel(name string) error

	// SetPropertyValue writes a raw named property.
	SetPropertyValue(name string, value float64)

	// GetPropertyValue reads a raw named property.
	GetPropertyValue(name string) float64

	// QueryPropertyCatalog returns the names of all supported properties
	// with the given prefix ("" for all).
	QueryPropertyCatalog(prefix string) []string

	// SetDT sets the integration timestep in seconds.
	SetDT(seconds float64)

	// RunIC solves the initial conditions. It returns false when the solve
	// does not converge.
	RunIC() bool

	// Run advances the integrator by one timestep. It returns false when
	// the engine's own termination or divergence criteria are met.
	Run() bool

	// GetSimTime returns the accumulated simulation time in seconds.
	GetSimTime() float64

	// NumEngines returns the number of propulsion units on the loaded model.
	NumEngines() int

	// InitEngineRunning forces propulsion unit i into a running steady state.
	InitEngineRunning(i int)
}
