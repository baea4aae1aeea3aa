package sim

import "fmt"

// Registry holds every entity of a running scenario keyed by UID and steps
// them in a fixed order: all aircraft first, then all missiles. Missiles
// therefore guide on target state from the current tick, not the previous
// one.
type Registry struct {
	entities map[string]Entity
	aircraft []*Aircraft
	missiles []*Missile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]Entity)}
}

// AddAircraft registers an aircraft. UIDs must be unique.
func (r *Registry) AddAircraft(a *Aircraft) error {
	if _, ok := r.entities[a.UID()]; ok {
		return fmt.Errorf("duplicate entity uid %q", a.UID())
	}
	r.entities[a.UID()] = a
	r.aircraft = append(r.aircraft, a)
	return nil
}

// AddMissile registers a missile. UIDs must be unique.
func (r *Registry) AddMissile(m *Missile) error {
	if _, ok := r.entities[m.UID()]; ok {
		return fmt.Errorf("duplicate entity uid %q", m.UID())
	}
	r.entities[m.UID()] = m
	r.missiles = append(r.missiles, m)
	return nil
}

// Lookup returns the entity registered under uid.
func (r *Registry) Lookup(uid string) (Entity, bool) {
	e, ok := r.entities[uid]
	return e, ok
}

// Aircraft returns the registered aircraft in registration order.
func (r *Registry) Aircraft() []*Aircraft { return r.aircraft }

// Missiles returns the registered missiles in registration order.
func (r *Registry) Missiles() []*Missile { return r.missiles }

// Step advances every live entity by one tick, aircraft before missiles.
// The first aircraft error aborts the tick and propagates; missiles in
// terminal states are skipped.
func (r *Registry) Step(terminated map[string]bool) error {
	for _, a := range r.aircraft {
		if terminated[a.UID()] {
			continue
		}
		if err := a.Run(); err != nil {
			return err
		}
	}
	for _, m := range r.missiles {
		if !m.IsAlive() {
			continue
		}
		if err := m.Run(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every entity. The last error wins.
func (r *Registry) Close() error {
	var err error
	for _, e := range r.entities {
		if cerr := e.Close(); cerr != nil {
			err = cerr
		}
	}
	return err
}
