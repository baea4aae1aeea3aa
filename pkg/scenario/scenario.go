// Package scenario builds engagements from YAML definitions and runs the
// tick loop: step entities, apply fire control, check termination
// conditions, and stream state lines to a recorder.
package scenario

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tacair/aircombat-simulations/pkg/conditions"
	"github.com/tacair/aircombat-simulations/pkg/sim"
)

// Outcome summarizes a finished episode.
type Outcome struct {
	Ticks          int
	SimTime        float64
	MissilesFired  int
	Terminated     map[string]string // uid -> reason
	Survivors      []string
	StoppedByLimit bool
}

// Scenario is one runnable engagement.
type Scenario struct {
	cfg      *Config
	registry *sim.Registry
	fire     *FireControl
	conds    []conditions.Condition
	recorder *Recorder

	terminated map[string]string
	fired      int
	tick       int
}

// New validates cfg, builds every aircraft and wires the fire-control and
// condition layers. The recorder is required; pass a discard writer when
// no stream is wanted.
func New(cfg *Config, rec *Recorder) (*Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scenario{
		cfg:        cfg,
		registry:   sim.NewRegistry(),
		fire:       NewFireControl(cfg.FireControl, cfg.Frequency),
		recorder:   rec,
		terminated: make(map[string]string),
	}

	origin := sim.Geodetic{Lon: cfg.Origin.Lon, Lat: cfg.Origin.Lat, Alt: cfg.Origin.Alt}
	for _, ac := range cfg.Aircraft {
		team, err := sim.ParseTeamColor(ac.Team)
		if err != nil {
			return nil, err
		}
		a, err := sim.NewAircraft(sim.AircraftOptions{
			UID:       ac.UID,
			Color:     team,
			Model:     ac.Model,
			InitState: ac.InitState,
			Origin:    origin,
			Frequency: cfg.Frequency,
		})
		if err != nil {
			return nil, fmt.Errorf("building aircraft %s: %w", ac.UID, err)
		}
		a.MissilesRemaining = ac.Missiles
		if err := s.registry.AddAircraft(a); err != nil {
			return nil, err
		}
	}

	s.conds = append(s.conds, conditions.NewOverload())
	if cfg.Conditions.HeadingCheckInterval > 0 {
		s.conds = append(s.conds,
			conditions.NewUnreachHeading(cfg.Conditions.HeadingCheckInterval, cfg.Conditions.Seed))
	}
	return s, nil
}

// Registry exposes the entity registry, mainly for tests and tooling.
func (s *Scenario) Registry() *sim.Registry { return s.registry }

// enemyOf returns the first live aircraft on another team.
func (s *Scenario) enemyOf(a *sim.Aircraft) *sim.Aircraft {
	for _, other := range s.registry.Aircraft() {
		if other.Color() != a.Color() && s.terminated[other.UID()] == "" {
			return other
		}
	}
	return nil
}

func (s *Scenario) alive(a *sim.Aircraft) bool {
	return s.terminated[a.UID()] == ""
}

// Step advances the scenario by one tick and reports whether the episode
// is over. Integration failures terminate the failing aircraft's episode
// and propagate.
func (s *Scenario) Step() (bool, error) {
	s.tick++

	term := make(map[string]bool, len(s.terminated))
	for uid := range s.terminated {
		term[uid] = true
	}
	if err := s.registry.Step(term); err != nil {
		return true, fmt.Errorf("tick %d: %w", s.tick, err)
	}

	// Fire control runs on current-tick state.
	for _, a := range s.registry.Aircraft() {
		if !s.alive(a) {
			continue
		}
		enemy := s.enemyOf(a)
		if enemy == nil {
			continue
		}
		if s.fire.Observe(a, enemy) {
			uid := a.UID() + strconv.Itoa(a.MissilesRemaining)
			m, err := sim.LaunchMissile(a, enemy, uid, "AIM-9L")
			if err != nil {
				return true, fmt.Errorf("tick %d: %w", s.tick, err)
			}
			if err := s.registry.AddMissile(m); err != nil {
				return true, fmt.Errorf("tick %d: %w", s.tick, err)
			}
			s.fired++
			s.recorder.Event("%s launched %s at %s", a.UID(), uid, enemy.UID())
		}
	}

	// Missile hits take their target out of the episode.
	for _, m := range s.registry.Missiles() {
		if m.Status() != sim.MissileHit {
			continue
		}
		tgt := m.Target()
		if tgt != nil && s.terminated[tgt.UID()] == "" {
			s.markTerminated(tgt.UID(), "destroyed by "+m.UID())
		}
	}

	for _, a := range s.registry.Aircraft() {
		if !s.alive(a) {
			continue
		}
		for _, c := range s.conds {
			res, err := c.Check(a)
			if err != nil {
				return true, fmt.Errorf("tick %d: condition %s: %w", s.tick, c.Name(), err)
			}
			if res.Done {
				s.markTerminated(a.UID(), res.Reason)
				break
			}
		}
	}

	s.emitTick()
	return s.done(), nil
}

func (s *Scenario) markTerminated(uid, reason string) {
	s.terminated[uid] = reason
	s.recorder.Event("%s terminated: %s", uid, reason)
	if e, ok := s.registry.Lookup(uid); ok {
		e.Close()
	}
}

// emitTick streams one block of state lines, live aircraft first, then
// every missile that still has something to say.
func (s *Scenario) emitTick() {
	s.recorder.BeginTick(float64(s.tick) / float64(s.cfg.Frequency))
	for _, a := range s.registry.Aircraft() {
		if s.alive(a) {
			s.recorder.Record(a.Log())
		}
	}
	for _, m := range s.registry.Missiles() {
		s.recorder.Record(m.Log())
	}
}

// done reports whether the episode is over: tick budget spent, everyone
// terminated, or at most one team left with missiles all spent or dead.
func (s *Scenario) done() bool {
	if s.tick >= s.cfg.MaxTicks {
		return true
	}
	teams := make(map[sim.TeamColor]bool)
	live := 0
	for _, a := range s.registry.Aircraft() {
		if s.alive(a) {
			teams[a.Color()] = true
			live++
		}
	}
	if live == 0 {
		return true
	}
	if len(s.cfg.Aircraft) > 1 && len(teams) <= 1 {
		// Opposition wiped out; let in-flight missiles finish.
		for _, m := range s.registry.Missiles() {
			if m.IsAlive() {
				return false
			}
		}
		return true
	}
	return false
}

// Run drives Step until the episode ends or ctx is cancelled.
func (s *Scenario) Run(ctx context.Context) (*Outcome, error) {
	defer s.registry.Close()
	for {
		if err := ctx.Err(); err != nil {
			return s.outcome(), err
		}
		done, err := s.Step()
		if err != nil {
			return s.outcome(), err
		}
		if done {
			return s.outcome(), nil
		}
	}
}

func (s *Scenario) outcome() *Outcome {
	out := &Outcome{
		Ticks:          s.tick,
		SimTime:        float64(s.tick) / float64(s.cfg.Frequency),
		MissilesFired:  s.fired,
		Terminated:     make(map[string]string, len(s.terminated)),
		StoppedByLimit: s.tick >= s.cfg.MaxTicks,
	}
	for uid, reason := range s.terminated {
		out.Terminated[uid] = reason
	}
	for _, a := range s.registry.Aircraft() {
		if s.alive(a) {
			out.Survivors = append(out.Survivors, a.UID())
		}
	}
	return out
}
