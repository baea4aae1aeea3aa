// Package conditions implements per-aircraft episode termination checks.
// Checks read and write simulation state only through the property catalog
// surface, so they work against any aircraft regardless of engine.
package conditions

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tacair/aircombat-simulations/pkg/catalog"
)

// Accessor is the property surface a condition operates on.
type Accessor interface {
	GetPropertyValue(key string) (float64, error)
	SetPropertyValue(key string, value float64) error
}

// Result is the outcome of a single condition check.
type Result struct {
	Done   bool
	Reason string
}

// Condition decides each tick whether an aircraft's episode should end.
type Condition interface {
	Name() string
	Check(ac Accessor) (Result, error)
}

// Overload ends the episode when pilot-frame accelerations exceed the
// configured limits. The first 10 s of an episode are exempt so the
// initial-condition transient cannot trip it.
type Overload struct {
	LimitX float64 // g
	LimitY float64 // g
	LimitZ float64 // g
}

// NewOverload returns an Overload with the standard 10 g limits per axis.
func NewOverload() *Overload {
	return &Overload{LimitX: 10, LimitY: 10, LimitZ: 10}
}

func (o *Overload) Name() string { return "overload" }

// Check reads the pilot acceleration properties. The z axis reads one g
// down in level flight, so its magnitude is measured about that offset.
func (o *Overload) Check(ac Accessor) (Result, error) {
	simTime, err := ac.GetPropertyValue(catalog.SimulationTimeSec)
	if err != nil {
		return Result{}, fmt.Errorf("overload check: %w", err)
	}
	if simTime <= 10 {
		return Result{}, nil
	}

	ax, err := ac.GetPropertyValue(catalog.AccelPilotXNorm)
	if err != nil {
		return Result{}, fmt.Errorf("overload check: %w", err)
	}
	ay, err := ac.GetPropertyValue(catalog.AccelPilotYNorm)
	if err != nil {
		return Result{}, fmt.Errorf("overload check: %w", err)
	}
	az, err := ac.GetPropertyValue(catalog.AccelPilotZNorm)
	if err != nil {
		return Result{}, fmt.Errorf("overload check: %w", err)
	}

	if math.Abs(ax) > o.LimitX || math.Abs(ay) > o.LimitY || math.Abs(az+1) > o.LimitZ {
		return Result{Done: true, Reason: "acceleration limit exceeded"}, nil
	}
	return Result{}, nil
}

// headingAngles are the magnitudes a rerolled target heading moves by.
var headingAngles = []float64{30, 60, 90, 120, 150, 180}

// UnreachHeading ends the episode when the aircraft has not closed to
// within 10 degrees of its target heading by the scheduled check time.
// On every check that passes, a new target heading is rolled and the next
// check is scheduled one interval later, both written back through the
// catalog.
type UnreachHeading struct {
	CheckInterval float64 // seconds between scheduled checks
	Tolerance     float64 // degrees
	rng           *rand.Rand
}

// NewUnreachHeading returns the check with a deterministic heading roll
// seeded by seed.
func NewUnreachHeading(checkInterval float64, seed int64) *UnreachHeading {
	return &UnreachHeading{
		CheckInterval: checkInterval,
		Tolerance:     10,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

func (u *UnreachHeading) Name() string { return "unreach-heading" }

func (u *UnreachHeading) Check(ac Accessor) (Result, error) {
	checkTime, err := ac.GetPropertyValue(catalog.HeadingCheckTime)
	if err != nil {
		return Result{}, fmt.Errorf("unreach-heading check: %w", err)
	}
	simTime, err := ac.GetPropertyValue(catalog.SimulationTimeSec)
	if err != nil {
		return Result{}, fmt.Errorf("unreach-heading check: %w", err)
	}
	if simTime < checkTime {
		return Result{}, nil
	}

	delta, err := ac.GetPropertyValue(catalog.DeltaHeading)
	if err != nil {
		return Result{}, fmt.Errorf("unreach-heading check: %w", err)
	}
	res := Result{}
	if math.Abs(delta) > u.Tolerance {
		res = Result{Done: true, Reason: "target heading not reached in time"}
	}

	// Reroll the target and push the next check out one interval even on a
	// failed check, matching a reset-free property state.
	current, err := ac.GetPropertyValue(catalog.TargetHeadingDeg)
	if err != nil {
		return Result{}, fmt.Errorf("unreach-heading check: %w", err)
	}
	angle := headingAngles[u.rng.Intn(len(headingAngles))]
	if u.rng.Intn(2) == 0 {
		angle = -angle
	}
	next := math.Mod(current+angle+360, 360)
	if err := ac.SetPropertyValue(catalog.TargetHeadingDeg, next); err != nil {
		return Result{}, fmt.Errorf("unreach-heading check: %w", err)
	}
	if err := ac.SetPropertyValue(catalog.HeadingCheckTime, checkTime+u.CheckInterval); err != nil {
		return Result{}, fmt.Errorf("unreach-heading check: %w", err)
	}
	return res, nil
}
