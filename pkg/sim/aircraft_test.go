package sim

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tacair/aircombat-simulations/pkg/catalog"
	"github.com/tacair/aircombat-simulations/pkg/fdm"
)

func newTestAircraft(t *testing.T, uid string, freq int, state map[string]float64) *Aircraft {
	t.Helper()
	a, err := NewAircraft(AircraftOptions{
		UID:       uid,
		Color:     TeamRed,
		Model:     "f16",
		Frequency: freq,
		InitState: state,
		Origin:    Geodetic{Lon: 120, Lat: 60, Alt: 0},
	})
	if err != nil {
		t.Fatalf("NewAircraft failed: %v", err)
	}
	return a
}

func TestReloadAppliesHeadingBeforeFirstRun(t *testing.T) {
	a := newTestAircraft(t, "A0100", 60, map[string]float64{
		catalog.ICPsiTrueDeg: 90.0,
	})

	if got := a.GetRPY().Yaw; math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("Expected yaw pi/2 before any Run, got %v", got)
	}

	// Body-x velocity rotated due east, converted to m/s.
	vel := a.GetVelocity()
	if math.Abs(vel.Y-800*0.3048) > 1e-6 {
		t.Errorf("Expected v-east %v m/s, got %v", 800*0.3048, vel.Y)
	}
	if math.Abs(vel.X) > 1e-6 {
		t.Errorf("Expected v-north ~0, got %v", vel.X)
	}
	if math.Abs(vel.Z) > 1e-6 {
		t.Errorf("Expected v-up ~0, got %v", vel.Z)
	}
}

func TestReloadDefaultsThenOverrides(t *testing.T) {
	a := newTestAircraft(t, "A0100", 60, map[string]float64{
		catalog.ICLatGeodDeg: 59.5,
	})

	geod := a.GetGeodetic()
	if geod.Lat != 59.5 {
		t.Errorf("Override latitude not applied, got %v", geod.Lat)
	}
	if geod.Lon != 120.0 {
		t.Errorf("Default longitude lost, got %v", geod.Lon)
	}
	if math.Abs(geod.Alt-20000*0.3048) > 1e-6 {
		t.Errorf("Default altitude lost, got %v", geod.Alt)
	}
}

func TestReloadInitializationFailure(t *testing.T) {
	_, err := NewAircraft(AircraftOptions{
		UID: "A0100",
		Factory: func(string) (fdm.Engine, error) {
			f := fdm.NewFlatEarth()
			f.FailIC = true
			return f, nil
		},
	})
	if err == nil {
		t.Fatalf("Expected initialization error")
	}
	if !errors.Is(err, ErrInitialization) {
		t.Errorf("Expected ErrInitialization, got %v", err)
	}
}

func TestRunIntegrationFailurePropagates(t *testing.T) {
	a, err := NewAircraft(AircraftOptions{
		UID: "A0100",
		Factory: func(string) (fdm.Engine, error) {
			f := fdm.NewFlatEarth()
			f.FailAfterSteps = 1
			return f, nil
		},
	})
	if err != nil {
		t.Fatalf("NewAircraft failed: %v", err)
	}

	if err := a.Run(); err != nil {
		t.Fatalf("Expected first step to succeed, got %v", err)
	}
	err = a.Run()
	if err == nil {
		t.Fatalf("Expected integration error on second step")
	}
	if !errors.Is(err, ErrIntegration) {
		t.Errorf("Expected ErrIntegration, got %v", err)
	}
}

func TestRunRefreshesCachedState(t *testing.T) {
	a := newTestAircraft(t, "A0100", 60, nil) // defaults: 800 fps due north

	before := a.GetPosition()
	for i := 0; i < 60; i++ {
		if err := a.Run(); err != nil {
			t.Fatalf("Run failed at step %d: %v", i, err)
		}
	}
	after := a.GetPosition()

	if after.X <= before.X {
		t.Errorf("Expected northward displacement, got %v -> %v", before.X, after.X)
	}
	if got := a.GetSimTime(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected 1s sim time, got %v", got)
	}
	if geod := a.GetGeodetic(); geod.Lat <= 60.0 {
		t.Errorf("Expected latitude to increase flying north, got %v", geod.Lat)
	}
}

func TestReloadResetsBookkeeping(t *testing.T) {
	parent := newTestAircraft(t, "A0100", 12, nil)
	target := newTestAircraft(t, "B0100", 12, map[string]float64{
		catalog.ICLatGeodDeg: 60.5,
	})
	parent.MissilesRemaining = 2

	if _, err := LaunchMissile(parent, target, "A0101", "AIM-9L"); err != nil {
		t.Fatalf("LaunchMissile failed: %v", err)
	}
	if parent.MissilesRemaining != 1 {
		t.Errorf("Expected loadout decrement, got %d", parent.MissilesRemaining)
	}
	if _, ok := target.IncomingMissile(); !ok {
		t.Errorf("Expected incoming missile recorded on target")
	}

	if err := parent.Reload(nil, nil); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if len(parent.launched) != 0 {
		t.Errorf("Expected launched list cleared by reload")
	}
	if err := target.Reload(nil, nil); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if _, ok := target.IncomingMissile(); ok {
		t.Errorf("Expected incoming list cleared by reload")
	}
}

func TestAircraftLogLine(t *testing.T) {
	a := newTestAircraft(t, "A0100", 60, nil)

	line := a.Log()
	if !strings.HasPrefix(line, "A0100,T=120.000000|60.000000|") {
		t.Errorf("Unexpected log prefix: %q", line)
	}
	if !strings.Contains(line, "Name=F16") || !strings.Contains(line, "Color=Red") {
		t.Errorf("Missing name or color in log line: %q", line)
	}
}

func TestPropertyAccessThroughCatalog(t *testing.T) {
	a := newTestAircraft(t, "A0100", 60, nil)

	if err := a.SetPropertyValue(catalog.FcsThrottleCmdNorm, 0.8); err != nil {
		t.Fatalf("SetPropertyValue failed: %v", err)
	}
	got, err := a.GetPropertyValue(catalog.FcsThrottleCmdNorm)
	if err != nil {
		t.Fatalf("GetPropertyValue failed: %v", err)
	}
	if got != 0.8 {
		t.Errorf("Expected throttle 0.8, got %v", got)
	}

	if _, err := a.GetPropertyValue("no_such_property"); !errors.Is(err, catalog.ErrUnknownProperty) {
		t.Errorf("Expected ErrUnknownProperty, got %v", err)
	}
}
