package fdm

import (
	"math"
	"testing"
)

func TestRunICCopiesInitialConditions(t *testing.T) {
	f := NewFlatEarth()
	if err := f.LoadModel("f16"); err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}

	f.SetPropertyValue("ic/long-gc-deg", 120.0)
	f.SetPropertyValue("ic/lat-geod-deg", 60.0)
	f.SetPropertyValue("ic/h-sl-ft", 20000.0)
	f.SetPropertyValue("ic/psi-true-deg", 90.0)
	f.SetPropertyValue("ic/u-fps", 800.0)

	if !f.RunIC() {
		t.Fatalf("RunIC reported failure")
	}

	if got := f.GetPropertyValue("position/long-gc-deg"); got != 120.0 {
		t.Errorf("Expected longitude 120, got %v", got)
	}
	if got := f.GetPropertyValue("position/h-sl-meters"); math.Abs(got-20000*0.3048) > 1e-9 {
		t.Errorf("Expected altitude %v m, got %v", 20000*0.3048, got)
	}
	if got := f.GetPropertyValue("attitude/heading-true-rad"); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("Expected heading pi/2, got %v", got)
	}

	// Heading 90°: body-x velocity points due east.
	if got := f.GetPropertyValue("velocities/v-east-fps"); math.Abs(got-800.0) > 1e-9 {
		t.Errorf("Expected v-east 800 fps, got %v", got)
	}
	if got := f.GetPropertyValue("velocities/v-north-fps"); math.Abs(got) > 1e-9 {
		t.Errorf("Expected v-north ~0 fps, got %v", got)
	}
}

func TestRunICFailureSwitch(t *testing.T) {
	f := NewFlatEarth()
	f.FailIC = true
	if f.RunIC() {
		t.Errorf("Expected RunIC to fail with FailIC set")
	}
}

func TestRunAdvancesTimeAndPosition(t *testing.T) {
	f := NewFlatEarth()
	f.SetDT(1.0 / 60.0)
	f.SetPropertyValue("ic/lat-geod-deg", 60.0)
	f.SetPropertyValue("ic/long-gc-deg", 120.0)
	f.SetPropertyValue("ic/h-sl-ft", 10000.0)
	f.SetPropertyValue("ic/u-fps", 800.0) // due north
	if !f.RunIC() {
		t.Fatalf("RunIC failed")
	}

	for i := 0; i < 60; i++ {
		if !f.Run() {
			t.Fatalf("Run failed at step %d", i)
		}
	}

	if got := f.GetSimTime(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected sim time 1s after 60 steps, got %v", got)
	}
	if got := f.GetPropertyValue("position/lat-geod-deg"); got <= 60.0 {
		t.Errorf("Expected latitude to increase flying north, got %v", got)
	}
	if got := f.GetPropertyValue("simulation/sim-time-sec"); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected sim-time property 1s, got %v", got)
	}
}

func TestRunTerminationSwitch(t *testing.T) {
	f := NewFlatEarth()
	f.FailAfterSteps = 2
	if !f.RunIC() {
		t.Fatalf("RunIC failed")
	}

	if !f.Run() || !f.Run() {
		t.Fatalf("Expected first two steps to succeed")
	}
	if f.Run() {
		t.Errorf("Expected step 3 to report engine termination")
	}
}

func TestQueryPropertyCatalog(t *testing.T) {
	f := NewFlatEarth()

	ics := f.QueryPropertyCatalog("ic/")
	if len(ics) == 0 {
		t.Fatalf("Expected ic/ properties in catalog")
	}
	for _, name := range ics {
		if name[:3] != "ic/" {
			t.Errorf("Unexpected name %q for prefix ic/", name)
		}
	}

	all := f.QueryPropertyCatalog("")
	if len(all) < len(ics) {
		t.Errorf("Full catalog smaller than prefixed catalog")
	}
}

func TestInitEngineRunning(t *testing.T) {
	f := NewFlatEarth()
	if f.EngineRunning(0) {
		t.Errorf("Engine should start cold")
	}
	for i := 0; i < f.NumEngines(); i++ {
		f.InitEngineRunning(i)
	}
	if !f.EngineRunning(0) {
		t.Errorf("Engine should be running after InitEngineRunning")
	}
	if f.GetPropertyValue("propulsion/engine/set-running") != 1 {
		t.Errorf("set-running property not reflected")
	}
}
