package conditions

import (
	"fmt"
	"math"
	"testing"

	"github.com/tacair/aircombat-simulations/pkg/catalog"
)

// propMap is a minimal Accessor backed by a map.
type propMap map[string]float64

func (p propMap) GetPropertyValue(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("no property %q", key)
	}
	return v, nil
}

func (p propMap) SetPropertyValue(key string, value float64) error {
	p[key] = value
	return nil
}

func TestOverloadExemptEarlyInEpisode(t *testing.T) {
	props := propMap{
		catalog.SimulationTimeSec: 5.0,
		catalog.AccelPilotXNorm:   50.0,
		catalog.AccelPilotYNorm:   0.0,
		catalog.AccelPilotZNorm:   -1.0,
	}
	res, err := NewOverload().Check(props)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Done {
		t.Errorf("Expected exemption before 10s of sim time")
	}
}

func TestOverloadLimits(t *testing.T) {
	tests := []struct {
		name string
		ax   float64
		ay   float64
		az   float64
		done bool
	}{
		{"level flight", 0, 0, -1, false},
		{"at x limit", 10, 0, -1, false},
		{"over x limit", 10.5, 0, -1, true},
		{"over y limit", 0, -11, -1, true},
		// z reads -1 in level flight; the limit applies about that offset.
		{"hard pull z", 0, 0, -12, true},
		{"nine g pull z", 0, 0, -10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := propMap{
				catalog.SimulationTimeSec: 20.0,
				catalog.AccelPilotXNorm:   tt.ax,
				catalog.AccelPilotYNorm:   tt.ay,
				catalog.AccelPilotZNorm:   tt.az,
			}
			res, err := NewOverload().Check(props)
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if res.Done != tt.done {
				t.Errorf("Expected done=%v, got %v", tt.done, res.Done)
			}
		})
	}
}

func TestUnreachHeadingBeforeCheckTime(t *testing.T) {
	props := propMap{
		catalog.SimulationTimeSec: 10.0,
		catalog.HeadingCheckTime:  20.0,
		catalog.DeltaHeading:      90.0,
		catalog.TargetHeadingDeg:  0.0,
	}
	res, err := NewUnreachHeading(20, 1).Check(props)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Done {
		t.Errorf("Expected no check before the scheduled time")
	}
	if props[catalog.TargetHeadingDeg] != 0 {
		t.Errorf("Target heading must not change before the check time")
	}
}

func TestUnreachHeadingFailsCheck(t *testing.T) {
	props := propMap{
		catalog.SimulationTimeSec: 20.0,
		catalog.HeadingCheckTime:  20.0,
		catalog.DeltaHeading:      15.0,
		catalog.TargetHeadingDeg:  45.0,
	}
	res, err := NewUnreachHeading(20, 1).Check(props)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !res.Done {
		t.Errorf("Expected termination with 15 degrees of heading error")
	}
}

func TestUnreachHeadingRollsNewTarget(t *testing.T) {
	props := propMap{
		catalog.SimulationTimeSec: 20.0,
		catalog.HeadingCheckTime:  20.0,
		catalog.DeltaHeading:      2.0,
		catalog.TargetHeadingDeg:  45.0,
	}
	res, err := NewUnreachHeading(20, 1).Check(props)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Done {
		t.Errorf("Expected check to pass with 2 degrees of error")
	}

	next := props[catalog.TargetHeadingDeg]
	if next < 0 || next >= 360 {
		t.Errorf("New target heading out of range: %v", next)
	}
	diff := math.Abs(next - 45.0)
	if diff > 180 {
		diff = 360 - diff
	}
	valid := false
	for _, a := range headingAngles {
		if math.Abs(diff-a) < 1e-9 {
			valid = true
		}
	}
	if !valid {
		t.Errorf("New target heading %v is not one step from 45", next)
	}
	if props[catalog.HeadingCheckTime] != 40.0 {
		t.Errorf("Expected next check at 40s, got %v", props[catalog.HeadingCheckTime])
	}
}

func TestUnreachHeadingDeterministicWithSeed(t *testing.T) {
	run := func() []float64 {
		props := propMap{
			catalog.SimulationTimeSec: 20.0,
			catalog.HeadingCheckTime:  20.0,
			catalog.DeltaHeading:      2.0,
			catalog.TargetHeadingDeg:  45.0,
		}
		cond := NewUnreachHeading(20, 7)
		var headings []float64
		for i := 0; i < 5; i++ {
			props[catalog.SimulationTimeSec] = props[catalog.HeadingCheckTime]
			if _, err := cond.Check(props); err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			headings = append(headings, props[catalog.TargetHeadingDeg])
		}
		return headings
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Seeded rolls diverge at step %d: %v vs %v", i, a[i], b[i])
		}
	}
}
