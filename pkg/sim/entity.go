// Package sim implements the simulable entities of an air-combat scenario:
// aircraft delegating physics to an external flight-dynamics engine, and
// missiles flying an internal proportional-navigation point-mass model.
package sim

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInitialization marks a failed initial-condition solve. It is fatal
	// to that reload; the entity is unusable until a fresh reload succeeds.
	ErrInitialization = errors.New("initial condition solve failed")

	// ErrIntegration marks an engine-reported divergence or termination
	// during a step. It must propagate to the scenario controller so the
	// episode ends instead of continuing from an invalid state.
	ErrIntegration = errors.New("flight dynamics integration failed")
)

// TeamColor is a team affiliation, named after the visualizer palette.
type TeamColor string

const (
	TeamRed    TeamColor = "Red"
	TeamBlue   TeamColor = "Blue"
	TeamGreen  TeamColor = "Green"
	TeamViolet TeamColor = "Violet"
	TeamOrange TeamColor = "Orange"
)

// ParseTeamColor returns the team color matching s, case-insensitively.
func ParseTeamColor(s string) (TeamColor, error) {
	switch strings.ToLower(s) {
	case "red":
		return TeamRed, nil
	case "blue":
		return TeamBlue, nil
	case "green":
		return TeamGreen, nil
	case "violet":
		return TeamViolet, nil
	case "orange":
		return TeamOrange, nil
	default:
		return "", fmt.Errorf("unknown team color %q", s)
	}
}

// Entity is one simulable object. The scenario layer calls Run exactly once
// per tick and treats aircraft and missiles uniformly through this surface.
type Entity interface {
	UID() string
	Color() TeamColor
	DT() float64

	// Run advances the entity by one timestep.
	Run() error

	// Log returns the visualizer line for the current state, or "" when
	// the entity has nothing further to emit.
	Log() string

	// Close releases any owned resources.
	Close() error

	// GetGeodetic returns (longitude°, latitude°, altitude m).
	GetGeodetic() Geodetic
	// GetPosition returns (north, east, up) meters relative to the
	// scenario origin.
	GetPosition() Vector3
	// GetRPY returns (roll, pitch, yaw) radians.
	GetRPY() Attitude
	// GetVelocity returns (v_north, v_east, v_up) m/s.
	GetVelocity() Vector3
}

// baseEntity carries the state every entity shares. position is kept as the
// NEU projection of geodetic about the recorded origin after every mutation.
type baseEntity struct {
	uid      string
	color    TeamColor
	dt       float64
	model    string
	geodetic Geodetic
	position Vector3
	attitude Attitude
	velocity Vector3
	origin   Geodetic
}

func (b *baseEntity) UID() string           { return b.uid }
func (b *baseEntity) Color() TeamColor      { return b.color }
func (b *baseEntity) DT() float64           { return b.dt }
func (b *baseEntity) Model() string         { return b.model }
func (b *baseEntity) Origin() Geodetic      { return b.origin }
func (b *baseEntity) GetGeodetic() Geodetic { return b.geodetic }
func (b *baseEntity) GetPosition() Vector3  { return b.position }
func (b *baseEntity) GetRPY() Attitude      { return b.attitude }
func (b *baseEntity) GetVelocity() Vector3  { return b.velocity }

func (b *baseEntity) resetState() {
	b.geodetic = Geodetic{}
	b.position = Vector3{}
	b.attitude = Attitude{}
	b.velocity = Vector3{}
}

// logLine renders the standard visualizer state line.
func (b *baseEntity) logLine() string {
	const radToDeg = 180.0 / math.Pi
	return fmt.Sprintf("%s,T=%.6f|%.6f|%.2f|%.2f|%.2f|%.2f,Name=%s,Color=%s",
		b.uid,
		b.geodetic.Lon, b.geodetic.Lat, b.geodetic.Alt,
		b.attitude.Roll*radToDeg, b.attitude.Pitch*radToDeg, b.attitude.Yaw*radToDeg,
		strings.ToUpper(b.model), b.color)
}
