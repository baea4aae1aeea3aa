package sim

import (
	"fmt"
	"math"

	"github.com/tacair/aircombat-simulations/pkg/geo"
)

// MissileStatus is a missile's lifecycle phase. Status only moves forward:
// once Hit or Inactive, a missile never flies again.
type MissileStatus int

const (
	// MissileUnlaunched is the zero value before Launch.
	MissileUnlaunched MissileStatus = iota
	MissileLaunched
	MissileHit
	MissileInactive
)

func (s MissileStatus) String() string {
	switch s {
	case MissileUnlaunched:
		return "Unlaunched"
	case MissileLaunched:
		return "Launched"
	case MissileHit:
		return "Hit"
	case MissileInactive:
		return "Inactive"
	default:
		return fmt.Sprintf("MissileStatus(%d)", int(s))
	}
}

// Point-mass missile model parameters.
const (
	missileTMax   = 30.0    // flight time limit, s
	missileThrust = 10000.0 // constant thrust, N
	missileArea   = 0.025   // cross-sectional area, m^2
	missileMass0  = 150.0   // launch mass, kg
	missileDM     = 4.0     // mass loss rate, kg/s
	missileCD     = 0.1     // drag factor
	missileG      = 9.81    // gravitational acceleration, m/s^2
	missileK      = 3.0     // proportional navigation gain
	missileNMax   = 40.0    // overload limit, g
	// KillRadius is the proximity-fuse distance in meters. A tick that
	// closes inside it detonates before any further integration.
	KillRadius = 300.0
)

// Missile flies a three-degree-of-freedom point-mass model under
// proportional navigation toward a target entity. It needs no external
// engine; each Run integrates its own state with forward Euler.
type Missile struct {
	baseEntity

	status MissileStatus
	target Entity

	t    float64 // time since launch, s
	mass float64 // current mass, kg

	renderedExplosion bool
}

// NewMissile creates an unlaunched missile. The timestep defaults to 1/12 s
// when frequency is zero or negative.
func NewMissile(uid string, color TeamColor, model string, frequency int) *Missile {
	dt := 1.0 / 12.0
	if frequency > 0 {
		dt = 1.0 / float64(frequency)
	}
	if uid == "" {
		uid = "A0101"
	}
	if model == "" {
		model = "AIM-9L"
	}
	return &Missile{
		baseEntity: baseEntity{
			uid:   uid,
			color: color,
			dt:    dt,
			model: model,
		},
	}
}

// LaunchMissile builds a missile, fires it from parent and guides it at
// target in one step. Parent and target must share the scenario timestep.
func LaunchMissile(parent *Aircraft, target *Aircraft, uid, model string) (*Missile, error) {
	if parent.DT() != target.DT() {
		return nil, fmt.Errorf("missile %s: parent and target timesteps differ (%v vs %v)",
			uid, parent.DT(), target.DT())
	}
	m := NewMissile(uid, parent.Color(), model, 0)
	m.dt = parent.DT()
	m.Launch(parent)
	m.SetTarget(target)
	parent.RecordLaunch(m)
	target.RecordIncoming(m)
	return m, nil
}

// Launch inherits the parent's kinematic state at the moment of firing.
// Roll is zeroed; the model holds it at zero for the whole flight.
func (m *Missile) Launch(parent *Aircraft) {
	m.geodetic = parent.GetGeodetic()
	m.position = parent.GetPosition()
	m.velocity = parent.GetVelocity()
	m.attitude = parent.GetRPY()
	m.attitude.Roll = 0
	m.origin = parent.Origin()
	m.t = 0
	m.mass = missileMass0
	m.status = MissileLaunched
}

// SetTarget points guidance at target. The target's cached state is read
// each tick; a terminated target keeps its last known state, so the
// missile keeps flying at that point.
func (m *Missile) SetTarget(target Entity) { m.target = target }

// Target returns the currently guided entity.
func (m *Missile) Target() Entity { return m.target }

// Status returns the lifecycle phase.
func (m *Missile) Status() MissileStatus { return m.status }

// IsAlive reports whether the missile is still flying.
func (m *Missile) IsAlive() bool { return m.status == MissileLaunched }

// TimeOfFlight returns seconds since launch.
func (m *Missile) TimeOfFlight() float64 { return m.t }

// Mass returns the current mass in kg.
func (m *Missile) Mass() float64 { return m.mass }

// Run advances the missile by one timestep. Proximity is checked before
// integration, so a tick that starts inside the kill radius detonates
// without moving. Terminal states are no-ops. A launched missile must have
// a target before its first Run.
func (m *Missile) Run() error {
	if m.status != MissileLaunched {
		return nil
	}
	if m.target == nil {
		return fmt.Errorf("missile %s: no target set", m.uid)
	}
	m.t += m.dt
	ny, nz, hit := m.guidance()
	switch {
	case hit:
		m.status = MissileHit
	case m.t > missileTMax:
		m.status = MissileInactive
	default:
		m.integrate(ny, nz)
	}
	return nil
}

// guidance computes the proportional-navigation lateral and vertical
// overload commands, clamped to the overload limit, and reports whether
// the target is inside the kill radius.
func (m *Missile) guidance() (ny, nz float64, hit bool) {
	pm := m.position
	vm := m.velocity
	speed := vm.Norm()
	thetaM := math.Asin(vm.Z / speed)

	pt := m.target.GetPosition()
	vt := m.target.GetVelocity()

	dx, dy, dz := pt.X-pm.X, pt.Y-pm.Y, pt.Z-pm.Z
	rxy := geo.Norm2(dx, dy)
	rxyz := geo.Norm3(dx, dy, dz)

	dvx, dvy, dvz := vt.X-vm.X, vt.Y-vm.Y, vt.Z-vm.Z
	dbeta := (dvy*dx - dvx*dy) / (rxy * rxy)
	deps := (dvz*rxy*rxy - dz*(dx*dvx+dy*dvy)) / (rxyz * rxyz * rxy)

	ny = missileK * speed / missileG * math.Cos(thetaM) * dbeta
	nz = missileK*speed/missileG*deps + math.Cos(thetaM)

	ny = geo.Clamp(ny, -missileNMax, missileNMax)
	nz = geo.Clamp(nz, -missileNMax, missileNMax)
	return ny, nz, rxyz < KillRadius
}

// qbar is the dynamic pressure at the current altitude and speed.
func (m *Missile) qbar() float64 {
	const rho0 = 1.225e-3
	rho := rho0 * math.Exp(-m.position.Z/9300.0)
	v := m.velocity.Norm()
	return 0.5 * rho * v * v
}

// integrate advances position, velocity, attitude and mass by one forward
// Euler step under the commanded overloads.
func (m *Missile) integrate(ny, nz float64) {
	m.position = m.position.Add(m.velocity.Scale(m.dt))
	lon, lat, alt := geo.NEU2LLA(m.position.X, m.position.Y, m.position.Z,
		m.origin.Lon, m.origin.Lat, m.origin.Alt)
	m.geodetic = Geodetic{Lon: lon, Lat: lat, Alt: alt}

	v := m.velocity.Norm()
	theta := m.attitude.Pitch
	phi := m.attitude.Yaw

	drag := missileCD * missileArea * m.qbar()
	nx := (missileThrust - drag) / (m.mass * missileG)

	dv := missileG * (nx - math.Sin(theta))
	dphi := missileG / v * (ny * math.Cos(theta))
	dtheta := missileG / v * (nz - math.Cos(theta))

	v += m.dt * dv
	phi += m.dt * dphi
	theta += m.dt * dtheta

	m.velocity = Vector3{
		X: v * math.Cos(theta) * math.Cos(phi),
		Y: v * math.Cos(theta) * math.Sin(phi),
		Z: v * math.Sin(theta),
	}
	m.attitude = Attitude{Roll: 0, Pitch: theta, Yaw: phi}
	m.mass -= m.dt * missileDM
}

// Log renders the visualizer line. While flying it is the standard state
// line; the first call after termination removes the missile model and
// places an explosion sized to the kill radius. Later calls return "".
func (m *Missile) Log() string {
	switch {
	case m.status == MissileLaunched:
		return m.logLine()
	case m.status == MissileHit || m.status == MissileInactive:
		if m.renderedExplosion {
			return ""
		}
		m.renderedExplosion = true
		const radToDeg = 180.0 / math.Pi
		return fmt.Sprintf("-%s\n%sF,T=%.6f|%.6f|%.2f|%.2f|%.2f|%.2f,Type=Misc+Explosion,Color=%s,Radius=%.0f",
			m.uid, m.uid,
			m.geodetic.Lon, m.geodetic.Lat, m.geodetic.Alt,
			m.attitude.Roll*radToDeg, m.attitude.Pitch*radToDeg, m.attitude.Yaw*radToDeg,
			m.color, KillRadius)
	default:
		return ""
	}
}

// Close releases the target handle.
func (m *Missile) Close() error {
	m.target = nil
	return nil
}
