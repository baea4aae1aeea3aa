package scenario

import (
	"math"

	"github.com/tacair/aircombat-simulations/pkg/geo"
	"github.com/tacair/aircombat-simulations/pkg/sim"
)

// FireControl implements the rule-based launch decision: the target must
// have stayed inside the attack cone for a continuous lock window, be
// within attack distance, and the shooter must have missiles left.
type FireControl struct {
	maxAttackAngle    float64 // degrees
	maxAttackDistance float64 // meters
	lockLen           int

	locks map[string][]bool
}

// NewFireControl builds the launch logic for a scenario frequency. The
// lock window is lockSeconds of consecutive in-cone samples.
func NewFireControl(cfg FireControlConfig, frequency int) *FireControl {
	lockLen := int(cfg.LockSeconds * float64(frequency))
	if lockLen < 1 {
		lockLen = 1
	}
	return &FireControl{
		maxAttackAngle:    cfg.MaxAttackAngle,
		maxAttackDistance: cfg.MaxAttackDistance,
		lockLen:           lockLen,
		locks:             make(map[string][]bool),
	}
}

// Observe records one tick of shooter-target geometry and reports whether
// the shooter should launch this tick.
func (fc *FireControl) Observe(shooter, target *sim.Aircraft) bool {
	los := target.GetPosition().Sub(shooter.GetPosition())
	heading := shooter.GetVelocity()
	distance := los.Norm()

	cosAngle := geo.Clamp(los.Dot(heading)/(distance*heading.Norm()+1e-8), -1, 1)
	attackAngle := math.Acos(cosAngle) * 180.0 / math.Pi

	q := append(fc.locks[shooter.UID()], attackAngle < fc.maxAttackAngle)
	if len(q) > fc.lockLen {
		q = q[1:]
	}
	fc.locks[shooter.UID()] = q

	if len(q) < fc.lockLen {
		return false
	}
	for _, locked := range q {
		if !locked {
			return false
		}
	}
	return distance <= fc.maxAttackDistance && shooter.MissilesRemaining > 0
}

// Reset clears every shooter's lock history.
func (fc *FireControl) Reset() {
	fc.locks = make(map[string][]bool)
}
