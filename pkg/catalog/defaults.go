package catalog

import "math"

// Unit conversion factors between engine-native and scenario units.
const (
	FtToM   = 0.3048
	FpsToMs = 0.3048
)

// Symbolic keys for the aircraft properties the simulation core relies on.
// Engine-reported properties are merged on top of these at load time.
const (
	ICLongGcDeg         = "ic_long_gc_deg"
	ICLatGeodDeg        = "ic_lat_geod_deg"
	ICHSlFt             = "ic_h_sl_ft"
	ICPsiTrueDeg        = "ic_psi_true_deg"
	ICUFps              = "ic_u_fps"
	ICVFps              = "ic_v_fps"
	ICWFps              = "ic_w_fps"
	ICPRadSec           = "ic_p_rad_sec"
	ICQRadSec           = "ic_q_rad_sec"
	ICRRadSec           = "ic_r_rad_sec"
	ICRocFpm            = "ic_roc_fpm"
	ICTerrainElevFt     = "ic_terrain_elevation_ft"
	PositionLongGcDeg   = "position_long_gc_deg"
	PositionLatGeodDeg  = "position_lat_geod_deg"
	PositionHSlM        = "position_h_sl_m"
	AttitudeRollRad     = "attitude_roll_rad"
	AttitudePitchRad    = "attitude_pitch_rad"
	AttitudeHeadingRad  = "attitude_heading_true_rad"
	VelocityNorthMps    = "velocities_v_north_mps"
	VelocityEastMps     = "velocities_v_east_mps"
	VelocityDownMps     = "velocities_v_down_mps"
	AccelPilotXNorm     = "accelerations_n_pilot_x_norm"
	AccelPilotYNorm     = "accelerations_n_pilot_y_norm"
	AccelPilotZNorm     = "accelerations_n_pilot_z_norm"
	FcsAileronCmdNorm   = "fcs_aileron_cmd_norm"
	FcsElevatorCmdNorm  = "fcs_elevator_cmd_norm"
	FcsRudderCmdNorm    = "fcs_rudder_cmd_norm"
	FcsThrottleCmdNorm  = "fcs_throttle_cmd_norm"
	SimulationTimeSec   = "simulation_sim_time_sec"
	TargetHeadingDeg    = "target_heading_deg"
	TargetAltitudeFt    = "target_altitude_ft"
	DeltaHeading        = "delta_heading"
	DeltaAltitude       = "delta_altitude"
	HeadingCheckTime    = "heading_check_time"
)

// NewDefaultCatalog builds the catalog of aircraft properties: the engine
// properties the entities read and write, unit-converting velocity views,
// and the task-level derived properties with their recompute hooks.
func NewDefaultCatalog() *Catalog {
	c := New()
	inf := math.Inf(1)

	// Initial-condition inputs.
	c.Register(Property{Key: ICLongGcDeg, Name: "ic/long-gc-deg", Min: -180, Max: 180, Access: ReadWrite})
	c.Register(Property{Key: ICLatGeodDeg, Name: "ic/lat-geod-deg", Min: -90, Max: 90, Access: ReadWrite})
	c.Register(Property{Key: ICHSlFt, Name: "ic/h-sl-ft", Min: -1400, Max: 85000, Access: ReadWrite})
	c.Register(Property{Key: ICPsiTrueDeg, Name: "ic/psi-true-deg", Min: 0, Max: 360, Access: ReadWrite})
	c.Register(Property{Key: ICUFps, Name: "ic/u-fps", Min: -2200, Max: 2200, Access: ReadWrite})
	c.Register(Property{Key: ICVFps, Name: "ic/v-fps", Min: -2200, Max: 2200, Access: ReadWrite})
	c.Register(Property{Key: ICWFps, Name: "ic/w-fps", Min: -2200, Max: 2200, Access: ReadWrite})
	c.Register(Property{Key: ICPRadSec, Name: "ic/p-rad_sec", Min: -2 * math.Pi, Max: 2 * math.Pi, Access: ReadWrite})
	c.Register(Property{Key: ICQRadSec, Name: "ic/q-rad_sec", Min: -2 * math.Pi, Max: 2 * math.Pi, Access: ReadWrite})
	c.Register(Property{Key: ICRRadSec, Name: "ic/r-rad_sec", Min: -2 * math.Pi, Max: 2 * math.Pi, Access: ReadWrite})
	c.Register(Property{Key: ICRocFpm, Name: "ic/roc-fpm", Min: -inf, Max: inf, Access: ReadWrite})
	c.Register(Property{Key: ICTerrainElevFt, Name: "ic/terrain-elevation-ft", Min: -1400, Max: 85000, Access: ReadWrite})

	// Engine outputs.
	c.Register(Property{Key: PositionLongGcDeg, Name: "position/long-gc-deg", Min: -180, Max: 180, Access: Read})
	c.Register(Property{Key: PositionLatGeodDeg, Name: "position/lat-geod-deg", Min: -90, Max: 90, Access: Read})
	c.Register(Property{Key: PositionHSlM, Name: "position/h-sl-meters", Min: -1400 * FtToM, Max: 85000 * FtToM, Access: Read})
	c.Register(Property{Key: AttitudeRollRad, Name: "attitude/roll-rad", Min: -math.Pi, Max: math.Pi, Access: Read})
	c.Register(Property{Key: AttitudePitchRad, Name: "attitude/pitch-rad", Min: -math.Pi / 2, Max: math.Pi / 2, Access: Read})
	c.Register(Property{Key: AttitudeHeadingRad, Name: "attitude/heading-true-rad", Min: 0, Max: 2 * math.Pi, Access: Read})
	c.Register(Property{Key: AccelPilotXNorm, Name: "accelerations/n-pilot-x-norm", Min: -inf, Max: inf, Access: Read})
	c.Register(Property{Key: AccelPilotYNorm, Name: "accelerations/n-pilot-y-norm", Min: -inf, Max: inf, Access: Read})
	c.Register(Property{Key: AccelPilotZNorm, Name: "accelerations/n-pilot-z-norm", Min: -inf, Max: inf, Access: Read})
	c.Register(Property{Key: SimulationTimeSec, Name: "simulation/sim-time-sec", Min: 0, Max: inf, Access: Read})

	// Metric velocity views. The engine stores feet per second; these read
	// as live derived values so callers never see a stale conversion.
	c.Register(derivedVelocity(VelocityNorthMps, "velocities/v-north-mps", "velocities/v-north-fps"))
	c.Register(derivedVelocity(VelocityEastMps, "velocities/v-east-mps", "velocities/v-east-fps"))
	c.Register(derivedVelocity(VelocityDownMps, "velocities/v-down-mps", "velocities/v-down-fps"))

	// Control commands. Clamping these is routine, not an error.
	c.Register(Property{Key: FcsAileronCmdNorm, Name: "fcs/aileron-cmd-norm", Min: -1, Max: 1, Access: ReadWrite})
	c.Register(Property{Key: FcsElevatorCmdNorm, Name: "fcs/elevator-cmd-norm", Min: -1, Max: 1, Access: ReadWrite})
	c.Register(Property{Key: FcsRudderCmdNorm, Name: "fcs/rudder-cmd-norm", Min: -1, Max: 1, Access: ReadWrite})
	c.Register(Property{Key: FcsThrottleCmdNorm, Name: "fcs/throttle-cmd-norm", Min: 0, Max: 1, Access: ReadWrite})

	// Task targets. Writing a target recomputes the matching error term.
	c.Register(Property{
		Key: TargetHeadingDeg, Name: "tasks/target-heading-deg",
		Min: 0, Max: 360, Access: ReadWrite,
		Update: updateDeltaHeading,
	})
	c.Register(Property{
		Key: TargetAltitudeFt, Name: "tasks/target-altitude-ft",
		Min: 0, Max: 85000, Access: ReadWrite,
		Update: updateDeltaAltitude,
	})
	c.Register(Property{Key: HeadingCheckTime, Name: "tasks/heading-check-time", Min: 0, Max: inf, Access: ReadWrite})

	// Derived error terms. Reading one recomputes it from the live state.
	c.Register(Property{
		Key: DeltaHeading, Name: "tasks/delta-heading",
		Min: -180, Max: 180, Access: Read,
		Update: updateDeltaHeading,
	})
	c.Register(Property{
		Key: DeltaAltitude, Name: "tasks/delta-altitude",
		Min: -inf, Max: inf, Access: Read,
		Update: updateDeltaAltitude,
	})

	return c
}

func derivedVelocity(key, name, fpsName string) Property {
	return Property{
		Key: key, Name: name,
		Min: -2200 * FpsToMs, Max: 2200 * FpsToMs,
		Access: Read,
		Update: func(store Store) {
			store.SetPropertyValue(name, store.GetPropertyValue(fpsName)*FpsToMs)
		},
	}
}

func updateDeltaHeading(store Store) {
	heading := store.GetPropertyValue("attitude/heading-true-rad") * 180 / math.Pi
	delta := store.GetPropertyValue("tasks/target-heading-deg") - heading
	// Wrap to (-180, 180].
	for delta > 180 {
		delta -= 360
	}
	for delta <= -180 {
		delta += 360
	}
	store.SetPropertyValue("tasks/delta-heading", delta)
}

func updateDeltaAltitude(store Store) {
	target := store.GetPropertyValue("tasks/target-altitude-ft") * FtToM
	store.SetPropertyValue("tasks/delta-altitude", target-store.GetPropertyValue("position/h-sl-meters"))
}
