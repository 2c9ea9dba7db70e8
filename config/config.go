// Package config holds the tuning parameters for the jiggle toy.
//
// Almost every constant here was tuned by eye, not derived from a
// physical model. Treat the defaults as a starting point for visual
// feel, not as correctness guarantees.
package config

// Tuning groups all tunable parameters for one session.
type Tuning struct {
	SoftBody SoftBodyParams `yaml:"soft_body"`
	Wobble   WobbleParams   `yaml:"wobble"`
	Rage     RageParams     `yaml:"rage"`
	Burst    BurstParams    `yaml:"burst"`
	Respawn  RespawnParams  `yaml:"respawn"`
	Pointer  PointerParams  `yaml:"pointer"`
	Logging  LoggingParams  `yaml:"logging"`
}

// SoftBodyParams drives the mass-spring vertex deformation.
type SoftBodyParams struct {
	// Stiffness is the spring constant pulling a vertex back to rest.
	Stiffness float64 `yaml:"stiffness"`
	// Propagation scales the neighbor pull that spreads a dent outward.
	Propagation float64 `yaml:"propagation"`
	// Damping is a per-frame velocity multiplier, below 1.
	Damping float64 `yaml:"damping"`
	Mass    float64 `yaml:"mass"`
	// ImpactRadius bounds the region of vertices kicked by one smack.
	ImpactRadius float64 `yaml:"impact_radius"`
	// ImpulseForce converts hit intensity into vertex velocity at the
	// impact center.
	ImpulseForce    float64 `yaml:"impulse_force"`
	MaxVelocity     float64 `yaml:"max_velocity"`
	MaxDisplacement float64 `yaml:"max_displacement"`
	// ActiveDuration is how long integration keeps running after the
	// last impulse before the mesh snaps back to rest, in seconds.
	ActiveDuration float64 `yaml:"active_duration"`
	// FrameRate normalizes per-frame tuned forces against dt.
	FrameRate float64 `yaml:"frame_rate"`
	// GroupEpsilon is the per-axis quantization used to merge
	// coincident seam vertices into one group.
	GroupEpsilon float64 `yaml:"group_epsilon"`
	// ProximityRadius is the neighbor distance used by the fallback
	// graph when a surface carries no index buffer.
	ProximityRadius float64 `yaml:"proximity_radius"`
}

// WobbleParams drives the whole-object impulse response.
type WobbleParams struct {
	ImpulseScale    float64 `yaml:"impulse_scale"`
	MaxImpulse      float64 `yaml:"max_impulse"`
	AngularScale    float64 `yaml:"angular_scale"`
	Damping         float64 `yaml:"damping"`
	AngularDamping  float64 `yaml:"angular_damping"`
	ReturnForce     float64 `yaml:"return_force"`
	RotationReturn  float64 `yaml:"rotation_return"`
	SettleThreshold float64 `yaml:"settle_threshold"`
	IdleAmplitude   float64 `yaml:"idle_amplitude"`
	IdleSpeed       float64 `yaml:"idle_speed"`
	IdleTiltAmp     float64 `yaml:"idle_tilt_amp"`
}

// RageParams drives hit-energy accumulation and the explosion trigger.
type RageParams struct {
	HitBase       float64 `yaml:"hit_base"`
	VelocityScale float64 `yaml:"velocity_scale"`
	DecayPerSec   float64 `yaml:"decay_per_sec"`
	Threshold     float64 `yaml:"threshold"`
}

// BurstParams drives the particle explosion.
type BurstParams struct {
	MaxParticles int     `yaml:"max_particles"`
	MinForce     float64 `yaml:"min_force"`
	MaxForce     float64 `yaml:"max_force"`
	Jitter       float64 `yaml:"jitter"`
	UpwardBias   float64 `yaml:"upward_bias"`
	Gravity      float64 `yaml:"gravity"`
	// Drag is the horizontal air-drag coefficient, applied as
	// exp(-drag*dt) each frame.
	Drag         float64 `yaml:"drag"`
	FallDuration float64 `yaml:"fall_duration"`
	FadeWindow   float64 `yaml:"fade_window"`
}

// RespawnParams drives the re-entry animation after an explosion.
type RespawnParams struct {
	Duration  float64 `yaml:"duration"`
	SpinSpeed float64 `yaml:"spin_speed"`
	// StartOffset is where the object re-enters from, relative to rest.
	StartOffset [3]float64 `yaml:"start_offset"`
	StartScale  float64    `yaml:"start_scale"`
}

// PointerParams drives pointer-velocity smoothing.
type PointerParams struct {
	// Smoothing in (0,1]: 1 means no smoothing, lower values average
	// over more samples.
	Smoothing float64 `yaml:"smoothing"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

// LoggingParams holds logging settings.
type LoggingParams struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Tuning with the hand-tuned defaults.
func Default() *Tuning {
	return &Tuning{
		SoftBody: SoftBodyParams{
			Stiffness:       0.12,
			Propagation:     0.035,
			Damping:         0.92,
			Mass:            1.0,
			ImpactRadius:    0.65,
			ImpulseForce:    0.07,
			MaxVelocity:     0.08,
			MaxDisplacement: 0.45,
			ActiveDuration:  2.5,
			FrameRate:       60.0,
			GroupEpsilon:    1e-4,
			ProximityRadius: 0.35,
		},
		Wobble: WobbleParams{
			ImpulseScale:    0.9,
			MaxImpulse:      1.6,
			AngularScale:    2.2,
			Damping:         0.94,
			AngularDamping:  0.93,
			ReturnForce:     4.5,
			RotationReturn:  3.0,
			SettleThreshold: 0.012,
			IdleAmplitude:   0.08,
			IdleSpeed:       1.3,
			IdleTiltAmp:     0.05,
		},
		Rage: RageParams{
			HitBase:       4.0,
			VelocityScale: 6.0,
			DecayPerSec:   7.0,
			Threshold:     100.0,
		},
		Burst: BurstParams{
			MaxParticles: 300,
			MinForce:     2.4,
			MaxForce:     5.6,
			Jitter:       0.35,
			UpwardBias:   1.8,
			Gravity:      9.0,
			Drag:         0.8,
			FallDuration: 2.6,
			FadeWindow:   0.8,
		},
		Respawn: RespawnParams{
			Duration:    1.5,
			SpinSpeed:   9.0,
			StartOffset: [3]float64{0, -6.0, 0},
			StartScale:  0.02,
		},
		Pointer: PointerParams{
			Smoothing: 0.35,
			MaxSpeed:  50.0,
		},
		Logging: LoggingParams{
			Level:   "info",
			LogFile: "",
		},
	}
}
