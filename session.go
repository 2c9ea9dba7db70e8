// Package jiggle is an interactive soft-body toy: pointer-driven
// smacks deform a surface with mass-spring jiggle, wobble the whole
// object, and accumulate rage until it explodes into particles and
// respawns.
//
// All state lives in a Session owned by the caller; nothing is module
// scoped, so independent sessions can run side by side and tests stay
// deterministic.
package jiggle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/jiggle/body"
	"github.com/akmonengine/jiggle/config"
	"github.com/akmonengine/jiggle/mesh"
)

const DEFAULT_WORKERS = 1

// MAX_FRAME_DELTA caps dt before any integration, so a backgrounded
// host or a debugger pause cannot blow up the springs.
const MAX_FRAME_DELTA = 0.1

// Phase is the session lifecycle state.
type Phase uint8

const (
	// PhaseNormal accepts hits and runs wobble, jiggle and rage decay.
	PhaseNormal Phase = iota
	// PhaseExploding runs the particle burst; hits are rejected.
	PhaseExploding
	// PhaseRespawning runs the re-entry animation; hits are rejected.
	PhaseRespawning
)

// Session owns one interactive object: its surfaces, the soft bodies
// deforming them, the rigid wobble state, the rage meter, the burst
// engine and the respawn animator. One Step per rendered frame.
type Session struct {
	Surfaces   []*mesh.Surface
	SoftBodies []*body.SoftBody

	Wobble  *body.Wobble
	Rage    *RageMeter
	Burst   *Burst
	Respawn *body.Respawn

	Events  Events
	Workers int

	phase  Phase
	tuning *config.Tuning
}

// NewSession builds a session from a tuning set. The seed drives the
// wobble and burst randomness.
func NewSession(tuning *config.Tuning, seed int64) *Session {
	if tuning == nil {
		tuning = config.Default()
	}

	s := &Session{
		Wobble:  body.NewWobble(tuning.Wobble, seed),
		Rage:    NewRageMeter(tuning.Rage),
		Burst:   NewBurst(tuning.Burst, seed+1),
		Respawn: body.NewRespawn(tuning.Respawn),
		Events:  NewEvents(),
		Workers: DEFAULT_WORKERS,
		tuning:  tuning,
	}
	s.Burst.SetOnComplete(s.beginRespawn)

	return s
}

// Tuning returns the active parameter set.
func (s *Session) Tuning() *config.Tuning {
	return s.tuning
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// AddSurface registers a surface and attaches a soft body to it.
// A surface that cannot carry jiggle (no geometry) still participates
// in wobble; the degradation is silent.
func (s *Session) AddSurface(surf *mesh.Surface) {
	if surf == nil {
		return
	}
	s.Surfaces = append(s.Surfaces, surf)

	if sb, err := body.NewSoftBody(surf, s.tuning.SoftBody); err == nil {
		s.SoftBodies = append(s.SoftBodies, sb)
	}
}

// Smack lands a pointer hit: wobble impulse, localized soft-body
// impulse at the impact point, rage accumulation. Intensity is the
// normalized pointer speed in [0, 1]. Hits are rejected outside the
// Normal phase.
func (s *Session) Smack(hit mesh.Hit, intensity float64) bool {
	if s.phase != PhaseNormal {
		return false
	}
	if intensity < 0 {
		intensity = 0
	}

	// Push into the surface along the inverted normal.
	dir := hit.Normal.Mul(-1)

	s.Wobble.Hit(dir, intensity)

	for _, sb := range s.SoftBodies {
		if sb.Surface() == hit.Surface {
			sb.ApplyImpulse(hit.Point, dir, intensity*s.tuning.SoftBody.ImpulseForce)
		}
	}

	level := s.Rage.Add(intensity)
	s.Events.emit(HitEvent{Point: hit.Point, Intensity: intensity})
	s.Events.emit(RageEvent{Level: level})

	if s.Rage.Full() {
		s.explode()
	}
	return true
}

// Step advances the session by dt seconds. dt is clamped before any
// integration.
func (s *Session) Step(dt float64) {
	if dt > MAX_FRAME_DELTA {
		dt = MAX_FRAME_DELTA
	}
	if dt <= 0 {
		s.Events.flush()
		return
	}

	switch s.phase {
	case PhaseNormal:
		task(s.Workers, s.SoftBodies, func(sb *body.SoftBody) {
			sb.Update(dt)
		})

		wasWobbling := s.Wobble.Wobbling()
		s.Wobble.Update(dt)
		if wasWobbling && !s.Wobble.Wobbling() {
			s.Events.emit(SettleEvent{})
		}

		s.Rage.Decay(dt)

	case PhaseExploding:
		// Wobble and jiggle are suspended entirely; only particles move.
		s.Burst.Update(dt)

	case PhaseRespawning:
		if s.Respawn.Update(dt) {
			s.phase = PhaseNormal
			s.Events.emit(RespawnDoneEvent{})
		}
	}

	s.Events.flush()
}

// Pose returns the composed object pose for rendering: position offset
// from rest, uniform scale and per-axis Euler rotation offset.
func (s *Session) Pose() (position mgl64.Vec3, scale float64, rotation mgl64.Vec3) {
	switch s.phase {
	case PhaseRespawning:
		return s.Respawn.Pose()
	case PhaseExploding:
		return mgl64.Vec3{}, 1, mgl64.Vec3{}
	default:
		p, r := s.Wobble.Pose()
		return p, 1, r
	}
}

// Reset restores the whole session to rest in the Normal phase.
func (s *Session) Reset() {
	for _, sb := range s.SoftBodies {
		sb.Reset()
	}
	for _, surf := range s.Surfaces {
		surf.Visible = true
	}
	s.Wobble.Reset()
	s.Rage.Reset()
	s.Burst.Reset()
	s.Respawn.Reset()
	s.phase = PhaseNormal
}

// explode transitions Normal -> Exploding. The phase guard makes a
// double trigger a no-op.
func (s *Session) explode() {
	if s.phase != PhaseNormal {
		return
	}

	s.Rage.Reset()
	s.phase = PhaseExploding

	s.Burst.Start(s.Surfaces)
	for _, surf := range s.Surfaces {
		surf.Visible = false
	}

	s.Events.emit(ExplodeEvent{})
}

// beginRespawn transitions Exploding -> Respawning once the burst
// reports completion.
func (s *Session) beginRespawn() {
	for _, surf := range s.Surfaces {
		surf.Visible = true
	}
	for _, sb := range s.SoftBodies {
		sb.Reset()
	}
	s.Wobble.Reset()

	s.Respawn.Start()
	s.phase = PhaseRespawning
	s.Events.emit(RespawnStartEvent{})
}
