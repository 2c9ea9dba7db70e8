package body

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/jiggle/config"
	"github.com/akmonengine/jiggle/mesh"
)

// Wobble is the whole-object impulse response. At rest the object
// floats on a sinusoidal idle animation; a hit layers damped
// spring-return physics on top until velocity and angular velocity
// both drop under the settle threshold.
type Wobble struct {
	// Velocity and AngularVelocity drive the physics layer.
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	// Offset and RotationOffset are the physics displacement from the
	// rest pose. RotationOffset is per-axis Euler, which is fine for
	// the small angles wobble produces.
	Offset         mgl64.Vec3
	RotationOffset mgl64.Vec3

	wobbling bool
	// idleClock advances unconditionally, so the floating motion keeps
	// its phase through a wobble episode.
	idleClock float64

	rng    *rand.Rand
	params config.WobbleParams
}

// NewWobble creates a controller at rest. The seed fixes the random
// angular kick for deterministic tests.
func NewWobble(params config.WobbleParams, seed int64) *Wobble {
	return &Wobble{
		rng:    rand.New(rand.NewSource(seed)),
		params: params,
	}
}

// Wobbling reports whether the physics layer is live.
func (w *Wobble) Wobbling() bool {
	return w.wobbling
}

// IdleClock returns the idle animation time, mostly for tests.
func (w *Wobble) IdleClock() float64 {
	return w.idleClock
}

// Hit applies an impulse along dir scaled by the pointer-derived
// magnitude, capped, plus a random angular kick scaled the same way.
func (w *Wobble) Hit(dir mgl64.Vec3, magnitude float64) {
	impulse := magnitude * w.params.ImpulseScale
	if impulse > w.params.MaxImpulse {
		impulse = w.params.MaxImpulse
	}

	kick := mesh.SafeNormalize(dir, mgl64.Vec3{0, 0, -1}).Mul(impulse)
	w.Velocity = w.Velocity.Add(kick)

	spin := impulse * w.params.AngularScale
	w.AngularVelocity = mgl64.Vec3{
		(w.rng.Float64()*2 - 1) * spin,
		(w.rng.Float64()*2 - 1) * spin,
		(w.rng.Float64()*2 - 1) * spin,
	}

	w.wobbling = true
}

// Update advances the controller by dt seconds. The idle clock always
// runs; the physics layer only while wobbling.
func (w *Wobble) Update(dt float64) {
	w.idleClock += dt

	if !w.wobbling {
		return
	}

	w.Offset = w.Offset.Add(w.Velocity.Mul(dt))
	w.RotationOffset = w.RotationOffset.Add(w.AngularVelocity.Mul(dt))

	// Blend damping and rotation return harder as the body nears the
	// settle threshold, so the flip back to idle never visibly snaps.
	speed := w.Velocity.Len() + w.AngularVelocity.Len()
	settle := w.params.SettleThreshold
	blend := 0.0
	if speed < settle*4 {
		blend = 1.0 - speed/(settle*4)
	}

	damping := w.params.Damping * (1.0 - 0.2*blend)
	angularDamping := w.params.AngularDamping * (1.0 - 0.2*blend)

	w.Velocity = w.Velocity.Mul(damping)
	w.AngularVelocity = w.AngularVelocity.Mul(angularDamping)

	// Linear restore toward zero offset.
	w.Velocity = w.Velocity.Add(w.Offset.Mul(-w.params.ReturnForce * dt))

	rotReturn := w.params.RotationReturn * (1.0 + 2.0*blend)
	w.RotationOffset = w.RotationOffset.Mul(math.Exp(-rotReturn * dt))

	if w.Velocity.Len() < settle && w.AngularVelocity.Len() < settle {
		w.Velocity = mgl64.Vec3{}
		w.AngularVelocity = mgl64.Vec3{}
		w.Offset = mgl64.Vec3{}
		w.RotationOffset = mgl64.Vec3{}
		w.wobbling = false
	}
}

// Pose returns the composed position and rotation offsets: idle
// contribution plus physics offset, per axis. The caller adds its own
// rest pose.
func (w *Wobble) Pose() (position, rotation mgl64.Vec3) {
	idleY := math.Sin(w.idleClock*w.params.IdleSpeed) * w.params.IdleAmplitude
	idleTilt := math.Sin(w.idleClock*w.params.IdleSpeed*0.8) * w.params.IdleTiltAmp

	position = w.Offset.Add(mgl64.Vec3{0, idleY, 0})
	rotation = w.RotationOffset.Add(mgl64.Vec3{0, 0, idleTilt})
	return position, rotation
}

// Reset zeroes the physics layer. The idle clock keeps its phase.
func (w *Wobble) Reset() {
	w.Velocity = mgl64.Vec3{}
	w.AngularVelocity = mgl64.Vec3{}
	w.Offset = mgl64.Vec3{}
	w.RotationOffset = mgl64.Vec3{}
	w.wobbling = false
}
