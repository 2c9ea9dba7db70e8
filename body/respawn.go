package body

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/jiggle/config"
)

// Respawn drives the fixed-duration re-entry animation after an
// explosion: cubic ease-out from an off-screen, near-zero-scale pose
// back to rest, with a spin that decays to exactly zero.
type Respawn struct {
	elapsed float64
	active  bool
	params  config.RespawnParams
}

// NewRespawn creates an inactive animator.
func NewRespawn(params config.RespawnParams) *Respawn {
	return &Respawn{params: params}
}

// Start rewinds the animation and activates it.
func (r *Respawn) Start() {
	r.elapsed = 0
	r.active = true
}

// Active reports whether the animation is running.
func (r *Respawn) Active() bool {
	return r.active
}

// Update advances the animation and reports completion. Completion is
// reported exactly once; further calls are no-ops.
func (r *Respawn) Update(dt float64) (done bool) {
	if !r.active {
		return false
	}

	r.elapsed += dt
	if r.elapsed >= r.params.Duration {
		r.elapsed = r.params.Duration
		r.active = false
		return true
	}
	return false
}

// Reset abandons the animation without reporting completion.
func (r *Respawn) Reset() {
	r.elapsed = 0
	r.active = false
}

// Pose returns the animated position offset, scale and rotation for
// the current progress. At progress 1 the pose is exactly rest: zero
// offset, scale 1, zero rotation.
func (r *Respawn) Pose() (position mgl64.Vec3, scale float64, rotation mgl64.Vec3) {
	t := 1.0
	if r.params.Duration > 0 {
		t = r.elapsed / r.params.Duration
	}
	if t > 1 {
		t = 1
	}

	// Cubic ease-out.
	inv := 1.0 - t
	eased := 1.0 - inv*inv*inv

	start := mgl64.Vec3{r.params.StartOffset[0], r.params.StartOffset[1], r.params.StartOffset[2]}
	position = start.Mul(1.0 - eased)
	// Written so progress 1 yields exactly 1, no float residue.
	scale = 1.0 - (1.0-r.params.StartScale)*(1.0-eased)

	// Spin winds down quadratically so it terminates at exactly zero.
	spin := r.params.SpinSpeed * inv * inv * t
	if t >= 1 {
		spin = 0
	}
	rotation = mgl64.Vec3{0, spin, 0}

	return position, scale, rotation
}
