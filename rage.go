package jiggle

import "github.com/akmonengine/jiggle/config"

// RageMeter accumulates hit energy toward the explosion threshold.
// The level is clamped to [0, threshold] at all times and decays
// linearly whenever no hit is pending.
type RageMeter struct {
	level  float64
	params config.RageParams
}

// NewRageMeter creates a meter at zero.
func NewRageMeter(params config.RageParams) *RageMeter {
	return &RageMeter{params: params}
}

// Level returns the current rage in [0, threshold].
func (r *RageMeter) Level() float64 {
	return r.level
}

// Add accumulates hit energy: a fixed base plus the pointer speed
// scaled by the velocity coefficient, clamped to the threshold.
// Returns the new level.
func (r *RageMeter) Add(pointerSpeed float64) float64 {
	r.level += r.params.HitBase + pointerSpeed*r.params.VelocityScale
	if r.level > r.params.Threshold {
		r.level = r.params.Threshold
	}
	if r.level < 0 {
		r.level = 0
	}
	return r.level
}

// Decay bleeds rage off linearly over dt seconds.
func (r *RageMeter) Decay(dt float64) {
	r.level -= r.params.DecayPerSec * dt
	if r.level < 0 {
		r.level = 0
	}
}

// Full reports whether the meter reached the explosion threshold.
func (r *RageMeter) Full() bool {
	return r.level >= r.params.Threshold
}

// Reset drops the meter to zero, done immediately when an explosion
// triggers.
func (r *RageMeter) Reset() {
	r.level = 0
}
