package jiggle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/jiggle/config"
)

// PointerTracker smooths pointer motion into a velocity estimate. Raw
// per-event deltas are too spiky to drive impulses directly, so the
// tracker blends each instantaneous velocity into a running estimate.
type PointerTracker struct {
	velocity mgl64.Vec2
	last     mgl64.Vec2
	hasLast  bool
	params   config.PointerParams
}

// NewPointerTracker creates a tracker with no history.
func NewPointerTracker(params config.PointerParams) *PointerTracker {
	return &PointerTracker{params: params}
}

// Track records a pointer move to (x, y) after dt seconds. The first
// sample only seeds the history.
func (p *PointerTracker) Track(x, y, dt float64) {
	pos := mgl64.Vec2{x, y}
	if !p.hasLast {
		p.last = pos
		p.hasLast = true
		return
	}

	if dt > 0 {
		instant := pos.Sub(p.last).Mul(1.0 / dt)
		blend := p.params.Smoothing
		p.velocity = p.velocity.Add(instant.Sub(p.velocity).Mul(blend))
	}
	p.last = pos
}

// Speed returns the smoothed pointer speed, capped at MaxSpeed.
func (p *PointerTracker) Speed() float64 {
	s := p.velocity.Len()
	if s > p.params.MaxSpeed {
		s = p.params.MaxSpeed
	}
	return s
}

// Intensity returns the speed normalized to [0, 1].
func (p *PointerTracker) Intensity() float64 {
	if p.params.MaxSpeed <= 0 {
		return 0
	}
	return p.Speed() / p.params.MaxSpeed
}

// Reset clears history, for example when the pointer leaves the window.
func (p *PointerTracker) Reset() {
	p.velocity = mgl64.Vec2{}
	p.hasLast = false
}
