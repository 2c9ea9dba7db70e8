package jiggle

import (
	"testing"

	"github.com/akmonengine/jiggle/config"
)

func testPointerParams() config.PointerParams {
	return config.PointerParams{Smoothing: 0.35, MaxSpeed: 50}
}

// =============================================================================
// PointerTracker Tests
// =============================================================================

func TestPointerTracker_FirstSampleSeedsOnly(t *testing.T) {
	p := NewPointerTracker(testPointerParams())

	p.Track(100, 100, 0.016)

	if p.Speed() != 0 {
		t.Errorf("Speed() = %v after a single sample, want 0", p.Speed())
	}
}

func TestPointerTracker_SmoothedVelocityRises(t *testing.T) {
	p := NewPointerTracker(testPointerParams())

	p.Track(0, 0, 0.016)
	p.Track(0.1, 0, 0.016)
	first := p.Speed()
	p.Track(0.2, 0, 0.016)
	second := p.Speed()

	if first <= 0 {
		t.Fatal("speed should be positive after movement")
	}
	if second <= first {
		t.Errorf("speed should approach the raw velocity: %v then %v", first, second)
	}
}

func TestPointerTracker_SpeedCapped(t *testing.T) {
	params := testPointerParams()
	p := NewPointerTracker(params)

	p.Track(0, 0, 0.001)
	for i := 0; i < 50; i++ {
		p.Track(float64(i)*1000, 0, 0.001)
	}

	if p.Speed() > params.MaxSpeed {
		t.Errorf("Speed() = %v exceeds cap %v", p.Speed(), params.MaxSpeed)
	}
	if p.Intensity() > 1.0 {
		t.Errorf("Intensity() = %v, want <= 1", p.Intensity())
	}
}

func TestPointerTracker_ZeroDtIgnored(t *testing.T) {
	p := NewPointerTracker(testPointerParams())

	p.Track(0, 0, 0.016)
	p.Track(100, 100, 0) // same-instant event must not divide by zero

	s := p.Speed()
	if s != s || s != 0 {
		t.Errorf("Speed() = %v after zero-dt sample, want 0", s)
	}
}

func TestPointerTracker_Reset(t *testing.T) {
	p := NewPointerTracker(testPointerParams())

	p.Track(0, 0, 0.016)
	p.Track(50, 0, 0.016)
	p.Reset()

	if p.Speed() != 0 {
		t.Errorf("Speed() = %v after reset, want 0", p.Speed())
	}

	// Next sample only reseeds history.
	p.Track(500, 500, 0.016)
	if p.Speed() != 0 {
		t.Errorf("Speed() = %v after reseed, want 0", p.Speed())
	}
}
