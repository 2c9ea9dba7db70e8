package body

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/jiggle/config"
	"github.com/akmonengine/jiggle/mesh"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

func testSoftParams() config.SoftBodyParams {
	return config.Default().SoftBody
}

func testSphereBody(t *testing.T, params config.SoftBodyParams) *SoftBody {
	t.Helper()
	s := mesh.NewUVSphere("s", 1.0, 16, 12)
	b, err := NewSoftBody(s, params)
	if err != nil {
		t.Fatalf("NewSoftBody() error: %v", err)
	}
	return b
}

// =============================================================================
// Construction Tests
// =============================================================================

func TestNewSoftBody_NoGeometry(t *testing.T) {
	_, err := NewSoftBody(nil, testSoftParams())
	if !errors.Is(err, mesh.ErrNoGeometry) {
		t.Fatalf("err = %v, want ErrNoGeometry", err)
	}
}

func TestNewSoftBody_ProximityFallback(t *testing.T) {
	// A surface without indices still gets a neighbor graph.
	positions := []mgl64.Vec3{{0, 0, 0}, {0.1, 0, 0}, {0.2, 0, 0}}
	s, err := mesh.NewSurface("cloud", positions, nil)
	if err != nil {
		t.Fatalf("NewSurface() error: %v", err)
	}

	b, err := NewSoftBody(s, testSoftParams())
	if err != nil {
		t.Fatalf("NewSoftBody() error: %v", err)
	}
	if b.Active() {
		t.Error("fresh soft body should be idle")
	}
}

// =============================================================================
// ApplyImpulse Tests
// =============================================================================

func TestSoftBody_ImpulseFalloff(t *testing.T) {
	params := testSoftParams()
	params.MaxVelocity = 100 // keep the cap out of this test
	b := testSphereBody(t, params)

	impact := mgl64.Vec3{0, 0, 1} // front pole of the unit sphere
	dir := mgl64.Vec3{0, 0, -1}
	force := 0.05

	b.ApplyImpulse(impact, dir, force)

	if !b.Active() {
		t.Fatal("soft body should be active after an impulse")
	}

	surf := b.Surface()
	for i := range surf.Positions {
		d := surf.Positions[i].Sub(impact).Len()
		got := b.Velocity(i).Len()

		if d >= params.ImpactRadius {
			if got != 0 {
				t.Fatalf("vertex %d outside radius (d=%.3f) gained velocity %v", i, d, got)
			}
			continue
		}

		falloff := 1 - d/params.ImpactRadius
		want := force * falloff * falloff * falloff
		if !almostEqual(got, want, 1e-12) {
			t.Fatalf("vertex %d (d=%.3f): |v| = %v, want %v", i, d, got, want)
		}
	}
}

func TestSoftBody_ImpulseVelocityCapped(t *testing.T) {
	params := testSoftParams()
	b := testSphereBody(t, params)

	b.ApplyImpulse(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}, 100)

	for i := 0; i < b.Surface().VertexCount(); i++ {
		if v := b.Velocity(i).Len(); v > params.MaxVelocity+1e-12 {
			t.Fatalf("vertex %d velocity %v exceeds cap %v", i, v, params.MaxVelocity)
		}
	}
}

func TestSoftBody_ImpulseOutOfReachIgnored(t *testing.T) {
	params := testSoftParams()
	b := testSphereBody(t, params)

	// Far beyond the bounds plus the impact radius: no vertex can be in
	// range, so the simulator must not even wake up.
	b.ApplyImpulse(mgl64.Vec3{50, 0, 0}, mgl64.Vec3{-1, 0, 0}, 0.06)

	if b.Active() {
		t.Error("out-of-reach impulse activated the simulator")
	}
	for i := 0; i < b.Surface().VertexCount(); i++ {
		if b.Velocity(i) != (mgl64.Vec3{}) {
			t.Fatalf("vertex %d gained velocity from an out-of-reach impulse", i)
		}
	}
}

func TestSoftBody_RetriggerRearmsTimer(t *testing.T) {
	params := testSoftParams()
	params.ActiveDuration = 1.0
	b := testSphereBody(t, params)

	b.ApplyImpulse(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}, 0.02)
	b.Update(0.9)
	if !b.Active() {
		t.Fatal("should still be active at 0.9s of 1.0s")
	}

	// Re-trigger rearms rather than stacking; another 0.9s must not
	// expire the timer.
	b.ApplyImpulse(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}, 0.02)
	b.Update(0.9)
	if !b.Active() {
		t.Error("re-trigger should have rearmed the countdown")
	}
}

// =============================================================================
// Update Tests
// =============================================================================

func TestSoftBody_IdleUpdateIsNoOp(t *testing.T) {
	b := testSphereBody(t, testSoftParams())
	before := make([]mgl64.Vec3, len(b.Surface().Positions))
	copy(before, b.Surface().Positions)

	b.Update(0.016)

	for i := range before {
		if b.Surface().Positions[i] != before[i] {
			t.Fatalf("idle update moved vertex %d", i)
		}
	}
}

func TestSoftBody_GroupsMoveInLockstep(t *testing.T) {
	b := testSphereBody(t, testSoftParams())
	b.ApplyImpulse(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}, 0.06)

	for tick := 0; tick < 30; tick++ {
		b.Update(1.0 / 60.0)

		for _, g := range b.Groups() {
			rep := g.Representative
			for _, m := range g.Members {
				if b.Surface().Positions[m] != b.Surface().Positions[rep] {
					t.Fatalf("tick %d: group member %d position %v != representative %v",
						tick, m, b.Surface().Positions[m], b.Surface().Positions[rep])
				}
				if b.Velocity(m) != b.Velocity(rep) {
					t.Fatalf("tick %d: group member %d velocity differs from representative", tick, m)
				}
			}
		}
	}
}

func TestSoftBody_DisplacementNeverExceedsCap(t *testing.T) {
	params := testSoftParams()
	params.MaxDisplacement = 0.2
	b := testSphereBody(t, params)

	// Hammer it repeatedly while integrating.
	for tick := 0; tick < 60; tick++ {
		b.ApplyImpulse(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}, 10)
		b.Update(1.0 / 60.0)

		surf := b.Surface()
		for i := range surf.Positions {
			disp := surf.Positions[i].Sub(surf.Rest[i]).Len()
			if disp > params.MaxDisplacement+1e-9 {
				t.Fatalf("tick %d: vertex %d displaced %v, cap %v", tick, i, disp, params.MaxDisplacement)
			}
		}
	}
}

func TestSoftBody_SnapsToRestOnExpiry(t *testing.T) {
	params := testSoftParams()
	params.ActiveDuration = 0.5
	b := testSphereBody(t, params)

	b.ApplyImpulse(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}, 0.06)
	for tick := 0; tick < 40; tick++ {
		b.Update(1.0 / 60.0)
	}

	if b.Active() {
		t.Fatal("soft body should be idle after the timer expired")
	}

	surf := b.Surface()
	for i := range surf.Positions {
		if surf.Positions[i] != surf.Rest[i] {
			t.Fatalf("vertex %d: position %v != rest %v after expiry", i, surf.Positions[i], surf.Rest[i])
		}
		if b.Velocity(i) != (mgl64.Vec3{}) {
			t.Fatalf("vertex %d: velocity %v != 0 after expiry", i, b.Velocity(i))
		}
	}
}

func TestSoftBody_DeformationPropagatesToNeighbors(t *testing.T) {
	params := testSoftParams()
	b := testSphereBody(t, params)

	impact := mgl64.Vec3{0, 0, 1}
	b.ApplyImpulse(impact, mgl64.Vec3{0, 0, -1}, 0.06)

	// Find a vertex just outside the impact radius; after several
	// ticks the wave should reach it.
	var probe = -1
	surf := b.Surface()
	for i := range surf.Rest {
		d := surf.Rest[i].Sub(impact).Len()
		if d > params.ImpactRadius && d < params.ImpactRadius*1.5 {
			probe = i
			break
		}
	}
	if probe == -1 {
		t.Skip("no probe vertex at this tessellation")
	}
	if b.Velocity(probe).Len() != 0 {
		t.Fatal("probe vertex should start at zero velocity")
	}

	for tick := 0; tick < 20; tick++ {
		b.Update(1.0 / 60.0)
	}

	if b.Velocity(probe).Len() == 0 && surf.Positions[probe] == surf.Rest[probe] {
		t.Error("deformation never propagated past the impact radius")
	}
}
