package jiggle

import (
	"testing"

	"github.com/akmonengine/jiggle/config"
	"github.com/akmonengine/jiggle/mesh"
)

func testBurstParams() config.BurstParams {
	return config.Default().Burst
}

// =============================================================================
// Burst Start Tests
// =============================================================================

func TestBurst_OneParticlePerSample(t *testing.T) {
	params := testBurstParams()
	params.MaxParticles = 1000 // stride 1: every vertex sampled
	b := NewBurst(params, 1)

	sphere := mesh.NewUVSphere("s", 1.0, 8, 6)
	b.Start([]*mesh.Surface{sphere})

	if len(b.Particles) != sphere.VertexCount() {
		t.Errorf("spawned %d particles, want %d (one per sample)", len(b.Particles), sphere.VertexCount())
	}
	if !b.Active() {
		t.Error("burst should be active after start")
	}
}

func TestBurst_BoundedByMaxParticles(t *testing.T) {
	params := testBurstParams()
	params.MaxParticles = 50
	b := NewBurst(params, 1)

	sphere := mesh.NewUVSphere("s", 1.0, 20, 16)
	b.Start([]*mesh.Surface{sphere})

	if len(b.Particles) > params.MaxParticles {
		t.Errorf("spawned %d particles, cap is %d", len(b.Particles), params.MaxParticles)
	}
	if len(b.Particles) == 0 {
		t.Error("no particles spawned")
	}
}

func TestBurst_SamplesSpanWholeMesh(t *testing.T) {
	params := testBurstParams()
	params.MaxParticles = 300
	b := NewBurst(params, 1)

	// 551 vertices, between the cap and twice the cap: the stride must
	// still cover the full mesh instead of truncating to its start.
	sphere := mesh.NewUVSphere("s", 1.0, 28, 18)
	if n := sphere.VertexCount(); n <= params.MaxParticles || n >= 2*params.MaxParticles {
		t.Fatalf("tessellation gives %d vertices, need (%d, %d)", n, params.MaxParticles, 2*params.MaxParticles)
	}

	b.Start([]*mesh.Surface{sphere})

	if len(b.Particles) > params.MaxParticles {
		t.Fatalf("spawned %d particles, cap is %d", len(b.Particles), params.MaxParticles)
	}

	minY, maxY := b.Particles[0].Position.Y(), b.Particles[0].Position.Y()
	for i := range b.Particles {
		y := b.Particles[i].Position.Y()
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	// Both poles of the unit sphere must be represented.
	if minY > -0.9 {
		t.Errorf("lowest sample at y=%v, bottom of the sphere unsampled", minY)
	}
	if maxY < 0.9 {
		t.Errorf("highest sample at y=%v, top of the sphere unsampled", maxY)
	}
}

func TestBurst_StartWhileActiveRejected(t *testing.T) {
	params := testBurstParams()
	b := NewBurst(params, 1)
	sphere := mesh.NewUVSphere("s", 1.0, 8, 6)

	b.Start([]*mesh.Surface{sphere})
	count := len(b.Particles)
	b.Update(0.5)
	elapsed := b.Elapsed()

	// A second start must neither respawn the batch nor rewind the
	// elapsed timer.
	b.Start([]*mesh.Surface{sphere})

	if len(b.Particles) != count {
		t.Errorf("second start changed particle count: %d -> %d", count, len(b.Particles))
	}
	if b.Elapsed() != elapsed {
		t.Errorf("second start rewound elapsed: %v -> %v", elapsed, b.Elapsed())
	}
}

func TestBurst_VelocitiesPointOutward(t *testing.T) {
	params := testBurstParams()
	params.UpwardBias = 0 // isolate the radial component
	b := NewBurst(params, 1)

	sphere := mesh.NewUVSphere("s", 1.0, 12, 8)
	b.Start([]*mesh.Surface{sphere})

	outward := 0
	for i := range b.Particles {
		p := &b.Particles[i]
		// Particle centroid is the origin for a centered sphere.
		if p.Velocity.Dot(p.Position) > 0 {
			outward++
		}
	}
	// Jitter may flip a few near-degenerate samples, not the bulk.
	if outward < len(b.Particles)*8/10 {
		t.Errorf("only %d/%d particles move outward", outward, len(b.Particles))
	}
}

// =============================================================================
// Burst Update Tests
// =============================================================================

func TestBurst_CompletionFiresExactlyOnce(t *testing.T) {
	params := testBurstParams()
	params.FallDuration = 1.0
	b := NewBurst(params, 1)

	completions := 0
	b.SetOnComplete(func() { completions++ })

	sphere := mesh.NewUVSphere("s", 1.0, 8, 6)
	b.Start([]*mesh.Surface{sphere})

	for tick := 0; tick < 120; tick++ {
		b.Update(1.0 / 60.0)
	}

	if completions != 1 {
		t.Errorf("completion fired %d times, want 1", completions)
	}
	if b.Active() {
		t.Error("burst still active after the fall duration")
	}
	if b.Particles != nil {
		t.Error("particles not released at completion")
	}
}

func TestBurst_GravityPullsParticlesDown(t *testing.T) {
	params := testBurstParams()
	params.UpwardBias = 0
	params.MinForce = 0
	params.MaxForce = 0
	b := NewBurst(params, 1)

	sphere := mesh.NewUVSphere("s", 1.0, 8, 6)
	b.Start([]*mesh.Surface{sphere})

	for tick := 0; tick < 30; tick++ {
		b.Update(1.0 / 60.0)
	}

	for i := range b.Particles {
		if v := b.Particles[i].Velocity.Y(); v >= 0 {
			t.Fatalf("particle %d has vertical velocity %v after half a second of gravity", i, v)
		}
	}
}

func TestBurst_FadeWindowShrinksParticles(t *testing.T) {
	params := testBurstParams()
	params.FallDuration = 1.0
	params.FadeWindow = 0.5
	b := NewBurst(params, 1)

	sphere := mesh.NewUVSphere("s", 1.0, 8, 6)
	b.Start([]*mesh.Surface{sphere})

	// Before the fade window: full scale.
	b.Update(0.4)
	if got := b.Particles[0].Scale; got != 1.0 {
		t.Errorf("scale = %v before fade window, want 1", got)
	}

	// Inside the fade window: shrinking.
	b.Update(0.35)
	if got := b.Particles[0].Scale; got >= 1.0 || got <= 0 {
		t.Errorf("scale = %v inside fade window, want (0, 1)", got)
	}
	if got := b.Particles[0].Opacity; got >= 1.0 || got <= 0 {
		t.Errorf("opacity = %v inside fade window, want (0, 1)", got)
	}
}

func TestBurst_EmptySurfacesCompleteImmediately(t *testing.T) {
	b := NewBurst(testBurstParams(), 1)

	completions := 0
	b.SetOnComplete(func() { completions++ })

	hidden := mesh.NewUVSphere("s", 1.0, 8, 6)
	hidden.Visible = false
	b.Start([]*mesh.Surface{hidden})
	b.Update(1.0 / 60.0)

	if completions != 1 {
		t.Errorf("completion fired %d times for an empty burst, want 1", completions)
	}
}

func TestBurst_ResetAllowsFreshStart(t *testing.T) {
	b := NewBurst(testBurstParams(), 1)

	completions := 0
	b.SetOnComplete(func() { completions++ })

	sphere := mesh.NewUVSphere("s", 1.0, 8, 6)
	b.Start([]*mesh.Surface{sphere})
	count := len(b.Particles)
	b.Update(0.5)

	b.Reset()

	if b.Active() {
		t.Error("burst still active after reset")
	}
	if b.Particles != nil {
		t.Error("particles not released by reset")
	}
	if b.Elapsed() != 0 {
		t.Errorf("elapsed = %v after reset, want 0", b.Elapsed())
	}
	if completions != 0 {
		t.Error("reset must not fire the completion callback")
	}

	// A new burst starts from scratch, not off the stale state.
	b.Start([]*mesh.Surface{sphere})
	if len(b.Particles) != count {
		t.Errorf("restart spawned %d particles, want %d", len(b.Particles), count)
	}
	if b.Elapsed() != 0 {
		t.Errorf("restart elapsed = %v, want 0", b.Elapsed())
	}
}

func TestBurst_InactiveUpdateNoOp(t *testing.T) {
	b := NewBurst(testBurstParams(), 1)
	b.Update(1.0)
	if b.Active() {
		t.Error("update must not activate an idle burst")
	}
}
