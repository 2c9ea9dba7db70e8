package jiggle

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/jiggle/config"
	"github.com/akmonengine/jiggle/mesh"
)

// Particle is one free fragment of an exploded surface.
type Particle struct {
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	Rotation        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Scale           float64
	Opacity         float64
}

// Burst samples surface vertices into free particles with an outward
// impulse and runs them under gravity and drag until the fall duration
// elapses, then signals completion exactly once.
type Burst struct {
	Particles []Particle

	elapsed    float64
	active     bool
	rng        *rand.Rand
	params     config.BurstParams
	onComplete func()
}

// NewBurst creates an idle burst engine.
func NewBurst(params config.BurstParams, seed int64) *Burst {
	return &Burst{
		rng:    rand.New(rand.NewSource(seed)),
		params: params,
	}
}

// SetOnComplete registers the completion callback, invoked once per
// burst when the fall duration elapses.
func (b *Burst) SetOnComplete(fn func()) {
	b.onComplete = fn
}

// Active reports whether a burst is in flight.
func (b *Burst) Active() bool {
	return b.active
}

// Elapsed returns seconds since the burst started.
func (b *Burst) Elapsed() float64 {
	return b.elapsed
}

// Start spawns one particle per sampled vertex across the given
// surfaces, at even stride, bounded by MaxParticles. Starting while a
// burst is already in flight is rejected so a double trigger can never
// tear down particle state twice.
func (b *Burst) Start(surfaces []*mesh.Surface) {
	if b.active {
		return
	}

	samples := sampleVertices(surfaces, b.params.MaxParticles)
	if len(samples) == 0 {
		// Nothing to explode; complete on the next update.
		b.active = true
		b.elapsed = b.params.FallDuration
		b.Particles = nil
		return
	}

	var centroid mgl64.Vec3
	for _, p := range samples {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1.0 / float64(len(samples)))

	b.Particles = make([]Particle, len(samples))
	for i, pos := range samples {
		outward := mesh.SafeNormalize(pos.Sub(centroid), mgl64.Vec3{0, 1, 0})
		jitter := mgl64.Vec3{
			(b.rng.Float64()*2 - 1) * b.params.Jitter,
			(b.rng.Float64()*2 - 1) * b.params.Jitter,
			(b.rng.Float64()*2 - 1) * b.params.Jitter,
		}
		dir := mesh.SafeNormalize(outward.Add(jitter), outward)
		force := b.params.MinForce + b.rng.Float64()*(b.params.MaxForce-b.params.MinForce)

		b.Particles[i] = Particle{
			Position: pos,
			Velocity: dir.Mul(force).Add(mgl64.Vec3{0, b.params.UpwardBias, 0}),
			AngularVelocity: mgl64.Vec3{
				(b.rng.Float64()*2 - 1) * 6.0,
				(b.rng.Float64()*2 - 1) * 6.0,
				(b.rng.Float64()*2 - 1) * 6.0,
			},
			Scale:   1.0,
			Opacity: 1.0,
		}
	}

	b.elapsed = 0
	b.active = true
}

// Update advances all particles by dt seconds.
func (b *Burst) Update(dt float64) {
	if !b.active {
		return
	}

	b.elapsed += dt
	if b.elapsed >= b.params.FallDuration {
		b.finish()
		return
	}

	// Horizontal drag factor once per frame, not per particle.
	drag := math.Exp(-b.params.Drag * dt)

	fadeStart := b.params.FallDuration - b.params.FadeWindow
	fade := 1.0
	if b.elapsed > fadeStart && b.params.FadeWindow > 0 {
		fade = 1.0 - (b.elapsed-fadeStart)/b.params.FadeWindow
		if fade < 0 {
			fade = 0
		}
	}

	for i := range b.Particles {
		p := &b.Particles[i]
		p.Velocity[1] -= b.params.Gravity * dt
		p.Velocity[0] *= drag
		p.Velocity[2] *= drag
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		p.Rotation = p.Rotation.Add(p.AngularVelocity.Mul(dt))
		p.Scale = fade
		p.Opacity = fade
	}
}

// Reset discards any in-flight particles and deactivates the burst
// without firing the completion callback, so a session reset can cut
// an explosion short cleanly.
func (b *Burst) Reset() {
	b.active = false
	b.elapsed = 0
	b.Particles = nil
}

func (b *Burst) finish() {
	b.active = false
	b.Particles = nil
	if b.onComplete != nil {
		b.onComplete()
	}
}

// sampleVertices collects up to maxCount world-space vertex positions
// across the visible surfaces, at even stride.
func sampleVertices(surfaces []*mesh.Surface, maxCount int) []mgl64.Vec3 {
	total := 0
	for _, s := range surfaces {
		if s.Visible {
			total += s.VertexCount()
		}
	}
	if total == 0 || maxCount <= 0 {
		return nil
	}

	// Ceiling division: a floor stride of 1 with truncation would keep
	// only the first maxCount vertices and leave the tail of the mesh
	// unsampled.
	stride := (total + maxCount - 1) / maxCount
	if stride < 1 {
		stride = 1
	}

	samples := make([]mgl64.Vec3, 0, total/stride+1)
	offset := 0
	for _, s := range surfaces {
		if !s.Visible {
			continue
		}
		for i := 0; i < s.VertexCount(); i++ {
			if (offset+i)%stride == 0 {
				samples = append(samples, s.WorldPosition(i))
			}
		}
		offset += s.VertexCount()
	}

	if len(samples) > maxCount {
		samples = samples[:maxCount]
	}
	return samples
}
