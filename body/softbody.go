// Package body holds the per-object motion controllers: the soft-body
// jiggle simulator, the rigid wobble controller and the respawn
// animator.
package body

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/jiggle/config"
	"github.com/akmonengine/jiggle/mesh"
)

// SoftBody runs mass-spring deformation over one surface's vertices.
// It is either idle (no deformation, updates skipped) or active (an
// impulse landed and a countdown timer is running); when the timer
// expires every vertex snaps back to rest.
//
// Coincident seam vertices are grouped: integration runs once per
// group representative and the result fans out to all members, so
// duplicated UV-seam vertices never tear apart and the integration
// cost is paid once per physical vertex.
type SoftBody struct {
	surface   *mesh.Surface
	groups    []mesh.Group
	neighbors [][]int

	velocities []mgl64.Vec3
	forces     []mgl64.Vec3

	active bool
	timer  float64

	params config.SoftBodyParams
}

// NewSoftBody attaches a simulator to a surface. Surfaces without
// geometry are a caller precondition violation; the constructor
// reports ErrNoGeometry so the caller can skip jiggle and keep the
// object wobble-only.
func NewSoftBody(s *mesh.Surface, params config.SoftBodyParams) (*SoftBody, error) {
	if s == nil || s.VertexCount() == 0 {
		return nil, mesh.ErrNoGeometry
	}

	var neighbors [][]int
	if len(s.Indices) >= 3 {
		neighbors = mesh.BuildNeighbors(s.VertexCount(), s.Indices)
	} else {
		neighbors = mesh.BuildNeighborsByProximity(s.Rest, params.ProximityRadius)
	}

	return &SoftBody{
		surface:    s,
		groups:     mesh.BuildGroups(s.Rest, params.GroupEpsilon),
		neighbors:  neighbors,
		velocities: make([]mgl64.Vec3, s.VertexCount()),
		forces:     make([]mgl64.Vec3, s.VertexCount()),
		params:     params,
	}, nil
}

// Surface returns the surface this simulator deforms.
func (b *SoftBody) Surface() *mesh.Surface {
	return b.surface
}

// Active reports whether the simulator is integrating.
func (b *SoftBody) Active() bool {
	return b.active
}

// Groups exposes the vertex-group partition.
func (b *SoftBody) Groups() []mesh.Group {
	return b.groups
}

// Velocity returns the current velocity of vertex i.
func (b *SoftBody) Velocity(i int) mgl64.Vec3 {
	return b.velocities[i]
}

// ApplyImpulse kicks every vertex within the impact radius of the
// world-space point, with cubic falloff toward the rim. Re-triggering
// while active rearms the countdown timer instead of stacking.
func (b *SoftBody) ApplyImpulse(worldPoint, worldDir mgl64.Vec3, force float64) {
	localPoint := b.surface.Transform.InversePoint(worldPoint)
	localDir := mesh.SafeNormalize(b.surface.Transform.InverseDir(worldDir), mgl64.Vec3{0, 0, -1})

	radius := b.params.ImpactRadius

	// Bounds are from the rest shape, so the margin covers both the
	// impact radius and how far a deformed vertex can sit from rest.
	reach := radius + b.params.MaxDisplacement
	if !b.surface.Bounds().Expanded(reach).ContainsPoint(localPoint) {
		return
	}
	for i, pos := range b.surface.Positions {
		d := pos.Sub(localPoint).Len()
		if d >= radius {
			continue
		}
		falloff := 1.0 - d/radius
		falloff = falloff * falloff * falloff

		v := b.velocities[i].Add(localDir.Mul(force * falloff))
		b.velocities[i] = clampLen(v, b.params.MaxVelocity)
	}

	b.active = true
	b.timer = b.params.ActiveDuration
}

// Update advances the simulation by dt seconds. No-op while idle.
func (b *SoftBody) Update(dt float64) {
	if !b.active {
		return
	}

	b.timer -= dt
	if b.timer <= 0 {
		b.Reset()
		return
	}

	for i := range b.forces {
		b.forces[i] = mgl64.Vec3{}
	}

	// Spring restore toward rest.
	for i, pos := range b.surface.Positions {
		b.forces[i] = b.surface.Rest[i].Sub(pos).Mul(b.params.Stiffness)
	}

	// Neighbor pull spreads the dent outward as a wave. Isolated
	// vertices simply skip this term.
	for i, pos := range b.surface.Positions {
		if len(b.neighbors[i]) == 0 {
			continue
		}
		var pull mgl64.Vec3
		for _, j := range b.neighbors[i] {
			pull = pull.Add(b.surface.Positions[j].Sub(pos))
		}
		b.forces[i] = b.forces[i].Add(pull.Mul(b.params.Propagation))
	}

	norm := dt * b.params.FrameRate
	for _, g := range b.groups {
		b.integrateGroup(g, norm)
	}

	b.surface.Dirty = true
	b.surface.RecomputeNormals()
}

// integrateGroup advances one physical vertex and fans the result out
// to every coincident member.
func (b *SoftBody) integrateGroup(g mesh.Group, norm float64) {
	if len(g.Members) == 0 {
		return
	}

	var force mgl64.Vec3
	for _, m := range g.Members {
		force = force.Add(b.forces[m])
	}
	force = force.Mul(1.0 / float64(len(g.Members)))

	rep := g.Representative
	accel := force.Mul(1.0 / b.params.Mass)

	v := b.velocities[rep].Add(accel.Mul(norm))
	v = v.Mul(b.params.Damping)
	v = clampLen(v, b.params.MaxVelocity)

	pos := b.surface.Positions[rep].Add(v.Mul(norm))

	// Soft constraint: over-stretched vertices are pulled back to the
	// cap and lose half their speed, not hard-stopped.
	disp := pos.Sub(b.surface.Rest[rep])
	if disp.Len() > b.params.MaxDisplacement {
		disp = mesh.SafeNormalize(disp, mgl64.Vec3{0, 1, 0}).Mul(b.params.MaxDisplacement)
		pos = b.surface.Rest[rep].Add(disp)
		v = v.Mul(0.5)
	}

	// Members are coincident, so the identical position is correct for
	// all of them.
	for _, m := range g.Members {
		b.surface.Positions[m] = pos
		b.velocities[m] = v
	}
}

// Reset snaps all vertices to rest, zeroes velocities and goes idle.
func (b *SoftBody) Reset() {
	b.active = false
	b.timer = 0
	for i := range b.velocities {
		b.velocities[i] = mgl64.Vec3{}
	}
	b.surface.ResetToRest()
}

func clampLen(v mgl64.Vec3, maxLen float64) mgl64.Vec3 {
	if maxLen <= 0 {
		return v
	}
	if l := v.Len(); l > maxLen {
		return v.Mul(maxLen / l)
	}
	return v
}
