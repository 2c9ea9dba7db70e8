// Package mesh provides the deformable surface representation the
// simulation works on: a private vertex buffer with rest positions,
// optional triangle indices, seam-vertex grouping, neighbor graphs
// and ray picking.
package mesh

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNoGeometry is returned when a surface is built without vertex data.
var ErrNoGeometry = errors.New("mesh: surface has no geometry")

// Surface is one deformable renderable. It owns a private copy of its
// geometry: mutating Positions never touches the buffers it was built
// from, and Rest keeps the undeformed shape for the springs to pull
// back to.
type Surface struct {
	Name string

	// Positions is the working vertex buffer, mutated by the
	// simulation every active tick.
	Positions []mgl64.Vec3
	// Rest holds the original vertex positions. Never written after
	// construction.
	Rest []mgl64.Vec3
	// Normals are recomputed whenever Positions changes.
	Normals []mgl64.Vec3
	// Indices is the optional triangle list, triples of vertex indices.
	Indices []uint32

	Transform Transform
	Visible   bool
	// Dirty is set when Positions changed since the last render.
	Dirty bool

	bounds      AABB
	boundCenter mgl64.Vec3
	boundRadius float64
}

// NewSurface builds a surface from a vertex position slice and an
// optional triangle index slice. Both are deep-copied. A trailing
// partial triple in indices is dropped.
func NewSurface(name string, positions []mgl64.Vec3, indices []uint32) (*Surface, error) {
	if len(positions) == 0 {
		return nil, ErrNoGeometry
	}

	s := &Surface{
		Name:      name,
		Positions: make([]mgl64.Vec3, len(positions)),
		Rest:      make([]mgl64.Vec3, len(positions)),
		Normals:   make([]mgl64.Vec3, len(positions)),
		Transform: NewTransform(),
		Visible:   true,
	}
	copy(s.Positions, positions)
	copy(s.Rest, positions)

	if n := len(indices) - len(indices)%3; n > 0 {
		s.Indices = make([]uint32, n)
		copy(s.Indices, indices[:n])
	}

	s.RecomputeNormals()
	s.refreshBounds()

	return s, nil
}

// VertexCount returns the number of vertices.
func (s *Surface) VertexCount() int {
	return len(s.Positions)
}

// ResetToRest snaps every vertex back to its rest position and
// refreshes normals.
func (s *Surface) ResetToRest() {
	copy(s.Positions, s.Rest)
	s.RecomputeNormals()
	s.Dirty = true
}

// WorldPosition returns the current world-space position of vertex i.
func (s *Surface) WorldPosition(i int) mgl64.Vec3 {
	return s.Transform.Point(s.Positions[i])
}

// Bounds returns the local-space bounding box of the rest shape.
func (s *Surface) Bounds() AABB {
	return s.bounds
}

// BoundingSphere returns the local-space bounding sphere of the rest
// shape, used as the pick fallback for surfaces without indices.
func (s *Surface) BoundingSphere() (center mgl64.Vec3, radius float64) {
	return s.boundCenter, s.boundRadius
}

// RecomputeNormals rebuilds per-vertex normals from the current
// positions, area-weighted over the triangles sharing each vertex.
// Without an index buffer the normal falls back to the direction away
// from the rest centroid, which is right for the convex blobs this
// toy deals in.
func (s *Surface) RecomputeNormals() {
	for i := range s.Normals {
		s.Normals[i] = mgl64.Vec3{}
	}

	if len(s.Indices) >= 3 {
		n := uint32(len(s.Positions))
		for i := 0; i+2 < len(s.Indices); i += 3 {
			a, b, c := s.Indices[i], s.Indices[i+1], s.Indices[i+2]
			if a >= n || b >= n || c >= n {
				continue
			}
			e1 := s.Positions[b].Sub(s.Positions[a])
			e2 := s.Positions[c].Sub(s.Positions[a])
			// Cross product magnitude carries the triangle area, so
			// larger faces weigh more. Degenerate faces contribute zero.
			face := e1.Cross(e2)
			s.Normals[a] = s.Normals[a].Add(face)
			s.Normals[b] = s.Normals[b].Add(face)
			s.Normals[c] = s.Normals[c].Add(face)
		}
		for i := range s.Normals {
			s.Normals[i] = SafeNormalize(s.Normals[i], mgl64.Vec3{0, 1, 0})
		}
		return
	}

	centroid := centroidOf(s.Rest)
	for i := range s.Normals {
		s.Normals[i] = SafeNormalize(s.Positions[i].Sub(centroid), mgl64.Vec3{0, 1, 0})
	}
}

func (s *Surface) refreshBounds() {
	s.bounds = AABBFromPoints(s.Rest)
	s.boundCenter = s.bounds.Center()

	radius := 0.0
	for _, p := range s.Rest {
		if d := p.Sub(s.boundCenter).Len(); d > radius {
			radius = d
		}
	}
	s.boundRadius = radius
}

// SafeNormalize normalizes v, or returns fallback when v is too short
// to carry a direction. Keeps NaN out of the simulation.
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	const minLen = 1e-12
	if l := v.Len(); l > minLen {
		return v.Mul(1.0 / l)
	}
	return fallback
}

func centroidOf(points []mgl64.Vec3) mgl64.Vec3 {
	if len(points) == 0 {
		return mgl64.Vec3{}
	}
	var sum mgl64.Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}
