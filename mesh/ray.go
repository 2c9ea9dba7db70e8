package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a world-space ray with a normalized direction.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// Hit describes a ray intersection with a surface.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Surface  *Surface
	Distance float64
}

// IntersectAABB tests the ray against a box with the slab method.
// Returns the entry distance, or the exit distance when the origin is
// inside the box.
func (r Ray) IntersectAABB(box AABB) (t float64, hit bool) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for i := 0; i < 3; i++ {
		if math.Abs(r.Dir[i]) < 1e-12 {
			// Parallel to the slab; miss unless the origin is inside it.
			if r.Origin[i] < box.Min[i] || r.Origin[i] > box.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / r.Dir[i]
		t1 := (box.Min[i] - r.Origin[i]) * inv
		t2 := (box.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 {
		return 0, false
	}
	if tMin < 0 {
		return tMax, true
	}
	return tMin, true
}

// IntersectSphere tests the ray against a sphere, returning the
// nearest positive intersection distance.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (t float64, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t = -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectTriangle runs Moeller-Trumbore against a two-sided triangle.
func (r Ray) IntersectTriangle(a, b, c mgl64.Vec3) (t float64, hit bool) {
	const epsilon = 1e-12

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false
	}

	inv := 1.0 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * inv
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// Pick finds the nearest intersection of the ray with any visible
// surface, testing the current (possibly deformed) vertex positions.
// Surfaces without an index buffer fall back to their bounding sphere.
func Pick(r Ray, surfaces []*Surface) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false

	for _, s := range surfaces {
		if !s.Visible {
			continue
		}

		if _, ok := r.IntersectAABB(s.Bounds().Transformed(s.Transform)); !ok {
			continue
		}

		if len(s.Indices) >= 3 {
			if h, ok := pickTriangles(r, s); ok && h.Distance < best.Distance {
				best = h
				found = true
			}
			continue
		}

		center, radius := s.BoundingSphere()
		worldCenter := s.Transform.Point(center)
		worldRadius := radius * s.Transform.MaxScale()
		if t, ok := r.IntersectSphere(worldCenter, worldRadius); ok && t < best.Distance {
			point := r.Origin.Add(r.Dir.Mul(t))
			best = Hit{
				Point:    point,
				Normal:   SafeNormalize(point.Sub(worldCenter), mgl64.Vec3{0, 1, 0}),
				Surface:  s,
				Distance: t,
			}
			found = true
		}
	}

	return best, found
}

func pickTriangles(r Ray, s *Surface) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false
	n := uint32(len(s.Positions))

	for i := 0; i+2 < len(s.Indices); i += 3 {
		ia, ib, ic := s.Indices[i], s.Indices[i+1], s.Indices[i+2]
		if ia >= n || ib >= n || ic >= n {
			continue
		}
		a := s.Transform.Point(s.Positions[ia])
		b := s.Transform.Point(s.Positions[ib])
		c := s.Transform.Point(s.Positions[ic])

		if t, ok := r.IntersectTriangle(a, b, c); ok && t < best.Distance {
			normal := SafeNormalize(b.Sub(a).Cross(c.Sub(a)), mgl64.Vec3{0, 1, 0})
			// Flip toward the ray origin so smack impulses always push
			// into the surface.
			if normal.Dot(r.Dir) > 0 {
				normal = normal.Mul(-1)
			}
			best = Hit{
				Point:    r.Origin.Add(r.Dir.Mul(t)),
				Normal:   normal,
				Surface:  s,
				Distance: t,
			}
			found = true
		}
	}

	return best, found
}
