package mesh

import "github.com/go-gl/mathgl/mgl64"

// Transform places a surface in world space.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Point transforms a local-space point to world space.
func (t Transform) Point(local mgl64.Vec3) mgl64.Vec3 {
	scaled := mgl64.Vec3{
		local.X() * t.Scale.X(),
		local.Y() * t.Scale.Y(),
		local.Z() * t.Scale.Z(),
	}
	return t.Rotation.Rotate(scaled).Add(t.Position)
}

// InversePoint transforms a world-space point to local space.
func (t Transform) InversePoint(world mgl64.Vec3) mgl64.Vec3 {
	p := t.Rotation.Inverse().Rotate(world.Sub(t.Position))
	return mgl64.Vec3{
		safeDiv(p.X(), t.Scale.X()),
		safeDiv(p.Y(), t.Scale.Y()),
		safeDiv(p.Z(), t.Scale.Z()),
	}
}

// InverseDir transforms a world-space direction to local space,
// ignoring position and scale.
func (t Transform) InverseDir(world mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Inverse().Rotate(world)
}

// MaxScale returns the largest scale component, used to inflate
// bounding radii conservatively.
func (t Transform) MaxScale() float64 {
	m := t.Scale.X()
	if t.Scale.Y() > m {
		m = t.Scale.Y()
	}
	if t.Scale.Z() > m {
		m = t.Scale.Z()
	}
	return m
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
