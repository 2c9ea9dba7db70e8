package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewUVSphere builds a latitude/longitude sphere surface. The seam
// column is duplicated (first and last column share positions but not
// indices), the same layout model importers produce, so the sphere
// exercises the vertex-group machinery.
func NewUVSphere(name string, radius float64, segments, rings int) *Surface {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	cols := segments + 1
	positions := make([]mgl64.Vec3, 0, (rings+1)*cols)

	for row := 0; row <= rings; row++ {
		phi := math.Pi * float64(row) / float64(rings)
		y := math.Cos(phi)
		ringRadius := math.Sin(phi)

		for col := 0; col <= segments; col++ {
			theta := 2 * math.Pi * float64(col) / float64(segments)
			positions = append(positions, mgl64.Vec3{
				radius * ringRadius * math.Cos(theta),
				radius * y,
				radius * ringRadius * math.Sin(theta),
			})
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	for row := 0; row < rings; row++ {
		for col := 0; col < segments; col++ {
			i0 := uint32(row*cols + col)
			i1 := i0 + 1
			i2 := i0 + uint32(cols)
			i3 := i2 + 1

			if row > 0 {
				indices = append(indices, i0, i2, i1)
			}
			if row < rings-1 {
				indices = append(indices, i1, i2, i3)
			}
		}
	}

	// Construction cannot fail: positions is never empty here.
	s, _ := NewSurface(name, positions, indices)
	return s
}
