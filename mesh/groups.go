package mesh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Group is a set of vertex indices sharing one rest position. UV seams
// and hard edges duplicate vertices at the same point; the simulation
// integrates the representative once and fans the result out to all
// members so seams never tear apart.
type Group struct {
	// Representative is the lowest member index.
	Representative int
	// Members holds all vertex indices in ascending order, including
	// the representative.
	Members []int
}

// cellKey quantizes a position to a lattice cell, epsilon per axis.
type cellKey struct {
	X, Y, Z int64
}

func quantize(p mgl64.Vec3, epsilon float64) cellKey {
	return cellKey{
		X: int64(math.Round(p.X() / epsilon)),
		Y: int64(math.Round(p.Y() / epsilon)),
		Z: int64(math.Round(p.Z() / epsilon)),
	}
}

// BuildGroups partitions vertex indices into coincident groups. Two
// vertices land in the same group when they quantize to the same
// lattice cell of size epsilon per axis; this is a quantized test, not
// a Euclidean one, so points straddling a cell boundary may split.
// Groups of size one are normal. The result is deterministic for a
// given input: members ascend within each group and groups are ordered
// by representative.
func BuildGroups(positions []mgl64.Vec3, epsilon float64) []Group {
	if epsilon <= 0 {
		epsilon = 1e-6
	}

	cells := make(map[cellKey][]int, len(positions))
	for i, p := range positions {
		key := quantize(p, epsilon)
		cells[key] = append(cells[key], i)
	}

	groups := make([]Group, 0, len(cells))
	for _, members := range cells {
		// Indices were appended in ascending order, so members[0] is
		// already the lowest.
		groups = append(groups, Group{
			Representative: members[0],
			Members:        members,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Representative < groups[j].Representative
	})

	return groups
}
