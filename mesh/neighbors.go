package mesh

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// BuildNeighbors derives per-vertex adjacency from a triangle list:
// every triangle (a,b,c) contributes the symmetric edges a-b, a-c and
// b-c, deduplicated. Triples referencing out-of-range vertices are
// skipped. Each neighbor list is sorted ascending.
func BuildNeighbors(vertexCount int, indices []uint32) [][]int {
	sets := make([]map[int]struct{}, vertexCount)

	link := func(a, b int) {
		if a == b {
			return
		}
		if sets[a] == nil {
			sets[a] = make(map[int]struct{}, 6)
		}
		sets[a][b] = struct{}{}
	}

	n := uint32(vertexCount)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= n || b >= n || c >= n {
			continue
		}
		ia, ib, ic := int(a), int(b), int(c)
		link(ia, ib)
		link(ib, ia)
		link(ia, ic)
		link(ic, ia)
		link(ib, ic)
		link(ic, ib)
	}

	return flattenSets(sets)
}

// BuildNeighborsByProximity is the fallback for surfaces without an
// index buffer. It strides over candidate partners (stride ~ n/100,
// bounding the cost near O(n*100)) and connects pairs within maxDist.
// The result is approximate on purpose: it only has to carry enough
// edges for visually plausible wave propagation, not recover the true
// topology.
func BuildNeighborsByProximity(positions []mgl64.Vec3, maxDist float64) [][]int {
	n := len(positions)
	sets := make([]map[int]struct{}, n)

	stride := n / 100
	if stride < 1 {
		stride = 1
	}
	maxDistSq := maxDist * maxDist

	link := func(a, b int) {
		if sets[a] == nil {
			sets[a] = make(map[int]struct{}, 8)
		}
		sets[a][b] = struct{}{}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j += stride {
			d := positions[j].Sub(positions[i])
			if d.Dot(d) <= maxDistSq {
				link(i, j)
				link(j, i)
			}
		}
	}

	return flattenSets(sets)
}

func flattenSets(sets []map[int]struct{}) [][]int {
	out := make([][]int, len(sets))
	for i, set := range sets {
		if len(set) == 0 {
			continue
		}
		list := make([]int, 0, len(set))
		for j := range set {
			list = append(list, j)
		}
		sort.Ints(list)
		out[i] = list
	}
	return out
}
