package delaunay

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpatialSort(t *testing.T) {
	{ // Test the result is a permutation
		rnd := rand.New(rand.NewSource(7))
		for _, n := range []int{0, 1, 2, 3, 100, 1000} {
			pts := make([][2]float64, n)
			for i := range pts {
				pts[i] = [2]float64{rnd.Float64() * 10, rnd.Float64() * 10}
			}
			perm := SpatialSort(pts)
			require.Len(t, perm, n)
			seen := make([]bool, n)
			for _, p := range perm {
				require.True(t, p >= 0 && p < n)
				require.False(t, seen[p])
				seen[p] = true
			}
		}
	}
	{ // Test determinism
		rnd := rand.New(rand.NewSource(11))
		pts := make([][2]float64, 500)
		for i := range pts {
			pts[i] = [2]float64{rnd.Float64(), rnd.Float64()}
		}
		assert.Equal(t, SpatialSort(pts), SpatialSort(pts))
	}
	{ // Test degenerate extents (collinear points) do not divide by zero
		pts := [][2]float64{{0, 5}, {1, 5}, {2, 5}, {0.5, 5}}
		perm := SpatialSort(pts)
		assert.Len(t, perm, 4)
	}
	{ // Test spatial coherence: consecutive points in sorted order are
		// closer on average than in input order for a shuffled grid
		var pts [][2]float64
		for j := 0; j < 32; j++ {
			for i := 0; i < 32; i++ {
				pts = append(pts, [2]float64{float64(i), float64(j)})
			}
		}
		rnd := rand.New(rand.NewSource(3))
		rnd.Shuffle(len(pts), func(a, b int) { pts[a], pts[b] = pts[b], pts[a] })

		dist2 := func(a, b [2]float64) float64 {
			dx, dy := a[0]-b[0], a[1]-b[1]
			return dx*dx + dy*dy
		}
		perm := SpatialSort(pts)
		var sorted, unsorted float64
		for i := 1; i < len(pts); i++ {
			sorted += dist2(pts[perm[i-1]], pts[perm[i]])
			unsorted += dist2(pts[i-1], pts[i])
		}
		assert.True(t, sorted < unsorted/4)
	}
}
