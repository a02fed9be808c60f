package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test full coverage with maximum imbalance of one
		for maxIndex := 1; maxIndex < 500; maxIndex++ {
			for degree := 1; degree <= 16; degree++ {
				pm := NewPartitionMap(degree, maxIndex)
				total := 0
				prevEnd := 0
				minDim, maxDim := maxIndex, 0
				for n := 0; n < pm.ParallelDegree; n++ {
					imin, imax := pm.GetBucketRange(n)
					assert.Equal(t, prevEnd, imin)
					prevEnd = imax
					dim := pm.GetBucketDimension(n)
					assert.Equal(t, imax-imin, dim)
					total += dim
					if dim < minDim {
						minDim = dim
					}
					if dim > maxDim {
						maxDim = dim
					}
				}
				assert.Equal(t, maxIndex, total)
				assert.Equal(t, maxIndex, prevEnd)
				assert.True(t, maxDim-minDim <= 1)
			}
		}
	}
	{ // Test degree clamping
		pm := NewPartitionMap(16, 4)
		assert.Equal(t, 4, pm.ParallelDegree)
		pm = NewPartitionMap(0, 10)
		assert.Equal(t, 1, pm.ParallelDegree)
	}
	{ // Test out of range bucket panics
		pm := NewPartitionMap(2, 10)
		assert.Panics(t, func() { pm.GetBucketRange(2) })
		assert.Panics(t, func() { pm.GetBucketRange(-1) })
	}
}
