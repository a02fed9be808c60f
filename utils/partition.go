// Package utils carries small shared helpers, chiefly the index
// partitioning used to split embarrassingly parallel per-face loops
// across workers.
package utils

import "fmt"

// PartitionMap splits the index range [0, MaxIndex) into ParallelDegree
// contiguous buckets whose sizes differ by at most one.
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // begin and end index of each bucket
}

func NewPartitionMap(parallelDegree, maxIndex int) (pm *PartitionMap) {
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	if parallelDegree > maxIndex && maxIndex > 0 {
		parallelDegree = maxIndex
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: parallelDegree,
		Partitions:     make([][2]int, parallelDegree),
	}
	for n := 0; n < parallelDegree; n++ {
		pm.Partitions[n] = pm.split1D(n)
	}
	return
}

// split1D computes bucket n. The remainder of MaxIndex/ParallelDegree is
// spread one element at a time over the leading buckets.
func (pm *PartitionMap) split1D(n int) [2]int {
	base := pm.MaxIndex / pm.ParallelDegree
	rem := pm.MaxIndex % pm.ParallelDegree
	begin := n*base + min(n, rem)
	size := base
	if n < rem {
		size++
	}
	return [2]int{begin, begin + size}
}

// GetBucketRange returns the half-open index range [imin, imax) of bucket n.
func (pm *PartitionMap) GetBucketRange(n int) (imin, imax int) {
	if n < 0 || n >= pm.ParallelDegree {
		panic(fmt.Sprintf("bucket %d out of range for parallel degree %d", n, pm.ParallelDegree))
	}
	imin, imax = pm.Partitions[n][0], pm.Partitions[n][1]
	return
}

// GetBucketDimension returns the number of indices in bucket n.
func (pm *PartitionMap) GetBucketDimension(n int) int {
	imin, imax := pm.GetBucketRange(n)
	return imax - imin
}
