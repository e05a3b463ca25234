// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package interval

import (
	"math"
	"sort"
)

// An interval-union on one chromosome is stored as the sorted sequence of its
// endpoints: the 0-based start of interval k is element [2k], and its
// (exclusive) end is element [2k+1].  The intervals
//   [5, 15) [7, 17) [20, 25)
// are stored as {5, 17, 20, 25}.  For a position pos,
// searchPosTypes(endpoints, pos+1) is odd iff pos is covered.

// PosType is the type used to represent interval coordinates.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// searchPosTypes returns the index of x in a[], or the position where x would
// be inserted if x isn't in a (this could be len(a)).
func searchPosTypes(a []PosType, x PosType) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}

// expsearchPosType returns the same value as searchPosTypes(a, x), given that
// the answer is known to be >= idx.  It checks a[idx], a[idx+1], a[idx+3],
// a[idx+7], etc. and finishes with binary search, which is faster than a
// plain binary search when queries move forward slowly.
func expsearchPosType(a []PosType, x PosType, idx int) int {
	nextIncr := 1
	startIdx := idx
	endIdx := len(a)
	for idx < endIdx {
		if a[idx] >= x {
			endIdx = idx
			break
		}
		startIdx = idx + 1
		idx += nextIncr
		nextIncr *= 2
	}
	for startIdx < endIdx {
		midIdx := int(uint(startIdx+endIdx) >> 1)
		if a[midIdx] >= x {
			endIdx = midIdx
		} else {
			startIdx = midIdx + 1
		}
	}
	return startIdx
}
