// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package interval

import (
	"context"
	"fmt"
	"sort"

	"github.com/cangermueller/deepcpg2/annos"
	"github.com/cangermueller/deepcpg2/chromo"
	"github.com/grailbio/base/log"
)

// Union is a per-chromosome interval-union.
type Union struct {
	// idMap maps a chromosome to its disjoint-interval-set, in the endpoint
	// representation described in endpoints.go.  Always initialized.
	idMap map[chromo.ID][]PosType
	// nBases is the number of positions covered.
	nBases int64

	// lastChrIntervals is the disjoint-interval-set of lastChrID.
	lastChrIntervals []PosType
	// lastChrID is the chromosome of the last query.  It is only meaningful
	// when hasLast is true.
	lastChrID chromo.ID
	hasLast   bool
	// lastPosPlus1 is 1 plus the last queried position.
	lastPosPlus1 PosType
	// lastIdx is searchPosTypes(lastChrIntervals, lastPosPlus1).  Cached to
	// accelerate sequential queries.
	lastIdx int
	// isSequential is true if all queries since the last chromosome change have
	// been in order of nondecreasing position.
	isSequential bool
}

// NewUnion builds a Union from intervals sorted by (Chromo, Start), which is
// the order annos.FormatBED produces by default.  Overlapping and touching
// intervals are merged and empty ones dropped.
func NewUnion(entries []annos.Interval) (u Union, err error) {
	u.idMap = make(map[chromo.ID][]PosType)
	started := false
	var (
		curChr             chromo.ID
		prevStart, prevEnd PosType
		chrIntervals       []PosType
	)
	flush := func() {
		if prevEnd != -1 {
			chrIntervals = append(chrIntervals, prevStart, prevEnd)
			u.nBases += int64(prevEnd - prevStart)
		}
		u.idMap[curChr] = chrIntervals
	}
	for i, entry := range entries {
		if entry.Start < 0 {
			return u, fmt.Errorf("interval.NewUnion: negative start coordinate in entry %d", i)
		}
		if entry.End < entry.Start || entry.End >= PosTypeMax {
			return u, fmt.Errorf("interval.NewUnion: invalid coordinate pair [%d, %d) in entry %d", entry.Start, entry.End, i)
		}
		start, end := PosType(entry.Start), PosType(entry.End)
		if !started || entry.Chromo != curChr {
			if started {
				flush()
			}
			started = true
			curChr = entry.Chromo
			if _, found := u.idMap[curChr]; found {
				return u, fmt.Errorf("interval.NewUnion: unsorted input (split chromosome %v)", curChr)
			}
			chrIntervals = []PosType{}
			if end == start {
				// Distinguish between 'mentioned' chromosomes without any covered
				// bases and unmentioned chromosomes.
				prevStart, prevEnd = -1, -1
			} else {
				prevStart, prevEnd = start, end
			}
			continue
		}
		if end == start {
			continue
		}
		if prevEnd == -1 {
			prevStart, prevEnd = start, end
			continue
		}
		if start > prevEnd {
			chrIntervals = append(chrIntervals, prevStart, prevEnd)
			u.nBases += int64(prevEnd - prevStart)
			prevStart, prevEnd = start, end
			continue
		}
		if start < prevStart {
			return u, fmt.Errorf("interval.NewUnion: unsorted input in entry %d", i)
		}
		if end > prevEnd {
			prevEnd = end
		}
	}
	if started {
		flush()
	}
	return u, nil
}

// NewUnionFromPath loads an annotation file with annos.Read, dropping
// unknown chromosomes, and builds its Union.
func NewUnionFromPath(ctx context.Context, path string) (Union, error) {
	entries, err := annos.Read(ctx, path, annos.FormatOpts{})
	if err != nil {
		return Union{}, err
	}
	u, err := NewUnion(entries)
	if err != nil {
		return u, fmt.Errorf("%s: %v", path, err)
	}
	log.Debug.Printf("%s: interval union loaded, %d base(s) covered", path, u.nBases)
	return u, nil
}

// ContainsByID checks whether the (0-based) interval [pos, pos+1) is contained
// within the Union.  Queries are fastest when they are grouped by chromosome
// and in nondecreasing position order within each group.
func (u *Union) ContainsByID(chrID chromo.ID, pos PosType) bool {
	posPlus1 := pos + 1
	if !u.hasLast || chrID != u.lastChrID {
		u.hasLast = true
		u.lastChrID = chrID
		u.lastChrIntervals = u.idMap[chrID]
		if u.lastChrIntervals == nil {
			return false
		}
		u.lastIdx = searchPosTypes(u.lastChrIntervals, posPlus1)
		u.lastPosPlus1 = posPlus1
		u.isSequential = true
		return u.lastIdx&1 == 1
	}
	if u.lastChrIntervals == nil {
		return false
	}
	if u.isSequential {
		if posPlus1 >= u.lastPosPlus1 {
			u.lastIdx = expsearchPosType(u.lastChrIntervals, posPlus1, u.lastIdx)
			u.lastPosPlus1 = posPlus1
			return u.lastIdx&1 == 1
		}
		u.isSequential = false
	}
	return searchPosTypes(u.lastChrIntervals, posPlus1)&1 == 1
}

// Intersects checks whether any position of [start, limit) on chrID is
// covered.  It does not touch the sequential-query cache.
func (u *Union) Intersects(chrID chromo.ID, start, limit PosType) bool {
	if limit <= start {
		return false
	}
	chrIntervals := u.idMap[chrID]
	idx := searchPosTypes(chrIntervals, start+1)
	if idx&1 == 1 {
		return true
	}
	return idx != len(chrIntervals) && chrIntervals[idx] < limit
}

// Bases returns the number of positions covered by the union.
func (u *Union) Bases() int64 {
	return u.nBases
}

// Chromos returns the chromosomes mentioned by the input, in increasing order.
func (u *Union) Chromos() []chromo.ID {
	ids := make([]chromo.ID, 0, len(u.idMap))
	for id := range u.idMap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a new Union which shares the interval set, but has its own
// search state.
func (u *Union) Clone() Union {
	return Union{idMap: u.idMap, nBases: u.nBases}
}
