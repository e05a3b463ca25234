// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package posstore

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
)

// encodeBlock appends the encoding of pos to buf: the number of positions
// as a uvarint, then each position as a varint delta from its predecessor
// (the first one from zero).
func encodeBlock(buf []byte, pos []int32) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(len(pos)))
	buf = append(buf, tmp[:n]...)
	prev := int64(0)
	for _, p := range pos {
		n = binary.PutVarint(tmp[:], int64(p)-prev)
		buf = append(buf, tmp[:n]...)
		prev = int64(p)
	}
	return buf
}

// decodeBlock appends the positions encoded in data to pos.
func decodeBlock(pos []int32, data []byte) ([]int32, error) {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return pos, errors.E(errors.Invalid, "posstore: corrupt block count")
	}
	data = data[n:]
	prev := int64(0)
	for i := uint64(0); i < count; i++ {
		delta, n := binary.Varint(data)
		if n <= 0 {
			return pos, errors.E(errors.Invalid, fmt.Sprintf("posstore: corrupt position %d of %d", i, count))
		}
		data = data[n:]
		prev += delta
		if prev < math.MinInt32 || prev > math.MaxInt32 {
			return pos, errors.E(errors.Invalid, fmt.Sprintf("posstore: position %d out of range", prev))
		}
		pos = append(pos, int32(prev))
	}
	if len(data) != 0 {
		return pos, errors.E(errors.Invalid, fmt.Sprintf("posstore: %d trailing byte(s) in block", len(data)))
	}
	return pos, nil
}
