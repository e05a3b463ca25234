// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*Package interval implements interval-union membership queries over
  normalized annotations, e.g. "which CpG sites lie in a CpG island".
  (Note the 'union'.  Overlapping intervals are merged, not tracked
  separately, so a query only tells whether a position is covered, not by
  which annotation.)
  Positions are PosType, i.e. int32, which is what the CpG readers produce.
*/
package interval
