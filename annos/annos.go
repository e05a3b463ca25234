// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package annos loads genomic annotations from BED-like files and normalizes
// their chromosome labels.
package annos

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/cangermueller/deepcpg2/chromo"
	"github.com/cangermueller/deepcpg2/internal/columns"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
)

// RawInterval is an interval as written in the file.
type RawInterval struct {
	Chromo string
	Start  int64
	End    int64
}

// Interval is an interval whose chromosome has been normalized.
type Interval struct {
	Chromo chromo.ID
	Start  int64
	End    int64
}

// FormatOpts defines the behavior of FormatBED and Read.  The zero value
// drops unknown chromosomes and sorts the result.
type FormatOpts struct {
	// KeepUnknown retains intervals whose chromosome maps to chromo.Unknown.
	KeepUnknown bool
	// Unsorted keeps the input order instead of sorting by (Chromo, Start).
	Unsorted bool
}

// bedHeaderPrefixes are the prefixes of BED lines that carry no interval.
var bedHeaderPrefixes = []string{"#", "track", "browser"}

// Read loads the annotation file at path and normalizes it with FormatBED.
// Only the first three columns are used.  Files ending in ".gz" or ".xz" are
// decompressed.
func Read(ctx context.Context, path string, opts FormatOpts) (intervals []Interval, err error) {
	in, closeFn, err := columns.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	raw, err := ReadRaw(in)
	if err != nil {
		return nil, errors.E(err, path)
	}
	intervals = FormatBED(raw, opts)
	log.Debug.Printf("%s: loaded %d interval(s), kept %d", path, len(raw), len(intervals))
	return intervals, nil
}

// ReadFrom is the io.Reader version of Read.
func ReadFrom(r io.Reader, opts FormatOpts) ([]Interval, error) {
	raw, err := ReadRaw(r)
	if err != nil {
		return nil, err
	}
	return FormatBED(raw, opts), nil
}

// ReadRaw parses the first three columns of a BED-like table without
// normalizing anything.  Start and end must be integers; their order is not
// checked.
func ReadRaw(r io.Reader) ([]RawInterval, error) {
	raw := []RawInterval{}
	scanner := columns.NewScanner(r, 3, columns.Opts{SkipPrefixes: bedHeaderPrefixes})
	for scanner.Scan() {
		lineIdx := scanner.Line()
		tokens := scanner.Tokens()
		if len(tokens) != 3 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("annos.ReadRaw: line %d has fewer tokens than expected", lineIdx))
		}
		start, err := strconv.ParseInt(gunsafe.BytesToString(tokens[1]), 10, 64)
		if err != nil {
			return nil, errors.E(err, fmt.Sprintf("annos.ReadRaw: line %d", lineIdx))
		}
		end, err := strconv.ParseInt(gunsafe.BytesToString(tokens[2]), 10, 64)
		if err != nil {
			return nil, errors.E(err, fmt.Sprintf("annos.ReadRaw: line %d", lineIdx))
		}
		raw = append(raw, RawInterval{Chromo: string(tokens[0]), Start: start, End: end})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return raw, nil
}

// FormatBED normalizes chromosome labels with chromo.FormatID, then drops
// unknown chromosomes and sorts by (Chromo, Start) unless opts says
// otherwise.  The sort is stable.  d is not modified.
func FormatBED(d []RawInterval, opts FormatOpts) []Interval {
	labels := make([]string, len(d))
	for i, r := range d {
		labels[i] = r.Chromo
	}
	out := make([]Interval, 0, len(d))
	for i, id := range chromo.FormatAll(labels) {
		if id == chromo.Unknown && !opts.KeepUnknown {
			continue
		}
		out = append(out, Interval{Chromo: id, Start: d[i].Start, End: d[i].End})
	}
	if !opts.Unsorted {
		Sort(out)
	}
	return out
}

// Sort stable-sorts intervals by (Chromo, Start).
func Sort(intervals []Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		a, b := intervals[i], intervals[j]
		if a.Chromo != b.Chromo {
			return a.Chromo < b.Chromo
		}
		return a.Start < b.Start
	})
}

// Chromos returns the distinct chromosomes of intervals in order of first
// appearance.
func Chromos(intervals []Interval) []chromo.ID {
	var ids []chromo.ID
	seen := map[chromo.ID]bool{}
	for _, iv := range intervals {
		if !seen[iv.Chromo] {
			seen[iv.Chromo] = true
			ids = append(ids, iv.Chromo)
		}
	}
	return ids
}
