// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package cpg reads methylation call files.
//
// A call file is a headerless, whitespace-delimited table whose first three
// columns are the chromosome label, the position of the CpG site, and the
// methylation signal.  Further columns are ignored.  For example:
//
//   1	3000827	1.0
//   1	3001007	0.0
//   X	3001018	1.0
package cpg

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/cangermueller/deepcpg2/chromo"
	"github.com/cangermueller/deepcpg2/internal/columns"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"gonum.org/v1/gonum/floats/scalar"
)

// Site is one methylation call.
type Site struct {
	Chromo chromo.ID
	Pos    int32
	// Value is 0 (unmethylated) or 1 (methylated).
	Value int32
}

// Opts controls Read.  The zero value reads every row.
type Opts struct {
	// Chromos, if non-nil, restricts the result to rows whose raw chromosome
	// label, as written in the file, is in this list.
	Chromos []string
	// NRows, if positive, is the maximum number of data rows parsed from the
	// top of the file.  Filtering by Chromos happens afterwards.
	NRows int
}

// Read reads the methylation call file at path.  Files ending in ".gz" or
// ".xz" are decompressed.
func Read(ctx context.Context, path string, opts Opts) (sites []Site, err error) {
	in, closeFn, err := columns.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if sites, err = ReadFrom(in, opts); err != nil {
		return nil, errors.E(err, path)
	}
	log.Debug.Printf("%s: read %d CpG site(s)", path, len(sites))
	return sites, nil
}

// ReadFile is a wrapper for Read that uses a background context.
func ReadFile(path string, opts Opts) ([]Site, error) {
	return Read(context.Background(), path, opts)
}

// ReadFrom parses a methylation call table from r.  Values are rounded half
// to even (0.5 -> 0, 1.5 -> 2); a rounded value other than 0 or 1 is an
// errors.Invalid error.
func ReadFrom(r io.Reader, opts Opts) ([]Site, error) {
	var keep map[string]bool
	if opts.Chromos != nil {
		keep = make(map[string]bool, len(opts.Chromos))
		for _, c := range opts.Chromos {
			keep[c] = true
		}
	}
	// Labels repeat on consecutive lines, so cache the last conversion.
	var (
		prevLabel string
		prevID    chromo.ID
	)
	sites := []Site{}
	scanner := columns.NewScanner(r, 3, columns.Opts{})
	nRows := 0
	for scanner.Scan() {
		if opts.NRows > 0 && nRows >= opts.NRows {
			break
		}
		nRows++
		lineIdx := scanner.Line()
		tokens := scanner.Tokens()
		if len(tokens) != 3 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("cpg.ReadFrom: line %d has fewer tokens than expected", lineIdx))
		}
		pos, err := strconv.ParseInt(gunsafe.BytesToString(tokens[1]), 10, 32)
		if err != nil {
			return nil, errors.E(err, fmt.Sprintf("cpg.ReadFrom: line %d", lineIdx))
		}
		value, err := strconv.ParseFloat(gunsafe.BytesToString(tokens[2]), 32)
		if err != nil {
			return nil, errors.E(err, fmt.Sprintf("cpg.ReadFrom: line %d", lineIdx))
		}
		label := gunsafe.BytesToString(tokens[0])
		if keep != nil && !keep[label] {
			continue
		}
		if label != prevLabel {
			// Copy the label; tokens alias the scanner buffer.
			prevLabel = string(tokens[0])
			prevID = chromo.ToInt(prevLabel)
		}
		state := scalar.RoundEven(float64(float32(value)), 0)
		if state != 0 && state != 1 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("cpg.ReadFrom: invalid methylation states: value %s on line %d", tokens[2], lineIdx))
		}
		sites = append(sites, Site{Chromo: prevID, Pos: int32(pos), Value: int32(state)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Debug.Printf("cpg.ReadFrom: parsed %d row(s), kept %d", nRows, len(sites))
	return sites, nil
}

// GroupByChromo splits sites into per-chromosome position lists, preserving
// file order within each chromosome.  The returned ids are in order of first
// appearance.
func GroupByChromo(sites []Site) (ids []chromo.ID, pos map[chromo.ID][]int32) {
	pos = map[chromo.ID][]int32{}
	for _, s := range sites {
		if _, ok := pos[s.Chromo]; !ok {
			ids = append(ids, s.Chromo)
		}
		pos[s.Chromo] = append(pos[s.Chromo], s.Pos)
	}
	return ids, pos
}
