// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package posstore stores CpG position arrays in a directory tree.
//
// A store is a directory, local or on any scheme registered with
// github.com/grailbio/base/file.  The positions of chromosome <chromo> in
// dataset <dataset> live in the file "<store>/<dataset>/pos/<chromo>".  Each
// file is a recordio file.  Its header records the chromosome label and the
// number of positions; each record holds a block of up to blockSize
// positions, encoded as a uvarint count followed by varint deltas.
package posstore

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cangermueller/deepcpg2/chromo"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
)

const (
	// posDir is the directory under a dataset holding one file per chromosome.
	posDir = "pos"

	chromoHeader = "chromo"
	nPosHeader   = "npos"

	// blockSize is the max number of positions in one recordio block.
	blockSize = 1 << 16

	// maxPrealloc caps the capacity reserved from the npos header.
	maxPrealloc = 1 << 24
)

func init() {
	recordiozstd.Init()
}

// DatasetDir returns the directory listing the chromosomes of dataset.
func DatasetDir(path, dataset string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(path, "/"), dataset, posDir)
}

// Path returns the path of the file storing the positions of chromo.
func Path(path, dataset, chromo string) string {
	return fmt.Sprintf("%s/%s", DatasetDir(path, dataset), chromo)
}

// ReadPos reads the positions of chromo in dataset.  The error from opening
// the file is returned unchanged, so a missing chromosome or dataset yields
// the not-found error of the underlying file implementation.
func ReadPos(ctx context.Context, path, dataset, chromo string) (pos []int32, err error) {
	p := Path(path, dataset, chromo)
	in, err := file.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	rio := recordio.NewScanner(in.Reader(ctx), recordio.ScannerOpts{})
	defer rio.Finish() // nolint: errcheck

	nPos, hasNPos := 0, false
	for _, kv := range rio.Header() {
		if kv.Key != nPosHeader {
			continue
		}
		s, ok := kv.Value.(string)
		if !ok {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("posstore.ReadPos %s: bad %s header %v", p, nPosHeader, kv.Value))
		}
		if nPos, err = strconv.Atoi(s); err != nil {
			return nil, errors.E(errors.Invalid, err, fmt.Sprintf("posstore.ReadPos %s: bad %s header", p, nPosHeader))
		}
		if nPos < 0 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("posstore.ReadPos %s: negative %s header %d", p, nPosHeader, nPos))
		}
		hasNPos = true
	}
	capacity := nPos
	if capacity > maxPrealloc {
		capacity = maxPrealloc
	}
	pos = make([]int32, 0, capacity)
	for block := 0; rio.Scan(); block++ {
		if pos, err = decodeBlock(pos, rio.Get().([]byte)); err != nil {
			return nil, errors.E(err, fmt.Sprintf("posstore.ReadPos %s: block %d", p, block))
		}
	}
	if err = rio.Err(); err != nil {
		return nil, errors.E(err, p)
	}
	if hasNPos && len(pos) != nPos {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("posstore.ReadPos %s: read %d positions, header says %d", p, len(pos), nPos))
	}
	log.Debug.Printf("%s: read %d position(s)", p, len(pos))
	return pos, nil
}

// WritePos stores pos as the positions of chromo in dataset, replacing any
// existing array.
func WritePos(ctx context.Context, path, dataset, chromo string, pos []int32) error {
	p := Path(path, dataset, chromo)
	if err := mkdirLocal(DatasetDir(path, dataset)); err != nil {
		return err
	}
	out, err := file.Create(ctx, p)
	if err != nil {
		return err
	}
	e := errors.Once{}
	rio := recordio.NewWriter(out.Writer(ctx), recordio.WriterOpts{
		Transformers: []string{recordiozstd.Name},
	})
	rio.AddHeader(chromoHeader, chromo)
	rio.AddHeader(nPosHeader, strconv.Itoa(len(pos)))
	for i := 0; i < len(pos); i += blockSize {
		end := i + blockSize
		if end > len(pos) {
			end = len(pos)
		}
		// recordio may hold on to the appended slice until Finish, so each
		// block gets its own buffer.
		rio.Append(encodeBlock(nil, pos[i:end]))
	}
	e.Set(rio.Finish())
	e.Set(out.Close(ctx))
	if e.Err() == nil {
		log.Debug.Printf("%s: wrote %d position(s)", p, len(pos))
	}
	return e.Err()
}

// mkdirLocal creates dir if it is a local path.  Object stores need no
// directories.
func mkdirLocal(dir string) error {
	scheme, _, err := file.ParsePath(dir)
	if err != nil || scheme != "" {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ListChromos lists the chromosomes stored for dataset.  Labels are sorted in
// chromosome order: autosomes by number, then X, Y and MT, then unrecognized
// labels lexicographically.
//
// A dataset that does not exist yields an errors.NotExist error.  On object
// stores, which have no directories, so does a dataset with no chromosomes.
func ListChromos(ctx context.Context, path, dataset string) ([]string, error) {
	dir := DatasetDir(path, dataset)
	var chromos []string
	lister := file.List(ctx, dir, false)
	for lister.Scan() {
		if lister.IsDir() {
			continue
		}
		chromos = append(chromos, file.Base(lister.Path()))
	}
	if err := lister.Err(); err != nil {
		return nil, err
	}
	if len(chromos) == 0 {
		// file.List treats a missing local directory as empty.
		if err := checkDir(dir); err != nil {
			return nil, err
		}
	}
	SortChromos(chromos)
	return chromos, nil
}

// checkDir returns a NotExist error unless dir is an existing local
// directory.
func checkDir(dir string) error {
	scheme, _, err := file.ParsePath(dir)
	if err != nil {
		return err
	}
	if scheme != "" {
		return errors.E(errors.NotExist, fmt.Sprintf("posstore.ListChromos: no chromosomes under %s", dir))
	}
	if _, err := os.Stat(dir); err != nil {
		return errors.E(err, "posstore.ListChromos")
	}
	return nil
}

// SortChromos sorts labels in chromosome order.
func SortChromos(labels []string) {
	key := func(l string) chromo.ID {
		if id := chromo.FormatID(l); id != chromo.Unknown {
			return id
		}
		return chromo.ID(1<<31 - 1)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		ki, kj := key(labels[i]), key(labels[j])
		if ki != kj {
			return ki < kj
		}
		return labels[i] < labels[j]
	})
}
