// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"io"

	"github.com/cangermueller/deepcpg2/annos"
	"github.com/cangermueller/deepcpg2/chromo"
	"github.com/cangermueller/deepcpg2/cpg"
	"github.com/cangermueller/deepcpg2/interval"
	"github.com/cangermueller/deepcpg2/posstore"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
)

func listChromos(ctx context.Context, out io.Writer, store, dataset string) error {
	chromos, err := posstore.ListChromos(ctx, store, dataset)
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out)
	for _, c := range chromos {
		w.WriteString(c)
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}

func printPos(ctx context.Context, out io.Writer, store, dataset, label string) error {
	pos, err := posstore.ReadPos(ctx, store, dataset, label)
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out)
	for _, p := range pos {
		w.WriteInt64(int64(p))
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}

func importPos(ctx context.Context, cpgPath, store, dataset string, opts cpg.Opts) error {
	sites, err := cpg.Read(ctx, cpgPath, opts)
	if err != nil {
		return err
	}
	ids, pos := cpg.GroupByChromo(sites)
	for _, id := range ids {
		if id == chromo.Unknown {
			log.Printf("%s: skipped %d site(s) on unrecognized chromosomes", cpgPath, len(pos[id]))
			continue
		}
		if err := posstore.WritePos(ctx, store, dataset, id.String(), pos[id]); err != nil {
			return err
		}
		log.Printf("%s/%s: stored %d position(s) for chromosome %v", store, dataset, len(pos[id]), id)
	}
	return nil
}

func writeSite(w *tsv.Writer, s cpg.Site) {
	w.WriteInt64(int64(s.Chromo))
	w.WriteInt64(int64(s.Pos))
	w.WriteInt64(int64(s.Value))
}

func printCpG(ctx context.Context, out io.Writer, path string, opts cpg.Opts) error {
	sites, err := cpg.Read(ctx, path, opts)
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out)
	for _, s := range sites {
		writeSite(w, s)
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}

func printAnnos(ctx context.Context, out io.Writer, path string, opts annos.FormatOpts) error {
	intervals, err := annos.Read(ctx, path, opts)
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out)
	for _, iv := range intervals {
		w.WriteInt64(int64(iv.Chromo))
		w.WriteInt64(iv.Start)
		w.WriteInt64(iv.End)
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}

func annotate(ctx context.Context, out io.Writer, cpgPath, bedPath string) error {
	u, err := interval.NewUnionFromPath(ctx, bedPath)
	if err != nil {
		return err
	}
	sites, err := cpg.Read(ctx, cpgPath, cpg.Opts{})
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out)
	nIn := 0
	for _, s := range sites {
		writeSite(w, s)
		in := int64(0)
		if u.ContainsByID(s.Chromo, interval.PosType(s.Pos)) {
			in = 1
			nIn++
		}
		w.WriteInt64(in)
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	log.Printf("%s: %d of %d site(s) inside %s", cpgPath, nIn, len(sites), bedPath)
	return w.Flush()
}
