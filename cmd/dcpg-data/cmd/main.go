// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	golog "log"
	"strings"

	"github.com/cangermueller/deepcpg2/annos"
	"github.com/cangermueller/deepcpg2/cpg"
	"v.io/x/lib/cmdline"
)

// splitList parses a comma-separated flag value.  An empty value yields nil,
// meaning "no restriction".
func splitList(flag string) []string {
	if flag == "" {
		return nil
	}
	return strings.Split(flag, ",")
}

func newCmdLs() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "ls",
		Short:    "List the chromosomes stored for a dataset",
		ArgsName: "store dataset",
	}
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("ls takes store and dataset arguments, but got %v", argv)
		}
		return listChromos(context.Background(), env.Stdout, argv[0], argv[1])
	})
	return cmd
}

func newCmdPos() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "pos",
		Short:    "Print the CpG positions stored for a chromosome, one per line",
		ArgsName: "store dataset chromo",
	}
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return fmt.Errorf("pos takes store, dataset and chromo arguments, but got %v", argv)
		}
		return printPos(context.Background(), env.Stdout, argv[0], argv[1], argv[2])
	})
	return cmd
}

func newCmdImportPos() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "import-pos",
		Short: `Store the CpG positions of a methylation call file.
Positions are grouped by chromosome; each chromosome is stored under its
canonical label (1, 2, ..., X, Y, MT).  Sites on unrecognized chromosomes,
including "chr"-prefixed labels, are skipped.`,
		ArgsName: "cpgpath store dataset",
	}
	chromosFlag := cmd.Flags.String("chromos", "", "Comma-separated list of chromosome labels, as written in the file, to import. By default all are imported.")
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return fmt.Errorf("import-pos takes cpgpath, store and dataset arguments, but got %v", argv)
		}
		return importPos(context.Background(), argv[0], argv[1], argv[2], cpg.Opts{Chromos: splitList(*chromosFlag)})
	})
	return cmd
}

func newCmdCpG() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "cpg",
		Short:    "Print a methylation call file as normalized chromo/pos/value rows",
		ArgsName: "cpgpath",
	}
	chromosFlag := cmd.Flags.String("chromos", "", "Comma-separated list of chromosome labels, as written in the file, to keep. By default all are kept.")
	nRowsFlag := cmd.Flags.Int("nrows", 0, "If positive, read at most this many rows from the top of the file")
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("cpg takes one pathname argument, but got %v", argv)
		}
		return printCpG(context.Background(), env.Stdout, argv[0], cpg.Opts{
			Chromos: splitList(*chromosFlag),
			NRows:   *nRowsFlag,
		})
	})
	return cmd
}

func newCmdAnnos() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "annos",
		Short:    "Print an annotation BED file as normalized chromo/start/end rows",
		ArgsName: "bedpath",
	}
	opts := annos.FormatOpts{}
	cmd.Flags.BoolVar(&opts.KeepUnknown, "keep-unknown", false, "Keep intervals on unrecognized chromosomes (printed as chromosome 0)")
	cmd.Flags.BoolVar(&opts.Unsorted, "unsorted", false, "Keep the input order instead of sorting by chromosome and start")
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("annos takes one pathname argument, but got %v", argv)
		}
		return printAnnos(context.Background(), env.Stdout, argv[0], opts)
	})
	return cmd
}

func newCmdAnnotate() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "annotate",
		Short: `Tell which CpG sites lie inside an annotation.
Prints the normalized rows of cpgpath with a fourth column that is 1 if the
site is covered by an interval of bedpath, and 0 otherwise.`,
		ArgsName: "cpgpath bedpath",
	}
	cmd.Runner = cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("annotate takes cpgpath and bedpath, but got %v", argv)
		}
		return annotate(context.Background(), env.Stdout, argv[0], argv[1])
	})
	return cmd
}

// Run runs the dcpg-data command line tool.  It does not return.
func Run() {
	golog.SetFlags(golog.Ldate | golog.Ltime | golog.Lmicroseconds | golog.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "dcpg-data",
			Short:    "Tools for loading CpG positions, methylation calls and annotations",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdLs(),
				newCmdPos(),
				newCmdImportPos(),
				newCmdCpG(),
				newCmdAnnos(),
				newCmdAnnotate(),
			},
		})
}
