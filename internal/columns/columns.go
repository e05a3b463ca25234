// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package columns reads the leading whitespace-delimited columns of
// headerless text tables such as BED files and methylation call files.
package columns

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/xi2/xz"
)

// maxLineLen bounds the line length accepted by Scanner.
const maxLineLen = 1 << 20

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// Opts controls which lines Scanner skips.
type Opts struct {
	// SkipPrefixes lists line prefixes that mark header or comment lines,
	// e.g. "#" or "track" for BED files.  Blank lines are always skipped.
	SkipPrefixes []string
}

// Scanner yields the first N tokens of each data line.  Tokens alias the
// scanner's buffer and are only valid until the next call to Scan.
type Scanner struct {
	sc     *bufio.Scanner
	opts   Opts
	tokens [][]byte
	n      int
	line   int
}

// NewScanner creates a Scanner that extracts up to nTokens tokens per line.
func NewScanner(r io.Reader, nTokens int, opts Opts) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	return &Scanner{
		sc:     sc,
		opts:   opts,
		tokens: make([][]byte, nTokens),
	}
}

func (s *Scanner) skip(line []byte) bool {
	for _, p := range s.opts.SkipPrefixes {
		if bytes.HasPrefix(line, []byte(p)) {
			return true
		}
	}
	return false
}

// Scan advances to the next data line.  It returns false at EOF or on error;
// check Err afterwards.
func (s *Scanner) Scan() bool {
	for s.sc.Scan() {
		s.line++
		curLine := s.sc.Bytes()
		if s.skip(curLine) {
			continue
		}
		if s.n = getTokens(s.tokens, curLine); s.n == 0 {
			continue
		}
		return true
	}
	return false
}

// Tokens returns the tokens found on the current line.  Its length may be
// smaller than the nTokens passed to NewScanner if the line is short.
func (s *Scanner) Tokens() [][]byte {
	return s.tokens[:s.n]
}

// Line returns the 1-based number of the current line in the input.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first read error, if any.
func (s *Scanner) Err() error {
	return s.sc.Err()
}

// Open opens path for reading and decompresses it according to its
// extension (".gz" or ".xz").  The returned close function must be called
// once the reader is no longer used.
func Open(ctx context.Context, path string) (io.Reader, func() error, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() error { return in.Close(ctx) }
	reader := io.Reader(in.Reader(ctx))
	switch {
	case fileio.DetermineType(path) == fileio.Gzip:
		gz, err := gzip.NewReader(reader)
		if err != nil {
			_ = in.Close(ctx)
			return nil, nil, err
		}
		reader = gz
		closeFn = func() error {
			err := gz.Close()
			if cerr := in.Close(ctx); cerr != nil && err == nil {
				err = cerr
			}
			return err
		}
	case strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(reader, 0)
		if err != nil {
			_ = in.Close(ctx)
			return nil, nil, err
		}
		reader = xr
	}
	return reader, closeFn, nil
}
