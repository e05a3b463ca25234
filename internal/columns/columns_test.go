// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package columns

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

func scanAll(t *testing.T, s *Scanner) (rows [][]string, lines []int) {
	for s.Scan() {
		var row []string
		for _, tok := range s.Tokens() {
			row = append(row, string(tok))
		}
		rows = append(rows, row)
		lines = append(lines, s.Line())
	}
	assert.NoError(t, s.Err())
	return
}

func TestGetTokens(t *testing.T) {
	var tokens [3][]byte
	expect.EQ(t, getTokens(tokens[:], []byte("chr1\t10\t20\tname")), 3)
	expect.EQ(t, string(tokens[0]), "chr1")
	expect.EQ(t, string(tokens[2]), "20")
	expect.EQ(t, getTokens(tokens[:], []byte("  1   5 ")), 2)
	expect.EQ(t, string(tokens[1]), "5")
	expect.EQ(t, getTokens(tokens[:], []byte(" \t ")), 0)
}

func TestScanner(t *testing.T) {
	in := "# comment\n1\t10\t0.5\textra\n\n track x\nchr2 20 1\ntrack name=foo\n3\t30\n"
	s := NewScanner(strings.NewReader(in), 3, Opts{SkipPrefixes: []string{"#", "track"}})
	rows, lines := scanAll(t, s)
	expect.EQ(t, rows, [][]string{
		{"1", "10", "0.5"},
		// Leading whitespace defeats the prefix match.
		{"track", "x"},
		{"chr2", "20", "1"},
		{"3", "30"},
	})
	expect.EQ(t, lines, []int{2, 4, 5, 7})
}

func TestOpenGzip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "test.bed.gz")
	f, err := os.Create(path)
	assert.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("chr1\t1\t2\n"))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())
	assert.NoError(t, f.Close())

	r, closeFn, err := Open(context.Background(), path)
	assert.NoError(t, err)
	rows, _ := scanAll(t, NewScanner(r, 3, Opts{}))
	assert.NoError(t, closeFn())
	expect.EQ(t, rows, [][]string{{"chr1", "1", "2"}})
}

func TestOpenPlain(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "test.tsv")
	assert.NoError(t, ioutil.WriteFile(path, []byte("X 5 1\n"), 0644))

	r, closeFn, err := Open(context.Background(), path)
	assert.NoError(t, err)
	rows, _ := scanAll(t, NewScanner(r, 3, Opts{}))
	assert.NoError(t, closeFn())
	expect.EQ(t, rows, [][]string{{"X", "5", "1"}})

	_, _, err = Open(context.Background(), filepath.Join(tempDir, "missing.tsv"))
	expect.NotNil(t, err)
}

// testXz is "chr1\t10\t20\n# c\nX\t5\t6\n", compressed with "xz -0 -C crc32".
const testXz = "\xfd\x37\x7a\x58\x5a\x00\x00\x01\x69\x22\xde\x36\x02\x00\x21\x01\x0c\x00\x00\x00\x8f\x98\x41\x9c\x01\x00\x14\x63\x68\x72\x31\x09\x31\x30\x09\x32\x30\x0a\x23\x20\x63\x0a\x58\x09\x35\x09\x36\x0a\x00\x00\x00\x00\xc0\xa5\x1a\x26\x00\x01\x29\x15\x2b\xce\x1d\x09\x90\x42\x99\x0d\x01\x00\x00\x00\x00\x01\x59\x5a"

func TestOpenXz(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "test.bed.xz")
	assert.NoError(t, ioutil.WriteFile(path, []byte(testXz), 0644))

	r, closeFn, err := Open(context.Background(), path)
	assert.NoError(t, err)
	rows, lines := scanAll(t, NewScanner(r, 3, Opts{SkipPrefixes: []string{"#"}}))
	expect.EQ(t, rows, [][]string{{"chr1", "10", "20"}, {"X", "5", "6"}})
	expect.EQ(t, lines, []int{1, 3})
	assert.NoError(t, closeFn())
	// The underlying file is closed already.
	expect.NotNil(t, closeFn())

	// Not xz data.
	assert.NoError(t, ioutil.WriteFile(path, []byte("chr1\t10\t20\n"), 0644))
	_, _, err = Open(context.Background(), path)
	expect.NotNil(t, err)
}
