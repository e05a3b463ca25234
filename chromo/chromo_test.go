// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package chromo_test

import (
	"testing"

	"github.com/cangermueller/deepcpg2/chromo"
	"github.com/grailbio/testutil/expect"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		label string
		want  chromo.ID
	}{
		{"X", chromo.X},
		{"x", chromo.X},
		{"Y", chromo.Y},
		{"y", chromo.Y},
		{"MT", chromo.MT},
		{"Mt", chromo.MT},
		{"mt", chromo.MT},
		{"M", chromo.MT},
		{"m", chromo.MT},
		{"7", 7},
		{"22", 22},
		{"007", 7},
		{"foo", chromo.Unknown},
		{"", chromo.Unknown},
		{"-1", chromo.Unknown},
		{"1a", chromo.Unknown},
		{"chr1", chromo.Unknown},
		{"99999999999", chromo.Unknown},
	}
	for _, tt := range tests {
		expect.EQ(t, chromo.ToInt(tt.label), tt.want, "label %q", tt.label)
	}
}

func TestCanonicalPassesIntegersThrough(t *testing.T) {
	for _, id := range []chromo.ID{chromo.Unknown, 1, 19, chromo.X, chromo.Y, chromo.MT, 555} {
		expect.EQ(t, chromo.Canonical(id), id)
		expect.EQ(t, chromo.Canonical(int(id)), id)
		expect.EQ(t, chromo.Canonical(int64(id)), id)
	}
	expect.EQ(t, chromo.Canonical("x"), chromo.X)
	expect.EQ(t, chromo.Canonical(3.0), chromo.Unknown)
}

func TestStringRoundTrip(t *testing.T) {
	for _, id := range []chromo.ID{1, 2, 10, 22, chromo.X, chromo.Y, chromo.MT, chromo.Unknown} {
		expect.EQ(t, chromo.ToInt(id.String()), id)
	}
	expect.EQ(t, chromo.X.String(), "X")
	expect.EQ(t, chromo.ID(12).String(), "12")
}

func TestFormat(t *testing.T) {
	expect.EQ(t, chromo.FormatID("chr1"), chromo.ID(1))
	expect.EQ(t, chromo.FormatID("chrX"), chromo.X)
	expect.EQ(t, chromo.FormatID("CHRM"), chromo.MT)
	expect.EQ(t, chromo.FormatID("1"), chromo.ID(1))
	expect.EQ(t, chromo.FormatID("chr_1"), chromo.Unknown)
	expect.EQ(t, chromo.FormatID("Chr01"), chromo.ID(1))
	expect.EQ(t, chromo.Format("1"), "1")
	expect.EQ(t, chromo.Format("chrX"), "x")
	// Only a leading prefix is removed.
	expect.EQ(t, chromo.Format("xchr1"), "xchr1")
	expect.EQ(t, chromo.Format("chrchr2"), "chr2")
}

func TestFormatAll(t *testing.T) {
	expect.EQ(t, chromo.FormatAll([]string{"chr1", "chrX", "chrZ"}), []chromo.ID{1, chromo.X, chromo.Unknown})
	expect.EQ(t, chromo.FormatAll(nil), []chromo.ID{})
	expect.EQ(t, chromo.FormatAllNames([]string{"chr1", "ChrY", "2"}), []string{"1", "y", "2"})
}
