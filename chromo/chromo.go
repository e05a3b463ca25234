// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package chromo converts chromosome labels such as "chr1", "X" or "MT" into
// the integer codes used throughout deepcpg2.
//
// Autosomes map to their own number, X, Y and the mitochondrial genome map to
// 100, 101 and 102, and anything else maps to Unknown (0).
package chromo

import (
	"strconv"
	"strings"
)

// ID is a canonical chromosome code.
type ID int32

const (
	// Unknown is the code for labels that are not recognized.
	Unknown ID = 0
	// X is the code for chromosome X.
	X ID = 100
	// Y is the code for chromosome Y.
	Y ID = 101
	// MT is the code for the mitochondrial genome ("MT" or "M").
	MT ID = 102
)

const chrPrefix = "chr"

// String renders the id as a label that ToInt maps back to the same id.
func (id ID) String() string {
	switch id {
	case Unknown:
		return "unknown"
	case X:
		return "X"
	case Y:
		return "Y"
	case MT:
		return "MT"
	}
	return strconv.Itoa(int(id))
}

// isDigits reports whether s is a nonempty run of ASCII decimal digits.
func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ToInt maps a chromosome label to its ID. The label is matched
// case-insensitively and is not stripped of a "chr" prefix; use FormatID for
// that.  ToInt never fails: unrecognized labels, and numbers that do not fit
// an ID, map to Unknown.
func ToInt(label string) ID {
	switch l := strings.ToLower(label); {
	case l == "x":
		return X
	case l == "y":
		return Y
	case l == "mt" || l == "m":
		return MT
	case isDigits(l):
		n, err := strconv.ParseInt(l, 10, 32)
		if err != nil {
			return Unknown
		}
		return ID(n)
	}
	return Unknown
}

// Canonical normalizes a label of any supported type.  An ID or a Go integer
// is returned unchanged, a string goes through ToInt, and every other type
// yields Unknown.
func Canonical(label interface{}) ID {
	switch v := label.(type) {
	case ID:
		return v
	case int:
		return ID(v)
	case int32:
		return ID(v)
	case int64:
		return ID(v)
	case string:
		return ToInt(v)
	}
	return Unknown
}

// Format lower-cases label and removes a leading "chr".  FormatID(l) is
// equivalent to ToInt(Format(l)).
func Format(label string) string {
	return strings.TrimPrefix(strings.ToLower(label), chrPrefix)
}

// FormatID returns the ID of a label that may carry a "chr" prefix, e.g.
// "chr1" -> 1, "chrX" -> X.
func FormatID(label string) ID {
	return ToInt(Format(label))
}

// FormatAll applies FormatID to each label.  The result has the same length
// and order as labels.
func FormatAll(labels []string) []ID {
	ids := make([]ID, len(labels))
	for i, l := range labels {
		ids[i] = FormatID(l)
	}
	return ids
}

// FormatAllNames applies Format to each label.
func FormatAllNames(labels []string) []string {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = Format(l)
	}
	return names
}
