// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// A Size identifies a standard ECC200 symbol size.  Sizes are
// numbered in increasing order of data capacity, square sizes before
// rectangular ones of equal capacity.
type Size int

// Spec describes the geometry and capacity of a symbol size.
type Spec struct {
	Rows, Cols             int // modules, including finder and alignment
	RegionRows, RegionCols int // modules in one data region
	DataCodewords          int // data capacity
	CheckCodewords         int // error correction codewords, all blocks
	Blocks                 int // interleaved Reed-Solomon blocks
}

// Symbol size table, ISO/IEC 16022 Table 7.
var stab = [...]Spec{
	{10, 10, 8, 8, 3, 5, 1},
	{12, 12, 10, 10, 5, 7, 1},
	{8, 18, 6, 16, 5, 7, 1},
	{14, 14, 12, 12, 8, 10, 1},
	{8, 32, 6, 14, 10, 11, 1},
	{16, 16, 14, 14, 12, 12, 1},
	{12, 26, 10, 24, 16, 14, 1},
	{18, 18, 16, 16, 18, 14, 1},
	{20, 20, 18, 18, 22, 18, 1},
	{12, 36, 10, 16, 22, 18, 1},
	{22, 22, 20, 20, 30, 20, 1},
	{16, 36, 14, 16, 32, 24, 1},
	{24, 24, 22, 22, 36, 24, 1},
	{26, 26, 24, 24, 44, 28, 1},
	{16, 48, 14, 22, 49, 28, 1},
	{32, 32, 14, 14, 62, 36, 1},
	{36, 36, 16, 16, 86, 42, 1},
	{40, 40, 18, 18, 114, 48, 1},
	{44, 44, 20, 20, 144, 56, 1},
	{48, 48, 22, 22, 174, 68, 1},
	{52, 52, 24, 24, 204, 84, 2},
	{64, 64, 14, 14, 280, 112, 2},
	{72, 72, 16, 16, 368, 144, 4},
	{80, 80, 18, 18, 456, 192, 4},
	{88, 88, 20, 20, 576, 224, 4},
	{96, 96, 22, 22, 696, 272, 4},
	{104, 104, 24, 24, 816, 336, 6},
	{120, 120, 18, 18, 1050, 408, 6},
	{132, 132, 20, 20, 1304, 496, 8},
	{144, 144, 22, 22, 1558, 620, 10},
}

// Size limits.
const (
	MinSize  Size = 0                   // 10x10
	MaxSize  Size = Size(len(stab) - 1) // 144x144
	NumSizes      = len(stab)           // number of standard sizes
	MaxData       = 1558                // data capacity of MaxSize
)

// IsValid reports whether s is a standard size.
func (s Size) IsValid() bool { return MinSize <= s && s <= MaxSize }

// Spec returns the description of s.  s must be valid.
func (s Size) Spec() Spec { return stab[s] }

// DataCodewords returns the data capacity of s in codewords.
func (s Size) DataCodewords() int { return stab[s].DataCodewords }

// Codewords returns the total number of codewords in s.
func (s Size) Codewords() int {
	return stab[s].DataCodewords + stab[s].CheckCodewords
}

// IsSquare reports whether s is a square size.
func (s Size) IsSquare() bool { return stab[s].Rows == stab[s].Cols }

func (s Size) String() string {
	if !s.IsValid() {
		return "Size(" + strconv.Itoa(int(s)) + ")"
	}
	return strconv.Itoa(stab[s].Rows) + "x" + strconv.Itoa(stab[s].Cols)
}

// Regions returns the number of data regions vertically and
// horizontally.
func (sp Spec) Regions() (v, h int) {
	return sp.Rows / (sp.RegionRows + 2), sp.Cols / (sp.RegionCols + 2)
}

// MappingSize returns the dimensions of the mapping matrix, that is,
// all data regions put together without their borders.
func (sp Spec) MappingSize() (nrow, ncol int) {
	v, h := sp.Regions()
	return v * sp.RegionRows, h * sp.RegionCols
}

// A Shape restricts symbol size selection.
type Shape int

const (
	AnyShape  Shape = iota // square or rectangular
	Square                 // square sizes only
	Rectangle              // rectangular sizes only
)

func (sh Shape) String() string {
	switch sh {
	case AnyShape:
		return "any"
	case Square:
		return "square"
	case Rectangle:
		return "rectangle"
	}
	return "Shape(" + strconv.Itoa(int(sh)) + ")"
}

// Accepts reports whether the shape admits s.
func (sh Shape) Accepts(s Size) bool {
	switch sh {
	case Square:
		return s.IsSquare()
	case Rectangle:
		return !s.IsSquare()
	}
	return true
}

// Select returns the smallest size of the given shape holding n data
// codewords.
func Select(n int, shape Shape) (Size, error) {
	if shape < AnyShape || shape > Rectangle {
		return -1, ErrShape
	}
	for s := MinSize; s <= MaxSize; s++ {
		if stab[s].DataCodewords >= n && shape.Accepts(s) {
			return s, nil
		}
	}
	return -1, ErrCapacity
}

// SizeOf returns the size with the given dimensions.
func SizeOf(rows, cols int) (Size, bool) {
	for s := range stab {
		if stab[s].Rows == rows && stab[s].Cols == cols {
			return Size(s), true
		}
	}
	return -1, false
}
