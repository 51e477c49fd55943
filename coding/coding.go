// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level ECC200 Data Matrix coding
// details: the symbol size table, encodation scheme packing, padding,
// Reed-Solomon error correction and module placement.
package coding // import "github.com/unixdj/datamatrix/coding"

import (
	"errors"
	"fmt"

	"github.com/unixdj/datamatrix/gf256"
)

var (
	// ErrCapacity is returned when data does not fit in the largest
	// admissible symbol.
	ErrCapacity = errors.New("datamatrix: data exceeds symbol capacity")

	// ErrShape is returned for an invalid Shape.
	ErrShape = errors.New("datamatrix: invalid shape")

	// ErrSize is returned for an invalid Size.
	ErrSize = errors.New("datamatrix: invalid size")

	// ErrInvariant is returned when the data codewords handed to
	// error correction do not match the symbol capacity.  It
	// indicates a defect in the caller.
	ErrInvariant = errors.New("datamatrix: data codeword count mismatch")

	// ErrPlacement is returned when the codewords handed to placement
	// do not fill the data regions exactly.  It indicates a defect in
	// the caller.
	ErrPlacement = errors.New("datamatrix: placement overflow")
)

// Field is the field for ECC200 error correction.
var Field = gf256.NewField(0x12d, 2)

// Special codewords.
const (
	Pad            = 129 // first pad codeword
	DigitPair      = 130 // ASCII digit pairs start here
	LatchC40       = 230
	LatchBase256   = 231
	UpperShift     = 235 // ASCII: next codeword encodes a byte 128-255
	LatchX12       = 238
	LatchText      = 239
	LatchEDIFACT   = 240
	Unlatch        = 254 // C40, Text and X12: return to ASCII
	UnlatchEDIFACT = 31  // EDIFACT: 6 bit value returning to ASCII
)

// CharError reports a character that cannot be encoded.
type CharError struct {
	Offset int  // byte offset in the input
	Char   rune // offending character or byte
}

func (e *CharError) Error() string {
	return fmt.Sprintf("datamatrix: character %U at offset %d not encodable",
		e.Char, e.Offset)
}

// SegmentError represents a Segment not encodable in its Scheme.
type SegmentError Segment

func (e SegmentError) Error() string {
	if e.Scheme.IsValid() {
		return fmt.Sprintf("datamatrix: non-%s string %#q", e.Scheme, e.Text)
	}
	return fmt.Sprintf("datamatrix: invalid scheme %d", int(e.Scheme))
}
