// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package datamatrix encodes ECC200 Data Matrix symbols.

Text is split into segments by package split, encoded into codewords,
padded and protected by Reed-Solomon error correction, then placed in
the smallest symbol of the requested shape by package coding.  The
resulting Code can be rendered as an image, PNG, PBM or text.
*/
package datamatrix // import "github.com/unixdj/datamatrix"

import (
	"errors"
	"image/color"

	"github.com/unixdj/datamatrix/coding"
	"github.com/unixdj/datamatrix/split"
)

var (
	// ErrCapacity is returned when the text does not fit in the
	// largest symbol of the requested shape.
	ErrCapacity = coding.ErrCapacity

	ErrArgs       = errors.New("datamatrix: invalid arguments")
	ErrLargeImage = errors.New("datamatrix: image too large")
)

// Options control encoding.  The zero value encodes 7 bit ASCII text
// in a symbol of any shape.
type Options struct {
	Charset split.Charset // input conversion
	Shape   coding.Shape  // symbol shape
}

// Encode returns an encoding of ASCII text in the smallest square or
// rectangular symbol.
func Encode(text string) (*Code, error) { return EncodeText(text, nil) }

// EncodeText returns an encoding of text with the given options.  A
// nil opt is equivalent to the zero Options.  Characters not in the
// charset are reported as a *coding.CharError.
func EncodeText(text string, opt *Options) (*Code, error) {
	var o Options
	if opt != nil {
		o = *opt
	}
	segs, err := split.Text(text, o.Charset)
	if err != nil {
		return nil, err
	}
	return EncodeSegments(o.Shape, segs...)
}

// EncodeSegments returns an encoding of the segments in the smallest
// symbol of the given shape.
func EncodeSegments(shape coding.Shape, segs ...coding.Segment) (*Code, error) {
	var b coding.Codewords
	if err := b.Write(segs...); err != nil {
		return nil, err
	}
	s, err := b.Select(shape)
	if err != nil {
		return nil, err
	}
	if err := b.AddCheckBytes(s); err != nil {
		return nil, err
	}
	p, err := coding.NewPlan(s)
	if err != nil {
		return nil, err
	}
	g, err := p.Place(b.Bytes())
	if err != nil {
		return nil, err
	}
	return newCode(g, s), nil
}

// A Code is a rectangular pixel grid.
// It implements image.Image and direct PNG, PBM and text encoding.
type Code struct {
	Bitmap  []byte          // 1 is black, 0 is white
	Rows    int             // number of pixels vertically
	Cols    int             // number of pixels horizontally
	Stride  int             // number of bytes per row
	Size    coding.Size     // symbol size
	Scale   int             // number of image pixels per module
	Border  int             // quiet zone width in modules
	Palette *[2]color.Color // light and dark colours; nil for white, black
	Reverse bool            // exchange light and dark
}

func newCode(g *coding.Grid, s coding.Size) *Code {
	c := &Code{
		Rows:   g.Rows,
		Cols:   g.Cols,
		Stride: (g.Cols + 7) / 8,
		Size:   s,
		Scale:  8,
		Border: 1,
	}
	c.Bitmap = make([]byte, c.Stride*c.Rows)
	for y := 0; y < g.Rows; y++ {
		row := c.Bitmap[y*c.Stride:]
		for x := 0; x < g.Cols; x++ {
			if g.Dark(y, x) {
				row[x/8] |= 0x80 >> (x & 7)
			}
		}
	}
	return c
}

// Black returns true if the pixel at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Cols && 0 <= y && y < c.Rows &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// Grid returns the modules of the code.
func (c *Code) Grid() *coding.Grid {
	g := &coding.Grid{
		Rows:  c.Rows,
		Cols:  c.Cols,
		Cells: make([]coding.Module, c.Rows*c.Cols),
	}
	for y := 0; y < c.Rows; y++ {
		for x := 0; x < c.Cols; x++ {
			m := coding.Light
			if c.Black(x, y) {
				m = coding.Dark
			}
			g.Cells[y*c.Cols+x] = m
		}
	}
	return g
}

// isValid reports whether c can be rendered.
func (c *Code) isValid() bool {
	return c != nil && c.Rows > 0 && c.Cols > 0 &&
		c.Stride >= (c.Cols+7)/8 && len(c.Bitmap) >= c.Stride*c.Rows &&
		c.Scale > 0 && c.Border >= 0
}

// size returns the image dimensions in pixels.
func (c *Code) size() (w, h int) {
	return c.Scale * (c.Cols + 2*c.Border), c.Scale * (c.Rows + 2*c.Border)
}
