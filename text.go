// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datamatrix

import (
	"bufio"
	"io"
	"strings"
)

// dark reports whether the module at (x,y) is drawn dark, counting
// from the top left corner of the quiet zone.
func (c *Code) dark(x, y int) bool {
	return c.Black(x-c.Border, y-c.Border) != c.Reverse
}

// EncodeText writes the code to w as text, one line per row of
// modules, each module written as dark or light.  The quiet zone is
// included and c.Scale is disregarded.
func (c *Code) EncodeText(w io.Writer, dark, light string) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	width, height := c.Cols+2*c.Border, c.Rows+2*c.Border
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s := light
			if c.dark(x, y) {
				s = dark
			}
			b.WriteString(s)
		}
		if err := b.WriteByte('\n'); err != nil {
			return err
		}
	}
	return b.Flush()
}

// halfBlocks are indexed by the top module times 2 plus the bottom.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// String returns the code drawn with Unicode half blocks, two rows of
// modules per line, dark modules in the foreground colour.
func (c *Code) String() string {
	if !c.isValid() {
		return ""
	}
	var b strings.Builder
	width, height := c.Cols+2*c.Border, c.Rows+2*c.Border
	b.Grow((width*3 + 1) * (height + 1) / 2)
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			i := 0
			if c.dark(x, y) {
				i = 2
			}
			if y+1 < height && c.dark(x, y+1) {
				i++
			}
			b.WriteString(halfBlocks[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
