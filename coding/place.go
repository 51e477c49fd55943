// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"slices"
	"sync"
)

// A Module is the state of a symbol cell.
type Module byte

const (
	Unset Module = iota // not yet placed
	Light
	Dark
)

// A Grid is a matrix of modules stored in row-major order.
type Grid struct {
	Rows, Cols int
	Cells      []Module
}

// At returns the module at row, col, or Unset if out of bounds.
func (g *Grid) At(row, col int) Module {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Unset
	}
	return g.Cells[row*g.Cols+col]
}

// Dark reports whether the module at row, col is dark.
func (g *Grid) Dark(row, col int) bool { return g.At(row, col) == Dark }

// A Plan describes how to place codewords in a symbol of a given size.
type Plan struct {
	Size       Size // symbol size
	Rows, Cols int  // symbol dimensions

	bits    []int32  // cell of each codeword bit, most significant first
	pattern []Module // finder, alignment and fixed corner; Unset is data
}

// Plans, created the first time a size is used.
var plans [NumSizes]struct {
	once sync.Once
	p    *Plan
}

// NewPlan returns the Plan for s.  Plans are shared and immutable.
func NewPlan(s Size) (*Plan, error) {
	if !s.IsValid() {
		return nil, ErrSize
	}
	p := &plans[s]
	p.once.Do(func() { p.p = makePlan(s) })
	return p.p, nil
}

// Codewords returns the number of codewords the plan places.
func (p *Plan) Codewords() int { return len(p.bits) / 8 }

// Place returns the symbol with the codewords placed.  It returns
// ErrPlacement if cw does not fill the data regions exactly.
func (p *Plan) Place(cw []byte) (*Grid, error) {
	if len(cw)*8 != len(p.bits) {
		return nil, ErrPlacement
	}
	g := &Grid{Rows: p.Rows, Cols: p.Cols, Cells: slices.Clone(p.pattern)}
	for i, c := range cw {
		for j, cell := range p.bits[i*8 : i*8+8] {
			if c<<j&0x80 != 0 {
				g.Cells[cell] = Dark
			} else {
				g.Cells[cell] = Light
			}
		}
	}
	if slices.Contains(g.Cells, Unset) {
		return nil, ErrPlacement
	}
	return g, nil
}

// Read returns the codewords placed in g, or nil if g is not of the
// plan's size.
func (p *Plan) Read(g *Grid) []byte {
	if g.Rows != p.Rows || g.Cols != p.Cols || len(g.Cells) != len(p.pattern) {
		return nil
	}
	cw := make([]byte, len(p.bits)/8)
	for i, cell := range p.bits {
		if g.Cells[cell] == Dark {
			cw[i/8] |= 0x80 >> (i & 7)
		}
	}
	return cw
}

// makePlan builds the plan for s.
func makePlan(s Size) *Plan {
	sp := s.Spec()
	nrow, ncol := sp.MappingSize()
	w := walker{nrow: nrow, ncol: ncol, cells: make([]int32, nrow*ncol)}
	w.walk()
	total := 8 * s.Codewords()
	if w.bit != total {
		panic("datamatrix: placement internal error")
	}

	p := &Plan{
		Size:    s,
		Rows:    sp.Rows,
		Cols:    sp.Cols,
		bits:    make([]int32, total),
		pattern: make([]Module, sp.Rows*sp.Cols),
	}
	rr, rc := sp.RegionRows, sp.RegionCols
	phys := func(row, col int) int {
		return (row/rr*(rr+2)+1+row%rr)*sp.Cols + col/rc*(rc+2) + 1 + col%rc
	}

	// Unused bottom right corner
	if w.cells[nrow*ncol-1] == 0 {
		fixed := [4]struct {
			row, col int
			m        Module
		}{
			{nrow - 1, ncol - 1, Dark},
			{nrow - 2, ncol - 2, Dark},
			{nrow - 1, ncol - 2, Light},
			{nrow - 2, ncol - 1, Light},
		}
		for _, v := range fixed {
			if w.cells[v.row*ncol+v.col] != 0 {
				panic("datamatrix: placement internal error")
			}
			w.cells[v.row*ncol+v.col] = -1
			p.pattern[phys(v.row, v.col)] = v.m
		}
	}
	for i, v := range w.cells {
		switch {
		case v > 0:
			p.bits[v-1] = int32(phys(i/ncol, i%ncol))
		case v == 0:
			panic("datamatrix: placement internal error")
		}
	}

	// Finder and alignment patterns
	vr, hr := sp.Regions()
	for i := 0; i < vr; i++ {
		top := i * (rr + 2)
		for j := 0; j < hr; j++ {
			left := j * (rc + 2)
			set := func(y, x int, dark bool) {
				m := Light
				if dark {
					m = Dark
				}
				p.pattern[(top+y)*sp.Cols+left+x] = m
			}
			for x := 0; x < rc+2; x++ {
				set(0, x, x&1 == 0)
				set(rr+1, x, true)
			}
			for y := 0; y < rr+2; y++ {
				set(y, rc+1, y&1 != 0)
				set(y, 0, true)
			}
		}
	}
	return p
}

// walker assigns codeword bits to the cells of the mapping matrix by
// the diagonal placement algorithm of ISO/IEC 16022 Annex F.
type walker struct {
	nrow, ncol int
	row, col   int     // cursor
	cells      []int32 // bit number + 1, 0 if unassigned
	bit        int     // next bit number
}

// Corner cases.  row is relative to nrow.  The corner is placed when
// the cursor is at row, col and bit ncol%8 of mask is set.  Template
// coordinates below 0 are relative to nrow and ncol.
var corners = [...]struct {
	row, col int
	mask     uint8
	tmpl     [8][2]int8
}{
	{0, 0, 0xff, [8][2]int8{
		{-1, 0}, {-1, 1}, {-1, 2}, {0, -2}, {0, -1}, {1, -1}, {2, -1}, {3, -1},
	}},
	{-2, 0, 0xee, [8][2]int8{
		{-3, 0}, {-2, 0}, {-1, 0}, {0, -4}, {0, -3}, {0, -2}, {0, -1}, {1, -1},
	}},
	{-2, 0, 0x10, [8][2]int8{
		{-3, 0}, {-2, 0}, {-1, 0}, {0, -2}, {0, -1}, {1, -1}, {2, -1}, {3, -1},
	}},
	{4, 2, 0x01, [8][2]int8{
		{-1, 0}, {-1, -1}, {0, -3}, {0, -2}, {0, -1}, {1, -3}, {1, -2}, {1, -1},
	}},
}

// Bit offsets of the standard codeword shape relative to its bottom
// right cell.
var utah = [8][2]int8{
	{-2, -2}, {-2, -1}, {-1, -2}, {-1, -1}, {-1, 0}, {0, -2}, {0, -1}, {0, 0},
}

// used reports whether the cell is assigned.  Cells out of bounds are
// treated as assigned.
func (w *walker) used(row, col int) bool {
	if row < 0 || row >= w.nrow || col < 0 || col >= w.ncol {
		return true
	}
	return w.cells[row*w.ncol+col] != 0
}

// module assigns the next bit to the cell at row, col, wrapping
// negative coordinates around the matrix.
func (w *walker) module(row, col int) {
	if row < 0 {
		row += w.nrow
		col += 4 - (w.nrow+4)%8
	}
	if col < 0 {
		col += w.ncol
		row += 4 - (w.ncol+4)%8
	}
	i := row*w.ncol + col
	if w.cells[i] != 0 {
		panic("datamatrix: placement internal error")
	}
	w.bit++
	w.cells[i] = int32(w.bit)
}

// shape places a codeword in the standard shape.
func (w *walker) shape(row, col int) {
	for _, d := range utah {
		w.module(row+int(d[0]), col+int(d[1]))
	}
}

// corner places a codeword in a corner template.
func (w *walker) corner(tmpl *[8][2]int8) {
	for _, d := range tmpl {
		row, col := int(d[0]), int(d[1])
		if row < 0 {
			row += w.nrow
		}
		if col < 0 {
			col += w.ncol
		}
		w.module(row, col)
	}
}

func (w *walker) walk() {
	w.row, w.col = 4, 0
	for w.row < w.nrow || w.col < w.ncol {
		for i := range corners {
			k := &corners[i]
			if w.row == w.nrow+k.row && w.col == k.col &&
				k.mask>>(w.ncol%8)&1 != 0 {
				w.corner(&k.tmpl)
			}
		}
		// Sweep up and right
		for {
			if w.row < w.nrow && w.col >= 0 && !w.used(w.row, w.col) {
				w.shape(w.row, w.col)
			}
			w.row -= 2
			w.col += 2
			if w.row < 0 || w.col >= w.ncol {
				break
			}
		}
		w.row++
		w.col += 3
		// Sweep down and left
		for {
			if w.row >= 0 && w.col < w.ncol && !w.used(w.row, w.col) {
				w.shape(w.row, w.col)
			}
			w.row += 2
			w.col -= 2
			if w.row >= w.nrow || w.col < 0 {
				break
			}
		}
		w.row += 3
		w.col++
	}
}
