// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and Reed-Solomon check byte generation.
package gf256 // import "github.com/unixdj/datamatrix/gf256"

import "strconv"

// A Field represents an instance of GF(256) defined by a specific
// polynomial.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Data Matrix field is NewField(0x12d, 2).
//
// The choice of generator α only matters for Exp and Log.  The field
// panics if α does not generate the whole multiplicative group.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: invalid generator " + strconv.Itoa(α) +
				" for polynomial " + strconv.Itoa(poly))
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.log[0] = 255
	return &f
}

// mul returns the product x*y mod poly, a GF(256) multiplication.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte { return x ^ y }

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-f.log[x]]
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// Eval evaluates the polynomial p, coefficients given highest degree
// first, at x.
func (f *Field) Eval(p []byte, x byte) byte {
	var y byte
	for _, c := range p {
		y = f.Mul(y, x) ^ c
	}
	return y
}

// Gen returns the generator polynomial of degree e with consecutive
// roots α^first, ..., α^(first+e-1), highest degree first.  The
// leading coefficient is always 1.
func (f *Field) Gen(e, first int) []byte {
	p := make([]byte, e+1)
	p[e] = 1
	for i := 0; i < e; i++ {
		// p *= x + α^(first+i)
		c := f.Exp(first + i)
		for j := 0; j < e; j++ {
			p[j] = f.Mul(p[j], c) ^ p[j+1]
		}
		p[e] = f.Mul(p[e], c)
	}
	return p
}

// An RSEncoder implements Reed-Solomon encoding
// over a given field using a given number of check bytes.
type RSEncoder struct {
	f    *Field
	c    int
	gen  []byte
	lgen []byte
}

// NewRSEncoder returns a new Reed-Solomon encoder over the given field
// with c check bytes and generator roots starting at α^first.  Data
// Matrix uses first == 1.
func NewRSEncoder(f *Field, c, first int) *RSEncoder {
	gen := f.Gen(c, first)
	lgen := make([]byte, len(gen))
	for i, v := range gen {
		lgen[i] = f.log[v]
	}
	return &RSEncoder{f: f, c: c, gen: gen, lgen: lgen}
}

// Check returns the number of check bytes.
func (rs *RSEncoder) Check() int { return rs.c }

// ECC writes to check the error correcting code bytes
// for data using the given Reed-Solomon parameters.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) < rs.c {
		panic("gf256: invalid check byte length")
	}
	if rs.c == 0 {
		return
	}
	check = check[:rs.c]
	clear(check)
	f := rs.f
	lgen := rs.lgen[1:]
	for _, d := range data {
		fb := d ^ check[0]
		copy(check, check[1:])
		check[rs.c-1] = 0
		if fb == 0 {
			continue
		}
		lfb := int(f.log[fb])
		for i, lg := range lgen {
			if rs.gen[i+1] != 0 {
				check[i] ^= f.exp[lfb+int(lg)]
			}
		}
	}
}
