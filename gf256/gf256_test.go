// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var field = NewField(0x12d, 2)

func TestFieldExpLog(t *testing.T) {
	seen := make(map[byte]bool)
	for e := 0; e < 255; e++ {
		x := field.Exp(e)
		require.NotZero(t, x)
		require.False(t, seen[x], "α^%d repeats", e)
		seen[x] = true
		require.Equal(t, e, field.Log(x))
	}
	require.Equal(t, byte(0x2d), field.Exp(8))
	require.Equal(t, byte(228), field.Exp(15))
	require.Equal(t, -1, field.Log(0))
}

func TestFieldMulInv(t *testing.T) {
	for x := 1; x < 256; x++ {
		inv := field.Inv(byte(x))
		require.Equal(t, byte(1), field.Mul(byte(x), inv), "x=%d", x)
		for y := 0; y < 256; y += 17 {
			require.Equal(t, byte(mul(x, y, 0x12d)),
				field.Mul(byte(x), byte(y)))
		}
	}
	require.Zero(t, field.Mul(0, 7))
	require.Zero(t, field.Inv(0))
}

func TestFieldAdd(t *testing.T) {
	for x := 0; x < 256; x++ {
		require.Zero(t, field.Add(byte(x), byte(x)))
		require.Equal(t, byte(x), field.Add(byte(x), 0))
		for y := 0; y < 256; y += 13 {
			z := byte(y*7 + 3)
			require.Equal(t,
				field.Add(field.Mul(byte(x), byte(y)), field.Mul(byte(x), z)),
				field.Mul(byte(x), field.Add(byte(y), z)))
		}
	}
	// α^8 = α^5 + α^3 + α^2 + 1
	require.Equal(t, field.Exp(8),
		field.Add(field.Add(field.Exp(5), field.Exp(3)), field.Add(field.Exp(2), 1)))
}

func TestNewFieldInvalid(t *testing.T) {
	require.Panics(t, func() { NewField(0x2d, 2) })
	require.Panics(t, func() { NewField(0x12d, 1) })
}

func TestGen(t *testing.T) {
	// ISO/IEC 16022 Annex E, 5 check codewords.
	require.Equal(t, []byte{1, 62, 111, 15, 48, 228}, field.Gen(5, 1))
	for _, n := range []int{7, 10, 11, 12, 14, 18, 20, 24, 28, 36,
		42, 48, 56, 62, 68} {
		g := field.Gen(n, 1)
		require.Len(t, g, n+1)
		require.Equal(t, byte(1), g[0])
		for i := 1; i <= n; i++ {
			require.Zero(t, field.Eval(g, field.Exp(i)),
				"degree %d root α^%d", n, i)
		}
	}
}

func TestECCSyndromes(t *testing.T) {
	for _, c := range []int{5, 7, 28, 68} {
		rs := NewRSEncoder(field, c, 1)
		require.Equal(t, c, rs.Check())
		data := make([]byte, 3*c)
		for i := range data {
			data[i] = byte(i*37 + c)
		}
		cw := append(data, make([]byte, c)...)
		rs.ECC(data, cw[len(data):])
		for i := 1; i <= c; i++ {
			require.Zero(t, field.Eval(cw, field.Exp(i)),
				"check %d syndrome %d", c, i)
		}
		// deterministic
		again := make([]byte, c)
		rs.ECC(data, again)
		require.Equal(t, cw[len(data):], again)
	}
}

func TestECCShortCheck(t *testing.T) {
	rs := NewRSEncoder(field, 5, 1)
	require.Panics(t, func() { rs.ECC([]byte{1}, make([]byte, 4)) })
}
