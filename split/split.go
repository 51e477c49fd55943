// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into Data Matrix encodation segments.

Split chooses encodation schemes greedily, consulting the look-ahead
test of ISO/IEC 16022 Annex P at the points where the current scheme
may be left:

	Scheme     Look-ahead consulted
	ASCII      before each character not part of a digit pair
	C40        when the number of values is a multiple of 3
	Text       when the number of values is a multiple of 3
	X12        when the number of values is a multiple of 3
	EDIFACT    after each group of 4 values
	Base256    after each byte

Schemes other than ASCII are only left for ASCII, which may latch
to another scheme at once.  Such latches produce no ASCII segment,
and adjacent segments in the same scheme are merged.
*/
package split // import "github.com/unixdj/datamatrix/split"

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/unixdj/datamatrix/coding"
)

// ErrCharset is returned for an invalid Charset.
var ErrCharset = errors.New("datamatrix: invalid charset")

// A Charset converts input text to the bytes encoded in the symbol.
type Charset int

// Predefined Charsets.
const (
	ASCII  Charset = iota // 7 bit ASCII only
	Latin1                // UTF-8 input encoded as ISO 8859-1
	Binary                // any bytes, as is
)

func (cs Charset) String() string {
	switch cs {
	case ASCII:
		return "ascii"
	case Latin1:
		return "latin-1"
	case Binary:
		return "binary"
	}
	return "Charset(" + strconv.Itoa(int(cs)) + ")"
}

// Transform returns text converted to the bytes to encode.  It returns
// a *coding.CharError for the first character not representable in
// the charset.
func (cs Charset) Transform(text string) (string, error) {
	switch cs {
	case ASCII:
		for i := 0; i < len(text); i++ {
			if text[i] >= utf8.RuneSelf {
				r, _ := utf8.DecodeRuneInString(text[i:])
				return "", &coding.CharError{Offset: i, Char: r}
			}
		}
		return text, nil
	case Latin1:
		for i, r := range text {
			if r > 0xff {
				return "", &coding.CharError{Offset: i, Char: r}
			}
		}
		return charmap.ISO8859_1.NewEncoder().String(text)
	case Binary:
		return text, nil
	}
	return "", ErrCharset
}

// Text converts text with cs and splits it.
func Text(text string, cs Charset) ([]coding.Segment, error) {
	s, err := cs.Transform(text)
	if err != nil {
		return nil, err
	}
	return Split(s), nil
}

// splitter accumulates segments of text.
type splitter struct {
	text  string
	segs  []coding.Segment
	start int // start of the last segment
}

// add appends text[start:end] in scheme sc, merging it with the last
// segment if the schemes match.
func (s *splitter) add(sc coding.Scheme, start, end int) {
	if start == end {
		return
	}
	if n := len(s.segs); n > 0 && s.segs[n-1].Scheme == sc {
		s.segs[n-1].Text = s.text[s.start:end]
		return
	}
	s.segs = append(s.segs, coding.Segment{Text: s.text[start:end], Scheme: sc})
	s.start = start
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// Split splits text, a string of bytes, into segments encoding it in
// as few codewords as the look-ahead test finds.  Concatenated, the
// segments' texts are text.  Each segment is valid in its scheme.
func Split(text string) []coding.Segment {
	s := splitter{text: text}
	mode := coding.ASCII
	for pos := 0; pos < len(text); {
		start, cur := pos, mode
		switch mode {
		case coding.ASCII:
		ascii:
			for pos < len(text) {
				if isDigit(text[pos]) && pos+1 < len(text) && isDigit(text[pos+1]) {
					pos += 2
					continue
				}
				if m := lookAhead(text, pos, coding.ASCII); m != coding.ASCII {
					mode = m
					break ascii
				}
				pos++
			}
		case coding.C40, coding.Text, coding.X12:
			n := 0
			for pos < len(text) {
				n += mode.ValueCount(text[pos])
				pos++
				if n%3 == 0 && lookAhead(text, pos, mode) != mode {
					break
				}
			}
			mode = coding.ASCII
		case coding.EDIFACT:
			for n := 1; pos < len(text); n++ {
				pos++
				if n%4 == 0 && lookAhead(text, pos, mode) != mode {
					break
				}
			}
			mode = coding.ASCII
		case coding.Base256:
			for pos < len(text) {
				pos++
				if lookAhead(text, pos, mode) != mode {
					break
				}
			}
			mode = coding.ASCII
		}
		s.add(cur, start, pos)
	}
	return s.segs
}
