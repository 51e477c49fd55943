// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split_test

import (
	"fmt"
	"log"

	"github.com/unixdj/datamatrix/coding"
	"github.com/unixdj/datamatrix/split"
)

func ExampleSplit() {
	for _, seg := range split.Split("123456ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		fmt.Printf("%-5s %q\n", seg.Scheme, seg.Text)
	}
	// Output:
	// ascii "123456"
	// c40   "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
}

func ExampleCharset_Transform() {
	s, err := split.Latin1.Transform("Größe")
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("%q\n", s)
	_, err = split.ASCII.Transform("Größe")
	fmt.Println(err)
	// Output:
	// "Gr\xf6\xdfe"
	// datamatrix: character U+00F6 at offset 2 not encodable
}

func ExampleText() {
	segs, err := split.Text("Größe", split.Latin1)
	if err != nil {
		log.Fatalln(err)
	}
	var b coding.Codewords
	if err := b.Write(segs...); err != nil {
		log.Fatalln(err)
	}
	s, err := b.Select(coding.AnyShape)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(b.Len(), "codewords in", s)
	// Output:
	// 7 codewords in 14x14
}
