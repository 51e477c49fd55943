// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datamatrix_test

import (
	"fmt"
	"log"
	"os"

	"github.com/unixdj/datamatrix"
	"github.com/unixdj/datamatrix/coding"
	"github.com/unixdj/datamatrix/split"
)

func ExampleEncode() {
	c, err := datamatrix.Encode("123456")
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(c.Size, c.Rows, c.Cols)
	// Output:
	// 10x10 10 10
}

func ExampleEncodeText() {
	c, err := datamatrix.EncodeText("Größe", &datamatrix.Options{
		Charset: split.Latin1,
		Shape:   coding.Rectangle,
	})
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(c.Size)
	// Output:
	// 8x32
}

func ExampleCode_EncodeText() {
	c, err := datamatrix.Encode("123456")
	if err != nil {
		log.Fatalln(err)
	}
	if err := c.EncodeText(os.Stdout, "#", "."); err != nil {
		log.Fatalln(err)
	}
	// Output:
	// ............
	// .#.#.#.#.#..
	// .##..#.##.#.
	// .##.....#...
	// .##...###.#.
	// .##....#....
	// .#.....####.
	// .###.##.....
	// .####.##..#.
	// .#..###.#...
	// .##########.
	// ............
}
