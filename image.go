// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datamatrix

import (
	"image"
	"image/color"
)

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

// Image returns an Image displaying the code, quiet zone included.
// The image is an image.PalettedImage with a two colour palette.
func (c *Code) Image() image.Image {
	return &codeImage{c, c.palette()}
}

// palette returns the light and dark colours.
func (c *Code) palette() color.Palette {
	if c.Palette != nil {
		return color.Palette{c.Palette[0], c.Palette[1]}
	}
	return color.Palette{whiteColor, blackColor}
}

// codeImage implements image.PalettedImage.
type codeImage struct {
	*Code
	pal color.Palette
}

func (c *codeImage) Bounds() image.Rectangle {
	w, h := c.size()
	return image.Rect(0, 0, w, h)
}

// ColorIndexAt returns 1 for dark pixels and 0 for light ones.
func (c *codeImage) ColorIndexAt(x, y int) uint8 {
	b := c.Border
	if c.Black(x/c.Scale-b, y/c.Scale-b) != c.Reverse {
		return 1
	}
	return 0
}

func (c *codeImage) At(x, y int) color.Color {
	return c.pal[c.ColorIndexAt(x, y)]
}

func (c *codeImage) ColorModel() color.Model {
	return c.pal
}
