// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datamatrix

import (
	"bytes"
	"image/png"
	"io"
)

// maxPixels limits each image dimension.
const maxPixels = 32767 * 8

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// PNG returns a PNG image displaying the code, or nil if the code
// cannot be rendered.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if err := c.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// EncodePNG writes a PNG image displaying the code to w.  The image
// is written with a 1 bit palette.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	if wd, ht := c.size(); wd > maxPixels || ht > maxPixels {
		return ErrLargeImage
	}
	return pngEncoder.Encode(w, c.Image())
}
