// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Dmtx encodes Data Matrix symbols.
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"github.com/unixdj/datamatrix"
	"github.com/unixdj/datamatrix/coding"
	"github.com/unixdj/datamatrix/split"
)

var g = struct {
	scale   int             // scale
	border  int             // quiet zone
	width   int             // image width for -w
	palette *[2]color.Color // palette
	rev     bool            // reverse colours
	fn      string          // filename
	format  int             // output file format
	cx      int             // randr source X coordinate index in inc
	inc     [2]int          // randr source X,Y coordinate increments
	bg, fg  rgba            // colour
	colSet  bool            // colour set
	latin1  bool            // Latin-1 input conversion
	binary  bool            // 8 bit input
	upper   bool            // uppercase
	shape   coding.Shape    // symbol shape
}{
	inc: [2]int{1, 1},
	bg:  rgba{0xff, 0xff, 0xff, 0xff},
	fg:  rgba{0x00, 0x00, 0x00, 0xff},
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "Data Matrix (ECC200) generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults: 7 bit ASCII input, smallest symbol of
any shape.

`)
	cl.PrintOptions(w)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`dmtx version 0.1.0
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

func flip() {
	g.inc[0] = -g.inc[0]
}

func rotate() {
	g.cx ^= 1
	m := g.inc[0] * g.inc[1]
	g.inc[0] *= m
	g.inc[1] *= -m
}

type rgba struct {
	R, G, B, A uint8
}

func (c *rgba) String() string {
	if *c == (rgba{0x00, 0x00, 0x00, 0xff}) {
		return "black"
	} else if *c == (rgba{0xff, 0xff, 0xff, 0xff}) {
		return "white"
	} else if c.A == 0xff {
		return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	} else {
		return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
}

func (c *rgba) Set(s string, _ getopt.Option) error {
	g.colSet = true
	if v, ok := colornames.Map[strings.ToLower(strings.ReplaceAll(s, " ", ""))]; ok {
		*c = rgba(v)
		return nil
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("%q: bad colour spec", s)
	}
	switch len(s) {
	case 3:
		n = n<<4 | 0xf
		fallthrough
	case 4:
		var nn uint64
		for i := 0; i < 4; i++ {
			nn <<= 8
			nn |= n >> 12 & 0xf * 0x11
			n <<= 4
		}
		n = nn
	case 6:
		n = n<<8 | 0xff
	case 8:
	default:
		return fmt.Errorf("%q: bad colour spec", s)
	}
	c.R, c.G, c.B, c.A = uint8(n>>24), uint8(n>>16), uint8(n>>8), uint8(n)
	return nil
}

var formats = []string{
	"png", "pngi", "pbm", "pbmi", "eps", "epsi",
	"utf8", "utf8i", "ascii", "asciii",
}

var encoders = [...]func(*datamatrix.Code, io.Writer) error{
	encodePNG,
	(*datamatrix.Code).EncodePBM,
	eps,
	func(c *datamatrix.Code, w io.Writer) error {
		_, err := fmt.Fprint(w, c)
		return err
	},
	func(c *datamatrix.Code, w io.Writer) error {
		return c.EncodeText(w, "XX", "  ")
	},
}

var shapes = []string{"any", "square", "rectangle"}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.FlagLong(&g.bg, "background", 'B', `background colour; see -F`,
		"RGB[A]|name")
	getopt.FlagLong(&g.fg, "foreground", 'F', `foreground colour `+
		`as 3, 4, 6 or 8 hex digits or SVG colour name; `+
		`only for types png[i] and eps[i]`, "RGB[A]|name")
	getopt.Flag(opt(flip), 'f', `flip symbol horizontally; `+
		`to flip vertically, use "-frr"`).SetFlag()
	getopt.Flag(opt(rotate), 'r', `rotate symbol 90° counterclockwise; `+
		`-r and -f may be given multiple times, `+
		`order matters: "-fr" = "-rfrr" = "-rrrf"`).SetFlag()
	getopt.Flag(&g.latin1, '1', "convert UTF-8 input to Latin-1")
	getopt.Flag(&g.binary, '8', "encode input bytes as is")
	getopt.Flag(&g.upper, 'i', `ignore case, convert input to uppercase`)
	getopt.Flag(&g.border, 'm', `quiet zone modules [1]`, "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	shape := getopt.Enum('S', shapes, "any",
		"symbol shape, one of: "+strings.Join(shapes, ", "), "shape")
	scale := getopt.Unsigned('s', 4,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 28}),
		`image pixels (type eps[i]: points) per module; `+
			`ignored for types utf8[i] and ascii[i]`, "scale")
	width := getopt.Unsigned('w', 0,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 0, Max: 1 << 16}),
		`scale type png[i] images to the given width in pixels, `+
			`overriding -s`, "width")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if g.latin1 && g.binary {
		fmt.Fprintln(os.Stderr, "-1 and -8 are incompatible")
		usage()
	}
	g.scale = int(*scale)
	g.width = int(*width)
	for i, v := range shapes {
		if *shape == v {
			g.shape = coding.Shape(i)
		}
	}
	if !getopt.IsSet('m') {
		g.border = -1
	}
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(os.Stdout.Fd()) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
	if g.colSet {
		g.palette = &[2]color.Color{color.RGBA(g.bg), color.RGBA(g.fg)}
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}

	o := datamatrix.Options{Shape: g.shape}
	switch {
	case g.latin1:
		o.Charset = split.Latin1
	case g.binary:
		o.Charset = split.Binary
	}
	c, err := datamatrix.EncodeText(s, &o)
	if err != nil {
		log.Fatalln(err)
	}
	write(c)
}

func write(c *datamatrix.Code) {
	open := g.fn != ""
	var w = os.Stdout
	if open {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	c = randr(c)
	c.Scale = g.scale
	c.Palette = g.palette
	c.Reverse = g.rev
	if g.border >= 0 {
		c.Border = g.border
	}
	err := encoders[g.format](c, w)
	if open && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// randr rotates and reflects c.
func randr(c *datamatrix.Code) *datamatrix.Code {
	cx, inc := g.cx, g.inc
	if cx == 0 && inc == [2]int{1, 1} {
		return c
	}
	dim := [2]int{c.Cols, c.Rows}
	cols, rows := dim[cx], dim[cx^1]
	stride := (cols + 7) / 8
	b := make([]byte, 0, stride*rows)
	// first source coordinate along an axis of n modules
	first := func(n, inc int) int {
		if inc < 0 {
			return n - 1
		}
		return 0
	}
	var coord [2]int
	coord[cx^1] = first(rows, inc[1])
	for y := 0; y < rows; y++ {
		coord[cx] = first(cols, inc[0])
		var bb byte
		for x := 0; x < cols; x++ {
			bb <<= 1
			if c.Black(coord[0], coord[1]) {
				bb |= 1
			}
			if x&7 == 7 {
				b = append(b, bb)
			}
			coord[cx] += inc[0]
		}
		if cols&7 != 0 {
			b = append(b, bb<<(8-cols&7))
		}
		coord[cx^1] += inc[1]
	}
	c.Bitmap, c.Cols, c.Rows, c.Stride = b, cols, rows, stride
	return c
}

// encodePNG writes c as PNG, scaled to g.width pixels if set.
func encodePNG(c *datamatrix.Code, w io.Writer) error {
	if g.width == 0 {
		return c.EncodePNG(w)
	}
	c.Scale = max(g.width/(c.Cols+2*c.Border), 1)
	src := c.Image()
	sr := src.Bounds()
	h := (g.width*sr.Dy() + sr.Dx()/2) / sr.Dx()
	dst := image.NewPaletted(image.Rect(0, 0, g.width, max(h, 1)),
		src.ColorModel().(color.Palette))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, sr, draw.Src, nil)
	var b bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&b, dst); err != nil {
		return err
	}
	_, err := b.WriteTo(w)
	return err
}

func eps(c *datamatrix.Code, w io.Writer) error {
	const midx, midy = 306, 396
	cols, rows := c.Cols, c.Rows
	scale := c.Scale
	bord := c.Border
	xorig := (midx*2 - (cols+2*bord)*scale) / 2
	yorig := (midy*2 - (rows+2*bord)*scale) / 2
	fmt.Fprintf(w, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: dmtx https://github.com/unixdj/datamatrix
%%%%Title: Data Matrix %s
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		c.Size, xorig-1, yorig-1, midx*2-xorig, midy*2-yorig,
		midx-float64(cols*scale)/2, midy+float64((rows-1)*scale)/2-1,
		scale)
	if rev := c.Reverse; rev || g.colSet {
		bg, fg := g.bg, g.fg
		if rev {
			bg, fg = fg, bg
		}
		fmt.Fprintf(w, `%.3g %.3g %.3g setrgbcolor
%d %g %d %d rectfill
%.3g %.3g %.3g setrgbcolor
`,
			float64(bg.R)/0xff, float64(bg.G)/0xff, float64(bg.B)/0xff,
			-bord, float64(-bord)-0.5, cols+2*bord, rows+2*bord,
			float64(fg.R)/0xff, float64(fg.G)/0xff, float64(fg.B)/0xff)
	}
	fmt.Fprintln(w, "newpath 0 0 moveto")
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; {
			s := x
			for x < cols && !c.Black(x, y) {
				x++
			}
			if x == cols {
				break
			}
			b := x
			for x < cols && c.Black(x, y) {
				x++
			}
			fmt.Fprintf(w, "%d %d p ", x-b, b-s)
		}
		fmt.Fprintln(w, "r")
	}
	_, err := io.WriteString(w, "stroke grestore\nend\n%%Trailer\n")
	return err
}
