// Package rimage holds the colour model, colour aggregation and image file helpers used to build
// and render mosaics.
package rimage

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Color is a packed 24 bit RGB value laid out as 0xRRGGBB.
type Color uint32

// NewColor packs the given 8 bit channels.
func NewColor(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// NewColorFromColor converts any color.Color. Alpha is discarded after un-premultiplying.
func NewColorFromColor(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	nc, _ := color.NRGBAModel.Convert(c).(color.NRGBA)
	return NewColor(nc.R, nc.G, nc.B)
}

// NewColorFromHSB converts hue, saturation and brightness fractions back to packed RGB.
// Channels are rounded to the nearest 8 bit value.
func NewColorFromHSB(h, s, b float64) Color {
	cc := colorful.Hsv(h*360, s, b)
	r, g, bl := cc.Clamped().RGB255()
	return NewColor(r, g, bl)
}

// NewColorFromHex parses a "#rrggbb" string.
func NewColorFromHex(hex string) (Color, error) {
	var r, g, b uint8
	n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	if n != 3 || err != nil {
		return 0, errors.Errorf("couldn't parse hex (%s) n: %d err: %v", hex, n, err)
	}
	return NewColor(r, g, b), nil
}

// RGB255 unpacks the 8 bit channels.
func (c Color) RGB255() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// HSB returns hue, saturation and brightness, each as a fraction in [0, 1).
// Hue is the HSV hue angle divided by 360.
func (c Color) HSB() (h, s, b float64) {
	h, s, b = c.toColorful().Hsv()
	return h / 360, s, b
}

func (c Color) toColorful() colorful.Color {
	r, g, b := c.RGB255()
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// Hex formats the colour as "#rrggbb".
func (c Color) Hex() string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("#%.2x%.2x%.2x", r, g, b)
}

func (c Color) String() string {
	h, s, b := c.HSB()
	return fmt.Sprintf("%s (%4.3f,%4.2f,%4.2f)", c.Hex(), h, s, b)
}

// RGBA implements color.Color. The colour is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB255()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	a = 0xffff
	return
}

// Well known colours.
var (
	Red    = NewColor(255, 0, 0)
	Green  = NewColor(0, 255, 0)
	Blue   = NewColor(0, 0, 255)
	White  = NewColor(255, 255, 255)
	Gray   = NewColor(128, 128, 128)
	Black  = NewColor(0, 0, 0)
	Yellow = NewColor(255, 255, 0)
	Cyan   = NewColor(0, 255, 255)
	Purple = NewColor(255, 0, 255)
)
