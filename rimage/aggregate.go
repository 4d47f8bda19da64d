package rimage

// AggregateFunc derives one representative colour from the four colours of a 2x2 block, given in
// top-left, top-right, bottom-left, bottom-right order.
type AggregateFunc func(colors [4]Color) Color

// AverageHSB converts each colour to hue/saturation/brightness, takes the arithmetic mean of each
// channel independently and converts the result back to RGB.
//
// Hue is averaged as a plain scalar. Hues on either side of the 0/1 wrap (reds) are not treated as
// neighbours, so averaging a red with a magenta-red lands near cyan.
func AverageHSB(colors [4]Color) Color {
	var h, s, b float64
	for _, c := range colors {
		ch, cs, cb := c.HSB()
		h += ch
		s += cs
		b += cb
	}
	n := float64(len(colors))
	return NewColorFromHSB(h/n, s/n, b/n)
}
