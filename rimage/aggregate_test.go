package rimage

import (
	"testing"

	"go.viam.com/test"
)

func TestAverageHSBUniform(t *testing.T) {
	for _, c := range []Color{Red, Blue, Gray, NewColor(12, 200, 77), White, Black} {
		test.That(t, AverageHSB([4]Color{c, c, c, c}), test.ShouldEqual, c)
	}
}

func TestAverageHSBChannelMeans(t *testing.T) {
	colors := [4]Color{
		NewColor(200, 40, 40),
		NewColor(180, 90, 30),
		NewColor(150, 150, 20),
		NewColor(100, 60, 10),
	}
	var h, s, b float64
	for _, c := range colors {
		ch, cs, cb := c.HSB()
		h += ch
		s += cs
		b += cb
	}

	got := AverageHSB(colors)
	test.That(t, got, test.ShouldEqual, NewColorFromHSB(h/4, s/4, b/4))

	gh, gs, gb := got.HSB()
	// 8 bit quantization of the result bounds the error
	test.That(t, gh, test.ShouldAlmostEqual, h/4, 0.01)
	test.That(t, gs, test.ShouldAlmostEqual, s/4, 0.01)
	test.That(t, gb, test.ShouldAlmostEqual, b/4, 0.01)
}

func TestAverageHSBThreeRedsOneBlue(t *testing.T) {
	got := AverageHSB([4]Color{Red, Red, Red, Blue})

	h, s, b := got.HSB()
	test.That(t, h, test.ShouldAlmostEqual, (0+0+0+2.0/3)/4)
	test.That(t, s, test.ShouldAlmostEqual, 1.0)
	test.That(t, b, test.ShouldAlmostEqual, 1.0)
	// hue 1/6 sits three times closer to red than to blue
	test.That(t, got, test.ShouldEqual, Yellow)
}

func TestAverageHSBOrderIndependent(t *testing.T) {
	a, b, c, d := NewColor(1, 2, 3), NewColor(90, 10, 200), NewColor(250, 250, 0), NewColor(30, 60, 90)
	test.That(t, AverageHSB([4]Color{a, b, c, d}), test.ShouldEqual, AverageHSB([4]Color{d, c, b, a}))
}

// Hue is averaged linearly, so two reds either side of the wrap point average to a hue near 0.5.
func TestAverageHSBHueWrapQuirk(t *testing.T) {
	magentaRed := NewColor(255, 0, 64)
	mh, _, _ := magentaRed.HSB()
	test.That(t, mh, test.ShouldBeGreaterThan, 0.95)

	got := AverageHSB([4]Color{Red, Red, magentaRed, magentaRed})
	h, _, _ := got.HSB()
	test.That(t, h, test.ShouldAlmostEqual, mh/2, 0.01)

	r, g, _ := got.RGB255()
	test.That(t, r, test.ShouldEqual, uint8(0))
	test.That(t, g, test.ShouldEqual, uint8(255))
}
