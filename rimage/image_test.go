package rimage

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/lmittmann/ppm"
	"go.viam.com/test"
)

func checkerGrid() [][]Color {
	return [][]Color{
		{Red, Green, Blue, White},
		{Black, Gray, Yellow, Cyan},
		{Purple, NewColor(1, 2, 3), NewColor(100, 50, 25), Red},
		{Blue, Blue, Green, Green},
	}
}

func TestColorGridOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 12, 22))
	img.Set(10, 20, color.NRGBA{255, 0, 0, 255})
	img.Set(11, 20, color.NRGBA{0, 255, 0, 255})
	img.Set(10, 21, color.NRGBA{0, 0, 255, 255})
	img.Set(11, 21, color.NRGBA{255, 255, 255, 255})

	grid := ColorGrid(img)
	test.That(t, grid, test.ShouldResemble, [][]Color{{Red, Green}, {Blue, White}})
}

func TestImageFileRoundTrip(t *testing.T) {
	grid := checkerGrid()
	dir := t.TempDir()

	for _, name := range []string{"grid.png", "grid.bmp", "grid.tif"} {
		path := filepath.Join(dir, name)
		test.That(t, WriteImageToFile(path, GridImage(grid)), test.ShouldBeNil)

		img, err := ReadImageFromFile(path)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, img.Bounds().Dx(), test.ShouldEqual, 4)
		test.That(t, ColorGrid(img), test.ShouldResemble, grid)
	}
}

func TestReadPPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.ppm")
	f, err := os.Create(path)
	test.That(t, err, test.ShouldBeNil)
	src := GridImage(checkerGrid())
	// the encoder only takes RGBA images
	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	test.That(t, ppm.Encode(f, rgba), test.ShouldBeNil)
	test.That(t, f.Close(), test.ShouldBeNil)

	img, err := ReadImageFromFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ColorGrid(img), test.ShouldResemble, checkerGrid())
}

func TestReadImageFromFileErrors(t *testing.T) {
	_, err := ReadImageFromFile(filepath.Join(t.TempDir(), "missing.png"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing.png")

	err = WriteImageToFile(filepath.Join(t.TempDir(), "grid.unknown"), GridImage(checkerGrid()))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDrawRectangles(t *testing.T) {
	dc := gg.NewContext(8, 8)
	DrawRectangleFilled(dc, image.Rect(0, 0, 4, 8), Red)
	DrawRectangleFilled(dc, image.Rect(4, 0, 8, 8), Blue)

	img := dc.Image()
	test.That(t, NewColorFromColor(img.At(1, 4)), test.ShouldEqual, Red)
	test.That(t, NewColorFromColor(img.At(6, 4)), test.ShouldEqual, Blue)

	DrawRectangleEmpty(dc, image.Rect(0, 0, 8, 8), Black, 2)
	test.That(t, NewColorFromColor(dc.Image().At(0, 4)), test.ShouldEqual, Black)
	test.That(t, NewColorFromColor(dc.Image().At(3, 4)), test.ShouldEqual, Red)
}
