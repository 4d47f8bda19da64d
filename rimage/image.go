package rimage

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	// register the additional formats mosaics can be made from.
	_ "github.com/lmittmann/ppm"
	_ "github.com/xfmoulet/qoi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadImageFromFile decodes the image at path, honouring any EXIF orientation.
func ReadImageFromFile(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode image %q", path)
	}
	return img, nil
}

// WriteImageToFile encodes img to path. The format is picked from the file extension.
func WriteImageToFile(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "cannot write image %q", path)
	}
	return nil
}

// ColorGrid copies img into a row major grid, so grid[y][x] is the pixel at
// (Bounds().Min.X+x, Bounds().Min.Y+y).
func ColorGrid(img image.Image) [][]Color {
	bounds := img.Bounds()
	grid := make([][]Color, bounds.Dy())
	for y := range grid {
		row := make([]Color, bounds.Dx())
		for x := range row {
			row[x] = NewColorFromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
		grid[y] = row
	}
	return grid
}

// GridImage is the inverse of ColorGrid for a rectangular grid.
func GridImage(grid [][]Color) *image.NRGBA {
	height := len(grid)
	width := 0
	if height > 0 {
		width = len(grid[0])
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y, row := range grid {
		for x, c := range row {
			img.Set(x, y, c)
		}
	}
	return img
}
