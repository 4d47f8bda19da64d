package quadtree

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/mosaic/rimage"
)

// ErrInvalidDimensions matches every InvalidDimensionsError with errors.Is.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// InvalidDimensionsError is returned when the source grid is empty, not square or its edge is not
// a power of two. No tree is built in that case.
type InvalidDimensionsError struct {
	Width, Height int
}

// NewInvalidDimensionsError is used when a grid cannot be split into 2x2 blocks all the way down.
func NewInvalidDimensionsError(width, height int) error {
	return &InvalidDimensionsError{Width: width, Height: height}
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("%s %dx%d: image must be square with a power of two edge length", ErrInvalidDimensions, e.Width, e.Height)
}

// Is reports whether target is ErrInvalidDimensions.
func (e *InvalidDimensionsError) Is(target error) bool {
	return target == ErrInvalidDimensions
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// checkDimensions validates a row major grid and returns its edge length.
func checkDimensions(grid [][]rimage.Color) (int, error) {
	height := len(grid)
	if height == 0 {
		return 0, NewInvalidDimensionsError(0, 0)
	}
	for _, row := range grid {
		if len(row) != height {
			return 0, NewInvalidDimensionsError(len(row), height)
		}
	}
	if !isPowerOfTwo(height) {
		return 0, NewInvalidDimensionsError(height, height)
	}
	return height, nil
}
