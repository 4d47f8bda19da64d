// Package config defines how a mosaic render is described on disk.
package config

import (
	"bytes"
	"encoding/json"
	"image"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/mosaic/rimage"
)

// DefaultOutlineColor frames cells when no outline colour is configured.
const DefaultOutlineColor = "#000000"

// Point is a canvas position written as [x, y].
type Point [2]int

// ImagePoint converts the point for use with the view package.
func (p Point) ImagePoint() image.Point {
	return image.Pt(p[0], p[1])
}

// Render describes one mosaic render: where the image comes from, where the result goes and
// which parts of the tree are revealed.
type Render struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	// Size is the canvas edge in pixels. Zero means the source image edge.
	Size int `json:"size,omitempty"`
	// Depth expands every node above it. Nil means the leaves.
	Depth *int `json:"depth,omitempty"`
	// Reveal replays pointer positions after Depth is applied.
	Reveal       []Point `json:"reveal,omitempty"`
	Outline      bool    `json:"outline,omitempty"`
	OutlineColor string  `json:"outline_color,omitempty"`
	Parallel     bool    `json:"parallel,omitempty"`
	Debug        bool    `json:"debug,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (config *Render) Validate(path string) error {
	if config.Input == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "input")
	}
	if config.Output == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "output")
	}
	if config.Size < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("size must not be negative, got %d", config.Size))
	}
	if config.Depth != nil && *config.Depth < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("depth must not be negative, got %d", *config.Depth))
	}
	if config.OutlineColor == "" {
		config.OutlineColor = DefaultOutlineColor
	}
	if _, err := rimage.NewColorFromHex(config.OutlineColor); err != nil {
		return utils.NewConfigValidationError(path+".outline_color", err)
	}
	return nil
}

// ParsedOutlineColor returns the outline colour. Only call it on a validated config.
func (config *Render) ParsedOutlineColor() rimage.Color {
	c, err := rimage.NewColorFromHex(config.OutlineColor)
	if err != nil {
		return rimage.Black
	}
	return c
}

// Read reads a render config from the given file, substituting environment variables first.
func Read(filePath string) (*Render, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config %q", filePath)
	}

	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a render config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader) (*Render, error) {
	var cfg Render
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %q as json", originalPath)
	}
	if err := cfg.Validate("render"); err != nil {
		return nil, err
	}
	return &cfg, nil
}
