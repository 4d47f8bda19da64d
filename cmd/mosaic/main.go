// Package main is the mosaic command line tool. It turns an image into a colour quadtree and
// renders or summarizes it.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/mosaic/config"
	"go.viam.com/mosaic/logging"
	"go.viam.com/mosaic/quadtree"
	"go.viam.com/mosaic/rimage"
	"go.viam.com/mosaic/view"
)

const (
	// Flags.
	flagConfig       = "config"
	flagDebug        = "debug"
	flagInput        = "input"
	flagOutput       = "output"
	flagSize         = "size"
	flagDepth        = "depth"
	flagReveal       = "reveal"
	flagOutline      = "outline"
	flagOutlineColor = "outline-color"
	flagParallel     = "parallel"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	var logger logging.Logger

	return &cli.App{
		Name:      "mosaic",
		Usage:     "build colour quadtrees from square images",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			logger = logging.NewLogger("mosaic")
			if c.Bool(flagDebug) {
				logger.SetLevel(logging.DEBUG)
			}
			logging.ReplaceGlobal(logger)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "render the tree, expanded to a depth and/or at pointer positions, as an image",
				UsageText: "mosaic render --input IN --output OUT [--depth D] [--reveal x,y ...] | mosaic render --config FILE",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:    flagConfig,
						Aliases: []string{"c"},
						Usage:   "load the render from JSON `FILE`; other flags are ignored",
					},
					&cli.PathFlag{
						Name:    flagInput,
						Aliases: []string{"i"},
						Usage:   "square, power of two sized source image",
					},
					&cli.PathFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   "where to write the rendered mosaic; format follows the extension",
					},
					&cli.IntFlag{
						Name:  flagSize,
						Usage: "canvas edge in pixels (default: source edge)",
					},
					&cli.IntFlag{
						Name:  flagDepth,
						Usage: "expand every node above this depth (default: full depth)",
					},
					&cli.GenericFlag{
						Name:  flagReveal,
						Value: &pointList{},
						Usage: "reveal the cell under canvas point `x,y`; repeatable, applied in order",
					},
					&cli.BoolFlag{
						Name:  flagOutline,
						Usage: "frame every visible cell",
					},
					&cli.StringFlag{
						Name:  flagOutlineColor,
						Value: config.DefaultOutlineColor,
						Usage: "frame colour as #rrggbb",
					},
					&cli.BoolFlag{
						Name:  flagParallel,
						Usage: "merge large levels on several goroutines",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := renderConfigFromFlags(c)
					if err != nil {
						return err
					}
					if cfg.Debug {
						logger.SetLevel(logging.DEBUG)
					}
					return render(c.Context, cfg, logger)
				},
			},
			{
				Name:      "inspect",
				Usage:     "print per level statistics of the tree",
				UsageText: "mosaic inspect --input IN",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     flagInput,
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "square, power of two sized source image",
					},
					&cli.BoolFlag{
						Name:  flagParallel,
						Usage: "merge large levels on several goroutines",
					},
				},
				Action: func(c *cli.Context) error {
					root, err := buildFromFile(c.Context, c.Path(flagInput), c.Bool(flagParallel), logger)
					if err != nil {
						return err
					}
					summary, err := view.SummaryTable(root)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, summary)
					return err
				},
			},
		},
	}
}

func renderConfigFromFlags(c *cli.Context) (*config.Render, error) {
	if path := c.Path(flagConfig); path != "" {
		return config.Read(path)
	}

	cfg := &config.Render{
		Input:        c.Path(flagInput),
		Output:       c.Path(flagOutput),
		Size:         c.Int(flagSize),
		Outline:      c.Bool(flagOutline),
		OutlineColor: c.String(flagOutlineColor),
		Parallel:     c.Bool(flagParallel),
		Debug:        c.Bool(flagDebug),
	}
	if c.IsSet(flagDepth) {
		depth := c.Int(flagDepth)
		cfg.Depth = &depth
	}
	if points, ok := c.Generic(flagReveal).(*pointList); ok {
		cfg.Reveal = append(cfg.Reveal, *points...)
	}
	if err := cfg.Validate("flags"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pointList collects repeated x,y flag values. Each value is parsed whole, unlike slice flags
// which split on commas.
type pointList []config.Point

// Set parses one x,y value and appends it.
func (l *pointList) Set(raw string) error {
	p, err := parsePoint(raw)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func (l *pointList) String() string {
	if l == nil {
		return ""
	}
	out := make([]string, 0, len(*l))
	for _, p := range *l {
		out = append(out, fmt.Sprintf("%d,%d", p[0], p[1]))
	}
	return strings.Join(out, " ")
}

func parsePoint(raw string) (config.Point, error) {
	xs, ys, found := strings.Cut(raw, ",")
	if !found {
		return config.Point{}, errors.Errorf("point %q must be written as x,y", raw)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return config.Point{}, errors.Wrapf(err, "bad x in point %q", raw)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return config.Point{}, errors.Wrapf(err, "bad y in point %q", raw)
	}
	return config.Point{x, y}, nil
}

func buildFromFile(ctx context.Context, path string, parallel bool, logger logging.Logger) (*quadtree.Node, error) {
	img, err := rimage.ReadImageFromFile(path)
	if err != nil {
		return nil, err
	}
	builder := quadtree.NewBuilder(logger.Sublogger("quadtree"))
	builder.Parallel = parallel
	root, err := quadtree.FromImage(ctx, img, builder)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot build quadtree from %q", path)
	}
	logger.Debugw("built quadtree", "path", path, "edge", root.Edge(), "root", root.Color().Hex())
	return root, nil
}

func render(ctx context.Context, cfg *config.Render, logger logging.Logger) error {
	root, err := buildFromFile(ctx, cfg.Input, cfg.Parallel, logger)
	if err != nil {
		return err
	}

	size := cfg.Size
	if size == 0 {
		size = root.Edge()
	}
	explorer, err := view.NewExplorer(root, size, logger.Sublogger("view"))
	if err != nil {
		return err
	}

	depth := root.Depth()
	if cfg.Depth != nil {
		depth = *cfg.Depth
	}
	explorer.ExpandToDepth(depth)
	for _, p := range cfg.Reveal {
		explorer.Reveal(p.ImagePoint())
	}

	if err := rimage.WriteImageToFile(cfg.Output, explorer.Render(cfg.Outline, cfg.ParsedOutlineColor())); err != nil {
		return err
	}
	logger.Infow("wrote mosaic", "output", cfg.Output, "cells", len(explorer.Frontier()))
	return nil
}
