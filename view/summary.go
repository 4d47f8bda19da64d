package view

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/mosaic/quadtree"
)

// LevelStats describes the nodes at one depth of a tree.
type LevelStats struct {
	Depth int
	// Edge is the number of nodes along one side of the level.
	Edge  int
	Nodes int
	// Brightness over the level's node colours.
	BrightnessMean   float64
	BrightnessStdDev float64
	SaturationMean   float64
}

// Summarize computes LevelStats for every depth of the tree, root first.
func Summarize(root *quadtree.Node) ([]LevelStats, error) {
	maxDepth := root.Depth()
	out := make([]LevelStats, 0, maxDepth+1)
	for depth := 0; depth <= maxDepth; depth++ {
		grid, err := root.Level(depth)
		if err != nil {
			return nil, err
		}
		nodes := lo.Flatten(grid)

		brightness := stats.Float64Data(lo.Map(nodes, func(n *quadtree.Node, _ int) float64 {
			_, _, b := n.Color().HSB()
			return b
		}))
		saturation := stats.Float64Data(lo.Map(nodes, func(n *quadtree.Node, _ int) float64 {
			_, s, _ := n.Color().HSB()
			return s
		}))

		mean, err := brightness.Mean()
		if err != nil {
			return nil, errors.Wrapf(err, "brightness mean at depth %d", depth)
		}
		stdDev, err := brightness.StandardDeviation()
		if err != nil {
			return nil, errors.Wrapf(err, "brightness deviation at depth %d", depth)
		}
		satMean, err := saturation.Mean()
		if err != nil {
			return nil, errors.Wrapf(err, "saturation mean at depth %d", depth)
		}

		out = append(out, LevelStats{
			Depth:            depth,
			Edge:             len(grid),
			Nodes:            len(nodes),
			BrightnessMean:   mean,
			BrightnessStdDev: stdDev,
			SaturationMean:   satMean,
		})
	}
	return out, nil
}

// SummaryTable renders the summary of a tree as a text table.
func SummaryTable(root *quadtree.Node) (string, error) {
	levels, err := Summarize(root)
	if err != nil {
		return "", err
	}

	t := table.NewWriter()
	t.Style().Format.Header = text.FormatDefault
	t.SetTitle(fmt.Sprintf("%dx%d image, depth %d, root %s", root.Edge(), root.Edge(), root.Depth(), root.Color().Hex()))
	t.AppendHeader(table.Row{"Depth", "Grid", "Nodes", "Brightness", "Brightness σ", "Saturation"})
	for _, level := range levels {
		t.AppendRow(table.Row{
			level.Depth,
			fmt.Sprintf("%dx%d", level.Edge, level.Edge),
			level.Nodes,
			fmt.Sprintf("%.3f", level.BrightnessMean),
			fmt.Sprintf("%.3f", level.BrightnessStdDev),
			fmt.Sprintf("%.3f", level.SaturationMean),
		})
	}
	return t.Render(), nil
}
