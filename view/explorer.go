// Package view renders a quadtree as a mosaic whose cells are revealed on demand, the way a
// pointer moving over the picture uncovers finer detail. The tree itself is always fully built;
// which nodes are shown is state owned here.
package view

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"go.viam.com/mosaic/logging"
	"go.viam.com/mosaic/quadtree"
	"go.viam.com/mosaic/rimage"
)

// outlineWidth is wide enough that a frame on integer coordinates fully covers one pixel on each
// side of the cell boundary.
const outlineWidth = 2

// A Cell is a visible node and the part of the canvas it covers.
type Cell struct {
	Node  *quadtree.Node
	Depth int
	Rect  image.Rectangle
}

// Explorer tracks which nodes of a tree have been expanded into their children. It is safe for
// concurrent use.
type Explorer struct {
	root   *quadtree.Node
	size   int
	logger logging.Logger

	mu       sync.Mutex
	expanded map[*quadtree.Node]struct{}
}

// NewExplorer shows root on a size x size canvas with nothing expanded.
func NewExplorer(root *quadtree.Node, size int, logger logging.Logger) (*Explorer, error) {
	if root == nil {
		return nil, errors.New("explorer needs a root node")
	}
	if size <= 0 {
		return nil, errors.Errorf("invalid canvas size %d", size)
	}
	if logger == nil {
		logger = logging.Global().Sublogger("view")
	}
	return &Explorer{
		root:     root,
		size:     size,
		logger:   logger,
		expanded: map[*quadtree.Node]struct{}{},
	}, nil
}

// Bounds is the canvas rectangle.
func (e *Explorer) Bounds() image.Rectangle {
	return image.Rect(0, 0, e.size, e.size)
}

// Reveal expands the visible cell under p into its four children, unless it is a leaf. It
// reports whether the visible cells changed.
func (e *Explorer) Reveal(p image.Point) bool {
	if !p.In(e.Bounds()) {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	node, depth, rect := e.root, 0, e.Bounds()
	for {
		if _, ok := e.expanded[node]; !ok {
			break
		}
		for q := quadtree.TopLeft; q <= quadtree.BottomRight; q++ {
			sub := quadtree.Subregion(rect, q)
			if p.In(sub) {
				node, rect = node.Child(q), sub
				break
			}
		}
		depth++
	}
	if node.IsLeaf() {
		return false
	}
	e.expanded[node] = struct{}{}
	e.logger.Debugw("revealed cell", "depth", depth, "rect", rect.String(), "color", node.Color().Hex())
	return true
}

// ExpandToDepth expands every node above depth, so the frontier is at least that deep.
func (e *Explorer) ExpandToDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.root.Walk(func(n *quadtree.Node, d int, _ image.Rectangle) bool {
		if d >= depth || n.IsLeaf() {
			return false
		}
		e.expanded[n] = struct{}{}
		return true
	})
}

// Collapse hides everything but the root again.
func (e *Explorer) Collapse() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expanded = map[*quadtree.Node]struct{}{}
}

// Frontier returns the visible cells in quadrant order. Their rectangles partition the canvas.
// Cells smaller than a canvas pixel are still listed but have empty rectangles.
func (e *Explorer) Frontier() []Cell {
	e.mu.Lock()
	defer e.mu.Unlock()

	var cells []Cell
	var visit func(n *quadtree.Node, depth int, rect image.Rectangle)
	visit = func(n *quadtree.Node, depth int, rect image.Rectangle) {
		if _, ok := e.expanded[n]; !ok || n.IsLeaf() {
			cells = append(cells, Cell{Node: n, Depth: depth, Rect: rect})
			return
		}
		for i, child := range n.Children() {
			visit(child, depth+1, quadtree.Subregion(rect, quadtree.Quadrant(i)))
		}
	}
	visit(e.root, 0, e.Bounds())
	return cells
}

// Render paints the frontier. With outline set each cell is framed in outlineColor.
func (e *Explorer) Render(outline bool, outlineColor color.Color) image.Image {
	dc := gg.NewContext(e.size, e.size)
	cells := e.Frontier()
	for _, cell := range cells {
		if cell.Rect.Empty() {
			continue
		}
		rimage.DrawRectangleFilled(dc, cell.Rect, cell.Node.Color())
	}
	if outline {
		for _, cell := range cells {
			if cell.Rect.Empty() {
				continue
			}
			rimage.DrawRectangleEmpty(dc, cell.Rect, outlineColor, outlineWidth)
		}
	}
	e.logger.Debugw("rendered frontier", "cells", len(cells), "size", e.size)
	return dc.Image()
}
