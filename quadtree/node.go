// Package quadtree builds an immutable colour quadtree over a square, power of two sized image.
// Every leaf holds one source pixel and every other node holds the aggregate colour of its four
// children, so each level of the tree is a lower resolution summary of the image.
package quadtree

import (
	"image"

	"github.com/pkg/errors"

	"go.viam.com/mosaic/rimage"
)

// Quadrant indexes the children of a node.
type Quadrant int

// Child order. Consumers may rely on it for spatial layout.
const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// Node is a region of the image with a single representative colour. A Node is never modified
// after it is built and exclusively owns its children.
type Node struct {
	color    rimage.Color
	children []*Node
}

func newLeaf(c rimage.Color) *Node {
	return &Node{color: c}
}

func newParent(children [4]*Node, aggregate rimage.AggregateFunc) *Node {
	var colors [4]rimage.Color
	for i, child := range children {
		colors[i] = child.color
	}
	return &Node{
		color:    aggregate(colors),
		children: children[:],
	}
}

// Color returns the colour of the region covered by the node.
func (n *Node) Color() rimage.Color {
	return n.color
}

// IsLeaf returns true if the node has no children, i.e. it is a single source pixel.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Children returns a copy of the four children in TopLeft, TopRight, BottomLeft, BottomRight
// order, or nil for a leaf.
func (n *Node) Children() []*Node {
	if n.IsLeaf() {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the child in quadrant q, or nil for a leaf.
func (n *Node) Child(q Quadrant) *Node {
	if n.IsLeaf() || q < TopLeft || q > BottomRight {
		return nil
	}
	return n.children[q]
}

// Depth is the number of levels below this node. It is 0 for a leaf. All leaves sit at the same
// depth so following any one branch is enough.
func (n *Node) Depth() int {
	depth := 0
	for cur := n; !cur.IsLeaf(); cur = cur.children[TopLeft] {
		depth++
	}
	return depth
}

// Edge is the edge length in pixels of the image this node was built from.
func (n *Node) Edge() int {
	return 1 << n.Depth()
}

// WalkFunc is called for each node visited by Walk. region is the area covered by the node in
// source pixel coordinates. Returning false skips the node's children.
type WalkFunc func(n *Node, depth int, region image.Rectangle) bool

// Walk visits the tree depth first, parents before children, children in quadrant order.
func (n *Node) Walk(fn WalkFunc) {
	edge := n.Edge()
	n.walk(fn, 0, image.Rect(0, 0, edge, edge))
}

func (n *Node) walk(fn WalkFunc, depth int, region image.Rectangle) {
	if !fn(n, depth, region) || n.IsLeaf() {
		return
	}
	for i, child := range n.children {
		child.walk(fn, depth+1, Subregion(region, Quadrant(i)))
	}
}

// Subregion returns the quadrant q of r. Odd sizes give the extra row or column to the right and
// bottom halves.
func Subregion(r image.Rectangle, q Quadrant) image.Rectangle {
	midX := r.Min.X + r.Dx()/2
	midY := r.Min.Y + r.Dy()/2
	switch q {
	case TopLeft:
		return image.Rect(r.Min.X, r.Min.Y, midX, midY)
	case TopRight:
		return image.Rect(midX, r.Min.Y, r.Max.X, midY)
	case BottomLeft:
		return image.Rect(r.Min.X, midY, midX, r.Max.Y)
	case BottomRight:
		return image.Rect(midX, midY, r.Max.X, r.Max.Y)
	}
	return image.Rectangle{}
}

// Level returns the 2^depth x 2^depth grid of nodes at the given depth, indexed [y][x]. Level 0
// is the node itself and level Depth() is the leaves.
func (n *Node) Level(depth int) ([][]*Node, error) {
	maxDepth := n.Depth()
	if depth < 0 || depth > maxDepth {
		return nil, errors.Errorf("level %d out of range [0, %d]", depth, maxDepth)
	}

	side := 1 << depth
	cell := 1 << (maxDepth - depth)
	grid := make([][]*Node, side)
	for y := range grid {
		grid[y] = make([]*Node, side)
	}
	n.Walk(func(node *Node, d int, region image.Rectangle) bool {
		if d < depth {
			return true
		}
		grid[region.Min.Y/cell][region.Min.X/cell] = node
		return false
	})
	return grid, nil
}
