package quadtree

import (
	"image"
	"testing"

	"go.viam.com/test"

	"go.viam.com/mosaic/rimage"
)

func TestChildrenIsACopy(t *testing.T) {
	root, err := Build(randomGrid(2, 11))
	test.That(t, err, test.ShouldBeNil)

	children := root.Children()
	original := children[TopLeft]
	children[TopLeft] = nil
	test.That(t, root.Child(TopLeft), test.ShouldEqual, original)
	test.That(t, root.Children()[TopLeft], test.ShouldEqual, original)
}

func TestChild(t *testing.T) {
	root, err := Build(randomGrid(2, 12))
	test.That(t, err, test.ShouldBeNil)

	for q := TopLeft; q <= BottomRight; q++ {
		test.That(t, root.Child(q), test.ShouldEqual, root.Children()[q])
	}
	test.That(t, root.Child(Quadrant(4)), test.ShouldBeNil)
	test.That(t, root.Child(TopLeft).Child(TopLeft), test.ShouldBeNil)
	test.That(t, BottomLeft.String(), test.ShouldEqual, "bottom-left")
}

func TestSubregion(t *testing.T) {
	r := image.Rect(0, 0, 8, 8)
	test.That(t, Subregion(r, TopLeft), test.ShouldResemble, image.Rect(0, 0, 4, 4))
	test.That(t, Subregion(r, TopRight), test.ShouldResemble, image.Rect(4, 0, 8, 4))
	test.That(t, Subregion(r, BottomLeft), test.ShouldResemble, image.Rect(0, 4, 4, 8))
	test.That(t, Subregion(r, BottomRight), test.ShouldResemble, image.Rect(4, 4, 8, 8))

	// odd sizes hand the spare column and row to the right and bottom halves
	odd := image.Rect(10, 10, 15, 13)
	test.That(t, Subregion(odd, TopLeft), test.ShouldResemble, image.Rect(10, 10, 12, 11))
	test.That(t, Subregion(odd, BottomRight), test.ShouldResemble, image.Rect(12, 11, 15, 13))
}

func TestWalkOrder(t *testing.T) {
	grid := [][]rimage.Color{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	root, err := Build(grid)
	test.That(t, err, test.ShouldBeNil)

	var leaves []rimage.Color
	root.Walk(func(n *Node, depth int, region image.Rectangle) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n.Color())
		}
		return true
	})
	test.That(t, leaves, test.ShouldResemble, []rimage.Color{1, 2, 5, 6, 3, 4, 7, 8, 9, 10, 13, 14, 11, 12, 15, 16})

	visited := 0
	root.Walk(func(n *Node, depth int, region image.Rectangle) bool {
		visited++
		return depth < 1
	})
	test.That(t, visited, test.ShouldEqual, 5)
}

func TestLevel(t *testing.T) {
	root, err := Build(randomGrid(8, 13))
	test.That(t, err, test.ShouldBeNil)

	top, err := root.Level(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, top, test.ShouldHaveLength, 1)
	test.That(t, top[0][0], test.ShouldEqual, root)

	mid, err := root.Level(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mid[0][0], test.ShouldEqual, root.Child(TopLeft))
	test.That(t, mid[0][1], test.ShouldEqual, root.Child(TopRight))
	test.That(t, mid[1][0], test.ShouldEqual, root.Child(BottomLeft))
	test.That(t, mid[1][1], test.ShouldEqual, root.Child(BottomRight))

	two, err := root.Level(2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, two[1][2], test.ShouldEqual, root.Child(TopRight).Child(BottomLeft))

	_, err = root.Level(4)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = root.Level(-1)
	test.That(t, err, test.ShouldNotBeNil)
}
