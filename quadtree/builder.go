package quadtree

import (
	"context"
	"image"

	"github.com/pkg/errors"

	"go.viam.com/mosaic/logging"
	"go.viam.com/mosaic/rimage"
	"go.viam.com/mosaic/utils"
)

// minParallelBlocks is the smallest pass that is worth fanning out over goroutines.
const minParallelBlocks = 4096

// Builder turns a pixel grid into a quadtree.
type Builder struct {
	// Aggregate derives a parent colour from its children. Defaults to rimage.AverageHSB.
	Aggregate rimage.AggregateFunc
	// Parallel splits the blocks of large passes across goroutines. Passes themselves always run
	// one after the other.
	Parallel bool

	logger logging.Logger
}

// NewBuilder returns a serial Builder using HSB averaging. A nil logger means the global one.
func NewBuilder(logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.Global().Sublogger("quadtree")
	}
	return &Builder{
		Aggregate: rimage.AverageHSB,
		logger:    logger,
	}
}

// Build builds a quadtree serially with HSB averaging. pixels is indexed [y][x] and must be
// N x N with N a power of two.
func Build(pixels [][]rimage.Color) (*Node, error) {
	return NewBuilder(nil).Build(context.Background(), pixels)
}

// FromImage builds a quadtree from every pixel of img.
func FromImage(ctx context.Context, img image.Image, b *Builder) (*Node, error) {
	return b.Build(ctx, rimage.ColorGrid(img))
}

// Build creates a leaf per pixel and then merges 2x2 blocks pass by pass until one root remains.
// The block with top-left corner (x, y) becomes a parent with children
// (x, y), (x+1, y), (x, y+1), (x+1, y+1). Either the complete root is returned or an error and no
// tree; the context is only consulted between passes.
func (b *Builder) Build(ctx context.Context, pixels [][]rimage.Color) (*Node, error) {
	edge, err := checkDimensions(pixels)
	if err != nil {
		return nil, err
	}
	aggregate := b.Aggregate
	if aggregate == nil {
		aggregate = rimage.AverageHSB
	}
	logger := b.logger
	if logger == nil {
		logger = logging.Global().Sublogger("quadtree")
	}

	nodes := make([]*Node, edge*edge)
	for y, row := range pixels {
		for x, c := range row {
			nodes[y*edge+x] = newLeaf(c)
		}
	}

	pass := 0
	for edge > 1 {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "quadtree build stopped before pass %d", pass)
		}
		half := edge / 2
		logger.Debugw("merging pass", "pass", pass, "edge", edge, "blocks", half*half)
		nodes, err = b.mergePass(ctx, logger, nodes, edge, aggregate)
		if err != nil {
			return nil, err
		}
		edge = half
		pass++
	}
	return nodes[0], nil
}

// mergePass replaces every 2x2 block of the edge x edge grid with one parent. Each block only
// reads its own four nodes and writes its own slot in next, so blocks can run concurrently.
func (b *Builder) mergePass(
	ctx context.Context,
	logger logging.Logger,
	nodes []*Node,
	edge int,
	aggregate rimage.AggregateFunc,
) ([]*Node, error) {
	half := edge / 2
	next := make([]*Node, half*half)
	mergeBlock := func(block int) {
		bx, by := block%half, block/half
		x, y := bx*2, by*2
		next[block] = newParent([4]*Node{
			nodes[y*edge+x],
			nodes[y*edge+x+1],
			nodes[(y+1)*edge+x],
			nodes[(y+1)*edge+x+1],
		}, aggregate)
	}

	if !b.Parallel || len(next) < minParallelBlocks {
		for block := range next {
			mergeBlock(block)
		}
		return next, nil
	}

	err := utils.GroupWorkParallel(
		ctx,
		len(next),
		func(numGroups int) {
			logger.Debugw("splitting pass", "edge", edge, "groups", numGroups)
		},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, workNum int) {
				mergeBlock(workNum)
			}, nil
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed merging %dx%d grid", edge, edge)
	}
	return next, nil
}
