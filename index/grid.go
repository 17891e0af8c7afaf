package index

import (
	"math"
	"sort"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"

	"windfetch/layer"
)

// CellIndex is the position of a cell within the grid. Element 0 is the x-index, element 1 the
// y-index.
type CellIndex [2]int

func (c CellIndex) X() int { return c[0] }
func (c CellIndex) Y() int { return c[1] }

// GridIndex maps obstruction features to fixed-size cells so that a radius query only has to
// look at the features registered in the cells overlapping the query bound, instead of scanning
// the whole layer. A feature whose bound spans multiple cells is registered in each of them.
type GridIndex struct {
	CellWidth  float64
	CellHeight float64

	layer *layer.ObstructionLayer
	cells map[CellIndex][]int
}

// NewGridIndex registers every feature of the layer in all cells its bound overlaps. The cell
// size should be in the order of the typical query radius; much smaller cells only increase the
// number of cells a large coastline feature has to be registered in.
func NewGridIndex(obstructionLayer *layer.ObstructionLayer, cellWidth float64, cellHeight float64) *GridIndex {
	g := &GridIndex{
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		layer:      obstructionLayer,
		cells:      map[CellIndex][]int{},
	}

	for i, feature := range obstructionLayer.Features() {
		minCell := g.GetCellIndexForCoordinate(feature.Bound.Min[0], feature.Bound.Min[1])
		maxCell := g.GetCellIndexForCoordinate(feature.Bound.Max[0], feature.Bound.Max[1])

		for cellX := minCell.X(); cellX <= maxCell.X(); cellX++ {
			for cellY := minCell.Y(); cellY <= maxCell.Y(); cellY++ {
				cell := CellIndex{cellX, cellY}
				g.cells[cell] = append(g.cells[cell], i)
			}
		}
	}

	sigolo.Debugf("Created grid index with %d cells for %d obstruction features", len(g.cells), obstructionLayer.Size())

	return g
}

func (g *GridIndex) GetCellIndexForCoordinate(x float64, y float64) CellIndex {
	return CellIndex{int(math.Floor(x / g.CellWidth)), int(math.Floor(y / g.CellHeight))}
}

// Query returns the subset of the indexed layer plausibly intersecting the given bound. The
// result is a new layer view; it contains exactly the features a linear bound scan over the
// full layer would find.
func (g *GridIndex) Query(bound orb.Bound) *layer.ObstructionLayer {
	minCell := g.GetCellIndexForCoordinate(bound.Min[0], bound.Min[1])
	maxCell := g.GetCellIndexForCoordinate(bound.Max[0], bound.Max[1])

	seen := map[int]bool{}
	var candidates []int

	for cellX := minCell.X(); cellX <= maxCell.X(); cellX++ {
		for cellY := minCell.Y(); cellY <= maxCell.Y(); cellY++ {
			for _, featureIndex := range g.cells[CellIndex{cellX, cellY}] {
				if !seen[featureIndex] {
					seen[featureIndex] = true
					candidates = append(candidates, featureIndex)
				}
			}
		}
	}

	// Restore layer order, Query results should not depend on cell iteration order.
	sort.Ints(candidates)

	// Cell membership over-approximates the bound check, so the exact bound filter still runs.
	return g.layer.SubsetByIndices(candidates).Subset(bound)
}
