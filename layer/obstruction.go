package layer

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Obstruction is one land feature of the obstruction layer: a polygon or multi-polygon with its
// precomputed bound for cheap pruning.
type Obstruction struct {
	Geometry orb.Geometry
	Bound    orb.Bound
}

// ObstructionLayer is an immutable set of land polygons sharing one coordinate system. All
// methods are read-only; Subset returns new views and never mutates the receiver, so one layer
// can safely be shared across parallel site computations.
type ObstructionLayer struct {
	crs      CRS
	features []Obstruction
}

// NewObstructionLayer builds a layer from polygonal geometries. Non-polygonal geometries are
// rejected since a fetch ray can only be blocked by an area feature.
func NewObstructionLayer(crs CRS, geometries []orb.Geometry) (*ObstructionLayer, error) {
	features := make([]Obstruction, 0, len(geometries))

	for i, geometry := range geometries {
		switch geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			features = append(features, Obstruction{
				Geometry: geometry,
				Bound:    geometry.Bound(),
			})
		default:
			return nil, errors.Errorf("Obstruction feature %d has non-polygonal geometry type %s", i, geometry.GeoJSONType())
		}
	}

	return &ObstructionLayer{
		crs:      crs,
		features: features,
	}, nil
}

func (l *ObstructionLayer) CRS() CRS {
	return l.crs
}

func (l *ObstructionLayer) Size() int {
	return len(l.features)
}

func (l *ObstructionLayer) Features() []Obstruction {
	return l.features
}

// Subset returns a new layer view containing only the features whose bound intersects the given
// bound. This is purely a pruning step: intersecting rays against the subset yields the same
// fetch distances as intersecting against the full layer.
func (l *ObstructionLayer) Subset(bound orb.Bound) *ObstructionLayer {
	var subset []Obstruction
	for _, feature := range l.features {
		if feature.Bound.Intersects(bound) {
			subset = append(subset, feature)
		}
	}

	return &ObstructionLayer{
		crs:      l.crs,
		features: subset,
	}
}

// SubsetByIndices returns a new layer view containing the features at the given positions. Used
// by the grid index, which resolves cells to feature positions.
func (l *ObstructionLayer) SubsetByIndices(indices []int) *ObstructionLayer {
	subset := make([]Obstruction, 0, len(indices))
	for _, index := range indices {
		subset = append(subset, l.features[index])
	}

	return &ObstructionLayer{
		crs:      l.crs,
		features: subset,
	}
}

// Contains reports whether the point lies on land, i.e. within any obstruction polygon. Holes
// are respected: a point inside a lagoon ring of a land polygon is on water.
func (l *ObstructionLayer) Contains(point orb.Point) bool {
	for _, feature := range l.features {
		if !feature.Bound.Contains(point) {
			continue
		}

		switch geometry := feature.Geometry.(type) {
		case orb.Polygon:
			if planar.PolygonContains(geometry, point) {
				return true
			}
		case orb.MultiPolygon:
			if planar.MultiPolygonContains(geometry, point) {
				return true
			}
		}
	}
	return false
}
